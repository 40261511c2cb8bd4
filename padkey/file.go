package padkey

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/markkurossi/uvmac"
)

// fileMagic identifies a pad-key file.
const fileMagic = 0x50414447 // "PADG"

// headerSize is the fixed on-disk header: magic (4), word count (8),
// cursor (8).
const headerSize = 4 + 8 + 8

var bo = binary.BigEndian

// FileHeader is the pad-key file's fixed-size prefix: a magic number
// followed by metadata fields ahead of the raw word payload.
type FileHeader struct {
	Magic     uint32
	WordCount uint64
	Cursor    uint64
}

// Bytes serializes the header to its on-disk form.
func (h *FileHeader) Bytes() []byte {
	buf := make([]byte, headerSize)
	bo.PutUint32(buf[0:], h.Magic)
	bo.PutUint64(buf[4:], h.WordCount)
	bo.PutUint64(buf[12:], h.Cursor)
	return buf
}

// NewFileHeader parses a header from its on-disk form.
func NewFileHeader(data []byte) (*FileHeader, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("padkey: truncated file header")
	}
	h := &FileHeader{
		Magic:     bo.Uint32(data[0:]),
		WordCount: bo.Uint64(data[4:]),
		Cursor:    bo.Uint64(data[12:]),
	}
	if h.Magic != fileMagic {
		return nil, fmt.Errorf("padkey: invalid magic %08x", h.Magic)
	}
	return h, nil
}

// CreateFile writes a new pad-key file at path holding words, with the
// cursor at 0.
func CreateFile(path string, words []uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	hdr := &FileHeader{Magic: fileMagic, WordCount: uint64(len(words))}
	if _, err := f.Write(hdr.Bytes()); err != nil {
		return err
	}

	buf := make([]byte, 8*len(words))
	for i, w := range words {
		bo.PutUint64(buf[8*i:], w)
	}
	_, err = f.Write(buf)
	return err
}

// FileStream is a uvmac.PadKeyStream backed by a pad-key file. Every call
// to Next advances and rewrites the on-disk cursor before returning, so a
// process that crashes mid-message cannot hand out the same word twice on
// restart; it remains the caller's responsibility not to restore the file
// from an earlier backup.
type FileStream struct {
	f   *os.File
	hdr *FileHeader
}

// OpenFileStream opens path, positioned at its persisted cursor.
func OpenFileStream(path string) (*FileStream, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	var buf [headerSize]byte
	if _, err := f.ReadAt(buf[:], 0); err != nil {
		f.Close()
		return nil, err
	}
	hdr, err := NewFileHeader(buf[:])
	if err != nil {
		f.Close()
		return nil, err
	}
	return &FileStream{f: f, hdr: hdr}, nil
}

// Close releases the underlying file.
func (s *FileStream) Close() error {
	return s.f.Close()
}

// Next implements uvmac.PadKeyStream.
func (s *FileStream) Next() (uint64, error) {
	if s.hdr.Cursor >= s.hdr.WordCount {
		return 0, uvmac.ErrPadKeyExhausted
	}

	var buf [8]byte
	off := int64(headerSize) + 8*int64(s.hdr.Cursor)
	if _, err := s.f.ReadAt(buf[:], off); err != nil {
		return 0, fmt.Errorf("padkey: read word %d: %w", s.hdr.Cursor, err)
	}
	word := bo.Uint64(buf[:])

	s.hdr.Cursor++
	if _, err := s.f.WriteAt(s.hdr.Bytes(), 0); err != nil {
		return 0, fmt.Errorf("padkey: persist cursor: %w", err)
	}
	return word, nil
}
