package padkey

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/markkurossi/uvmac"
)

func TestChaChaStreamDeterministic(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)
	for i := range key {
		key[i] = byte(i)
	}

	s1, err := NewChaChaStream(key, nonce, 4)
	if err != nil {
		t.Fatalf("NewChaChaStream: %v", err)
	}
	s2, err := NewChaChaStream(key, nonce, 4)
	if err != nil {
		t.Fatalf("NewChaChaStream: %v", err)
	}

	for i := 0; i < 4; i++ {
		w1, err := s1.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		w2, err := s2.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if w1 != w2 {
			t.Fatalf("word %d: %x != %x", i, w1, w2)
		}
	}
	if _, err := s1.Next(); !errors.Is(err, uvmac.ErrPadKeyExhausted) {
		t.Fatalf("expected ErrPadKeyExhausted, got %v", err)
	}
}

func TestHKDFStreamDeterministic(t *testing.T) {
	prk := []byte("a shared pseudorandom key")
	info := []byte("uvmac pad-key test")

	s1 := NewHKDFStream(prk, info, 8)
	s2 := NewHKDFStream(prk, info, 8)

	for i := 0; i < 8; i++ {
		w1, err := s1.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		w2, err := s2.Next()
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		if w1 != w2 {
			t.Fatalf("word %d differs between identical derivations", i)
		}
	}
}

func TestHKDFStreamDifferentInfo(t *testing.T) {
	prk := []byte("a shared pseudorandom key")
	s1 := NewHKDFStream(prk, []byte("context A"), 4)
	s2 := NewHKDFStream(prk, []byte("context B"), 4)

	same := true
	for i := 0; i < 4; i++ {
		w1, _ := s1.Next()
		w2, _ := s2.Next()
		if w1 != w2 {
			same = false
		}
	}
	if same {
		t.Fatal("distinct info labels produced identical streams")
	}
}

func TestShareSplitCombine(t *testing.T) {
	stream := []uint64{1, 2, 3, 0xFFFFFFFFFFFFFFFF, 0}
	a, b, err := Split(stream)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	got := Combine(a, b)
	for i, w := range stream {
		if got[i] != w {
			t.Errorf("word %d: got %x, want %x", i, got[i], w)
		}
	}
}

func TestFileStreamRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pad.key")

	words := []uint64{10, 20, 30}
	if err := CreateFile(path, words); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	s, err := OpenFileStream(path)
	if err != nil {
		t.Fatalf("OpenFileStream: %v", err)
	}
	defer s.Close()

	for i, want := range words {
		got, err := s.Next()
		if err != nil {
			t.Fatalf("Next at %d: %v", i, err)
		}
		if got != want {
			t.Errorf("word %d: got %d, want %d", i, got, want)
		}
	}
	if _, err := s.Next(); !errors.Is(err, uvmac.ErrPadKeyExhausted) {
		t.Fatalf("expected ErrPadKeyExhausted, got %v", err)
	}
}

func TestFileStreamPersistsCursorAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pad.key")

	if err := CreateFile(path, []uint64{1, 2, 3}); err != nil {
		t.Fatalf("CreateFile: %v", err)
	}

	s, err := OpenFileStream(path)
	if err != nil {
		t.Fatalf("OpenFileStream: %v", err)
	}
	if _, err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := OpenFileStream(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	got, err := s2.Next()
	if err != nil {
		t.Fatalf("Next after reopen: %v", err)
	}
	if got != 2 {
		t.Errorf("cursor not persisted: got word %d, want 2", got)
	}
}
