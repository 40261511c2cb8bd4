package provisioning

import (
	"io"
)

// PeerIO is the transport a Peer uses to exchange protocol messages with
// its counterpart.
type PeerIO interface {
	SendData([]byte) error
	ReceiveData() ([]byte, error)
	Flush() error
}

// pipeEnd is one side of an in-memory, full-duplex PeerIO pair, used when
// both parties run in the same process (tests, and the single-machine
// ceremony the CLI drives).
type pipeEnd struct {
	out chan<- []byte
	in  <-chan []byte
}

// Pipe returns two connected PeerIO endpoints: data sent on one is
// received on the other.
func Pipe() (PeerIO, PeerIO) {
	ab := make(chan []byte, 16)
	ba := make(chan []byte, 16)
	return &pipeEnd{out: ab, in: ba}, &pipeEnd{out: ba, in: ab}
}

func (p *pipeEnd) SendData(data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)
	p.out <- cp
	return nil
}

func (p *pipeEnd) ReceiveData() ([]byte, error) {
	data, ok := <-p.in
	if !ok {
		return nil, io.EOF
	}
	return data, nil
}

func (p *pipeEnd) Flush() error {
	return nil
}
