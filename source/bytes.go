package source

import (
	"io"

	"github.com/arloliu/zipflow/errs"
)

// BytesDescriptor serves an in-memory payload. Handy for small generated
// entries and for tests; the slice is not copied.
type BytesDescriptor struct {
	Data []byte
}

// Bytes creates a descriptor serving b as the payload.
func Bytes(b []byte) BytesDescriptor {
	return BytesDescriptor{Data: b}
}

func (d BytesDescriptor) Validate() error {
	return nil
}

func (d BytesDescriptor) Build() (Source, error) {
	return &bytesSource{data: d.Data}, nil
}

type bytesSource struct {
	data   []byte
	off    int
	closed bool
}

func (s *bytesSource) Read() ([]byte, error) {
	if s.closed {
		return nil, errs.ErrSourceClosed
	}
	if s.off >= len(s.data) {
		return nil, io.EOF
	}

	end := s.off + chunkSize
	if end > len(s.data) {
		end = len(s.data)
	}
	chunk := s.data[s.off:end]
	s.off = end

	return chunk, nil
}

func (s *bytesSource) Close() error {
	s.closed = true
	return nil
}
