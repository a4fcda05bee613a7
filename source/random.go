package source

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/arloliu/zipflow/errs"
)

// RandomDescriptor produces a synthetic payload of strong random bytes.
type RandomDescriptor struct {
	ByteCount uint64
}

// Random creates a descriptor producing exactly n cryptographically strong
// random bytes.
func Random(n uint64) RandomDescriptor {
	return RandomDescriptor{ByteCount: n}
}

func (d RandomDescriptor) Validate() error {
	return nil
}

func (d RandomDescriptor) Build() (Source, error) {
	return &randomSource{remaining: d.ByteCount, buf: make([]byte, chunkSize)}, nil
}

type randomSource struct {
	remaining uint64
	buf       []byte
	closed    bool
}

func (s *randomSource) Read() ([]byte, error) {
	if s.closed {
		return nil, errs.ErrSourceClosed
	}
	if s.remaining == 0 {
		return nil, io.EOF
	}

	n := uint64(len(s.buf))
	if s.remaining < n {
		n = s.remaining
	}

	if _, err := rand.Read(s.buf[:n]); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	s.remaining -= n

	return s.buf[:n], nil
}

func (s *randomSource) Close() error {
	s.closed = true
	return nil
}
