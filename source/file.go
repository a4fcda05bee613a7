package source

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/zipflow/errs"
)

// FileDescriptor reads the payload from a local file.
type FileDescriptor struct {
	Path string
}

// File creates a descriptor that streams the file at path.
func File(path string) FileDescriptor {
	return FileDescriptor{Path: path}
}

func (d FileDescriptor) Validate() error {
	if d.Path == "" {
		return fmt.Errorf("%w: empty file path", errs.ErrSourceInvalid)
	}

	return nil
}

func (d FileDescriptor) Build() (Source, error) {
	f, err := os.Open(d.Path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}

	return &fileSource{f: f, buf: make([]byte, chunkSize)}, nil
}

type fileSource struct {
	f   *os.File
	buf []byte
}

func (s *fileSource) Read() ([]byte, error) {
	if s.f == nil {
		return nil, errs.ErrSourceClosed
	}

	n, err := s.f.Read(s.buf)
	if n > 0 {
		return s.buf[:n], nil
	}
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("read source file: %w", err)
	}

	return s.buf[:0], nil
}

func (s *fileSource) Close() error {
	if s.f == nil {
		return nil
	}

	err := s.f.Close()
	s.f = nil

	return err
}
