package compress

import (
	"github.com/arloliu/zipflow/errs"
	"github.com/arloliu/zipflow/format"
)

// Store passes payload bytes through untouched (archive method 0). The
// compressed size of a stored entry always equals its uncompressed size.
type Store struct {
	finalized bool
}

var _ Compressor = (*Store)(nil)

// NewStore creates a new passthrough compressor.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) Open(_ Options) ([]byte, error) {
	if s.finalized {
		return nil, errs.ErrCompressorFinalized
	}

	return nil, nil
}

// Feed returns the input chunk unchanged.
func (s *Store) Feed(p []byte) ([]byte, error) {
	if s.finalized {
		return nil, errs.ErrCompressorFinalized
	}

	return p, nil
}

func (s *Store) Close() ([]byte, error) {
	if s.finalized {
		return nil, errs.ErrCompressorFinalized
	}

	return nil, nil
}

func (s *Store) Reset(opts Options) ([]byte, error) {
	return s.Open(opts)
}

func (s *Store) Finalize() error {
	if s.finalized {
		return errs.ErrCompressorFinalized
	}
	s.finalized = true

	return nil
}

func (s *Store) Method() format.Method {
	return format.MethodStore
}
