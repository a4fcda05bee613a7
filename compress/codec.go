package compress

import (
	"fmt"

	"github.com/arloliu/zipflow/errs"
	"github.com/arloliu/zipflow/format"
)

// Options configures a Compressor for one entry. Store ignores Options
// entirely.
type Options struct {
	// Level is the compression level on the zlib 0-9 scale, or one of the
	// format.Level aliases. The zero value is LevelNone (no compression);
	// the codec default is LevelDefault, which manifest.NewEntry sets.
	Level format.Level

	// Strategy tunes how the codec searches for matches.
	Strategy format.Strategy
}

// Validate checks that the options carry recognized values.
func (o Options) Validate() error {
	if !o.Level.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrLevelInvalid, o.Level)
	}
	if !o.Strategy.Valid() {
		return fmt.Errorf("%w: %d", errs.ErrStrategyInvalid, o.Strategy)
	}

	return nil
}

// Compressor is the streaming compression contract driven by the archive
// encoder. Implementations are not safe for concurrent use; each encoder
// owns exactly one compressor at a time.
type Compressor interface {
	// Open initializes the compressor for its first entry and returns any
	// stream header bytes, which may be empty.
	Open(opts Options) ([]byte, error)

	// Feed compresses one payload chunk. The returned slice may be empty
	// and is valid only until the next call.
	Feed(p []byte) ([]byte, error)

	// Close flushes the residual compressed bytes for the current entry.
	Close() ([]byte, error)

	// Reset prepares the compressor for the next entry and returns any
	// header bytes for the new stream. Deflate reuses its context only when
	// the effective level is unchanged and builds a new one otherwise.
	Reset(opts Options) ([]byte, error)

	// Finalize releases the underlying context. No calls are permitted
	// after Finalize returns.
	Finalize() error

	// Method reports the archive compression method the output bytes use.
	Method() format.Method
}

// New creates an unopened Compressor for the given archive method.
func New(method format.Method) (Compressor, error) {
	switch method {
	case format.MethodStore:
		return NewStore(), nil
	case format.MethodDeflate:
		return NewDeflate(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrMethodInvalid, method)
	}
}
