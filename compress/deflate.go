package compress

import (
	"fmt"

	"github.com/klauspost/compress/flate"

	"github.com/arloliu/zipflow/errs"
	"github.com/arloliu/zipflow/format"
	"github.com/arloliu/zipflow/internal/pool"
)

// Deflate produces raw DEFLATE streams (archive method 8): no zlib header
// and no trailing checksum, equivalent to a zlib context opened with
// negative window bits.
//
// The flate context is expensive to build, so Reset reuses it across
// entries whenever the effective level is unchanged.
type Deflate struct {
	fw        *flate.Writer
	stage     *pool.ByteBuffer
	level     int
	finalized bool
}

var _ Compressor = (*Deflate)(nil)

// NewDeflate creates a new raw DEFLATE compressor. The context is built on
// Open, once the entry's options are known.
func NewDeflate() *Deflate {
	return &Deflate{}
}

// effectiveLevel maps the option pair onto the single level knob flate
// exposes. HuffmanOnly and RLE select flate's matchless mode; Filtered and
// Fixed have no flate equivalent and retain the configured level.
func effectiveLevel(opts Options) int {
	switch opts.Strategy {
	case format.StrategyHuffmanOnly, format.StrategyRLE:
		return flate.HuffmanOnly
	default:
		return int(opts.Level)
	}
}

func (d *Deflate) Open(opts Options) ([]byte, error) {
	if d.finalized {
		return nil, errs.ErrCompressorFinalized
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	level := effectiveLevel(opts)
	if d.fw != nil && level == d.level {
		d.stage.Reset()
		d.fw.Reset(d.stage)

		return nil, nil
	}

	if d.stage == nil {
		d.stage = pool.GetChunkBuffer()
	}
	d.stage.Reset()

	fw, err := flate.NewWriter(d.stage, level)
	if err != nil {
		return nil, fmt.Errorf("open deflate context: %w", err)
	}
	d.fw = fw
	d.level = level

	// Raw DEFLATE emits no stream header.
	return nil, nil
}

func (d *Deflate) Feed(p []byte) ([]byte, error) {
	if d.finalized {
		return nil, errs.ErrCompressorFinalized
	}

	d.stage.Reset()
	if _, err := d.fw.Write(p); err != nil {
		return nil, fmt.Errorf("deflate: %w", err)
	}

	return d.stage.Bytes(), nil
}

// Close flushes the final block, ending the DEFLATE stream.
func (d *Deflate) Close() ([]byte, error) {
	if d.finalized {
		return nil, errs.ErrCompressorFinalized
	}

	d.stage.Reset()
	if err := d.fw.Close(); err != nil {
		return nil, fmt.Errorf("close deflate stream: %w", err)
	}

	return d.stage.Bytes(), nil
}

// Reset prepares the compressor for the next entry. The existing flate
// context is reused when the effective level is unchanged; otherwise a new
// context replaces it.
func (d *Deflate) Reset(opts Options) ([]byte, error) {
	return d.Open(opts)
}

func (d *Deflate) Finalize() error {
	if d.finalized {
		return errs.ErrCompressorFinalized
	}
	d.finalized = true
	d.fw = nil

	pool.PutChunkBuffer(d.stage)
	d.stage = nil

	return nil
}

func (d *Deflate) Method() format.Method {
	return format.MethodDeflate
}
