// Package stream drives manifest entries through their sources and
// compressors to produce the archive as a pull-driven sequence of byte
// chunks.
//
// The encoder is single-threaded and cooperative: every pull performs
// exactly one state-machine step and yields at most one chunk. If the
// consumer stops pulling, no source bytes are requested, so backpressure
// propagates naturally all the way to the payload producers.
package stream

import (
	"fmt"
	"hash/crc32"
	"io"
	"runtime"

	"github.com/google/uuid"

	"github.com/arloliu/zipflow/compress"
	"github.com/arloliu/zipflow/errs"
	"github.com/arloliu/zipflow/internal/options"
	"github.com/arloliu/zipflow/internal/pool"
	"github.com/arloliu/zipflow/manifest"
	"github.com/arloliu/zipflow/section"
)

// ErrorMode decides what a per-entry failure does to the stream.
type ErrorMode uint8

const (
	// Halt aborts the stream on the first entry failure. The output is
	// truncated and must be discarded.
	Halt ErrorMode = iota

	// Skip drops the failing entry from the archive and continues; the
	// skipped entry gets no central directory record.
	Skip
)

const (
	phaseInit = iota
	phaseRunning
	phaseDone
	phaseFailed
)

// Stream encodes one archive. Create it with New, then drain it through
// Next, Read or WriteTo. A Stream is single-consumer and not safe for
// concurrent use.
type Stream struct {
	id        string
	errorMode ErrorMode
	sink      Sink

	remaining []manifest.Entry
	cur       *current
	encoded   []encodedEntry

	bytesEmitted uint64
	comp         compress.Compressor
	emit         *pool.ByteBuffer

	phase   uint8
	err     error
	pending []byte
}

// Option configures a Stream.
type Option = options.Option[*Stream]

// WithErrorMode selects the per-entry failure policy. The default is Halt.
func WithErrorMode(m ErrorMode) Option {
	return options.NoError(func(s *Stream) {
		s.errorMode = m
	})
}

// WithSink registers an event callback.
func WithSink(sink Sink) Option {
	return options.NoError(func(s *Stream) {
		s.sink = sink
	})
}

// New creates a stream over m. It fails immediately when the manifest is
// invalid; no bytes are ever emitted for an invalid manifest.
func New(m *manifest.Manifest, opts ...Option) (*Stream, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %w", errs.ErrManifestInvalid, m.Err())
	}

	s := &Stream{
		id:        uuid.NewString(),
		remaining: m.Entries(),
		emit:      pool.GetChunkBuffer(),
	}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// StreamID returns the opaque identifier carried by this stream's events.
func (s *Stream) StreamID() string {
	return s.id
}

// BytesEmitted returns the total bytes produced so far.
func (s *Stream) BytesEmitted() uint64 {
	return s.bytesEmitted
}

// Next performs one state-machine step and returns at most one chunk,
// possibly empty. The chunk is valid until the next call. Next returns
// io.EOF after the final chunk, or the halting error when the stream
// aborted.
func (s *Stream) Next() ([]byte, error) {
	switch s.phase {
	case phaseDone:
		s.release()
		return nil, io.EOF
	case phaseFailed:
		return nil, s.err
	}

	chunk, err := s.step()
	if err != nil {
		return nil, err
	}
	s.bytesEmitted += uint64(len(chunk))

	return chunk, nil
}

// Read implements io.Reader over the chunk sequence.
func (s *Stream) Read(p []byte) (int, error) {
	for len(s.pending) == 0 {
		chunk, err := s.Next()
		if err != nil {
			return 0, err
		}
		if len(chunk) == 0 {
			// An in-flight source had nothing queued yet.
			runtime.Gosched()
			continue
		}
		s.pending = chunk
	}

	n := copy(p, s.pending)
	s.pending = s.pending[n:]

	return n, nil
}

// WriteTo drains the stream into w.
func (s *Stream) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for {
		chunk, err := s.Next()
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
		if len(chunk) == 0 {
			runtime.Gosched()
			continue
		}

		n, werr := w.Write(chunk)
		total += int64(n)
		if werr != nil {
			return total, werr
		}
	}
}

// Close terminates the stream early, closing the current source and
// finalizing the compressor. A closed stream's output is not a valid
// archive.
func (s *Stream) Close() error {
	if s.phase == phaseRunning || s.phase == phaseInit {
		s.phase = phaseFailed
		s.err = errs.ErrStreamDone
	}
	s.release()

	return nil
}

func (s *Stream) fire(ev Event) {
	if s.sink != nil {
		s.sink(ev)
	}
}

// step dispatches on the machine state: init, entry in flight, next entry
// pending, or finished input.
func (s *Stream) step() ([]byte, error) {
	s.emit.Reset()

	switch {
	case s.phase == phaseInit:
		s.phase = phaseRunning
		s.fire(StreamStarted{StreamID: s.id})
		return s.emit.Bytes(), nil
	case s.cur != nil:
		return s.stepEntry()
	case len(s.remaining) > 0:
		return s.startEntry()
	default:
		return s.finish()
	}
}

// startEntry builds the entry's source, opens or resets the compressor and
// emits the local header plus any compressor prelude.
func (s *Stream) startEntry() ([]byte, error) {
	entry := s.remaining[0]
	s.remaining = s.remaining[1:]

	src, err := entry.Source.Build()
	if err != nil {
		return s.entryFailed(entry, err)
	}

	prelude, err := s.openCompressor(entry)
	if err != nil {
		_ = src.Close()
		return nil, s.fatal(entry, err)
	}

	info := EntryInfo{Offset: s.bytesEmitted}
	header := section.LocalHeader{
		Path:     entry.Path,
		Method:   entry.Method,
		Modified: entry.Timestamp,
	}
	s.emit.B = header.AppendTo(s.emit.B)
	if len(prelude) > 0 {
		s.emit.B = append(s.emit.B, prelude...)
		info.SizeCompressed += uint64(len(prelude))
	}

	s.cur = &current{entry: entry, src: src, info: info}
	s.fire(EntryStarted{Entry: entry})

	return s.emit.Bytes(), nil
}

// openCompressor honors the reuse contract: the context is reset when the
// method repeats and replaced when it changes. Every entry goes through
// exactly one Open or Reset.
func (s *Stream) openCompressor(entry manifest.Entry) ([]byte, error) {
	if s.comp != nil && s.comp.Method() == entry.Method {
		return s.comp.Reset(entry.Options)
	}

	if s.comp != nil {
		if err := s.comp.Finalize(); err != nil {
			return nil, err
		}
		s.comp = nil
	}

	comp, err := compress.New(entry.Method)
	if err != nil {
		return nil, err
	}
	prelude, err := comp.Open(entry.Options)
	if err != nil {
		return nil, err
	}
	s.comp = comp

	return prelude, nil
}

// stepEntry advances the in-flight entry by one source read.
func (s *Stream) stepEntry() ([]byte, error) {
	cur := s.cur

	chunk, err := cur.src.Read()
	switch {
	case err == nil:
		if len(chunk) == 0 {
			return s.emit.Bytes(), nil
		}

		cur.info.Checksum = crc32.Update(cur.info.Checksum, crc32.IEEETable, chunk)
		cur.info.Size += uint64(len(chunk))

		out, ferr := s.comp.Feed(chunk)
		if ferr != nil {
			return nil, s.fatal(cur.entry, ferr)
		}
		cur.info.SizeCompressed += uint64(len(out))
		s.emit.B = append(s.emit.B, out...)
		s.fire(EntryUpdated{Entry: cur.entry, Info: cur.info})

		return s.emit.Bytes(), nil

	case err == io.EOF:
		tail, cerr := s.comp.Close()
		if cerr != nil {
			return nil, s.fatal(cur.entry, cerr)
		}
		cur.info.SizeCompressed += uint64(len(tail))
		s.emit.B = append(s.emit.B, tail...)

		desc := section.DataDescriptor{
			CRC32:            cur.info.Checksum,
			CompressedSize:   cur.info.SizeCompressed,
			UncompressedSize: cur.info.Size,
		}
		s.emit.B = desc.AppendTo(s.emit.B)

		_ = cur.src.Close()
		s.encoded = append(s.encoded, encodedEntry{entry: cur.entry, info: cur.info})
		s.cur = nil
		s.fire(EntryCompleted{Entry: cur.entry})

		return s.emit.Bytes(), nil

	default:
		// The payload failed partway. The compressed bytes already
		// emitted stay in the output; the entry is recorded as failed
		// and never reaches the central directory.
		_, _ = s.comp.Close()
		_ = cur.src.Close()
		s.cur = nil

		return s.entryFailed(cur.entry, err)
	}
}

// entryFailed applies the error policy for a failure at entry start or
// mid-payload.
func (s *Stream) entryFailed(entry manifest.Entry, err error) ([]byte, error) {
	s.encoded = append(s.encoded, encodedEntry{entry: entry, err: err})
	s.fire(EntryFailed{Entry: entry, Err: err})

	if s.errorMode == Skip {
		return s.emit.Bytes(), nil
	}

	s.fire(StreamEnded{Err: err})
	s.phase = phaseFailed
	s.err = fmt.Errorf("%w: entry %q: %w", errs.ErrStreamHalted, entry.Path, err)
	s.release()

	return nil, s.err
}

// fatal aborts the stream regardless of error mode; compressor failures
// never leave a usable archive.
func (s *Stream) fatal(entry manifest.Entry, err error) error {
	s.fire(EntryFailed{Entry: entry, Err: err})
	s.fire(StreamEnded{Err: err})
	s.phase = phaseFailed
	s.err = fmt.Errorf("%w: entry %q: %w", errs.ErrStreamHalted, entry.Path, err)
	s.release()

	return s.err
}

// finish emits the central directory and the end records in one chunk.
func (s *Stream) finish() ([]byte, error) {
	if s.comp != nil {
		if err := s.comp.Finalize(); err != nil {
			s.fire(StreamEnded{Err: err})
			s.phase = phaseFailed
			s.err = fmt.Errorf("%w: %w", errs.ErrStreamHalted, err)
			s.release()

			return nil, s.err
		}
		s.comp = nil
	}

	directoryOffset := s.bytesEmitted
	var count uint64
	for _, ee := range s.encoded {
		if ee.err != nil {
			continue
		}

		attrs := ee.entry.Attributes
		header := section.CentralHeader{
			Path:             ee.entry.Path,
			Method:           ee.entry.Method,
			Modified:         ee.entry.Timestamp,
			CRC32:            ee.info.Checksum,
			CompressedSize:   ee.info.SizeCompressed,
			UncompressedSize: ee.info.Size,
			Offset:           ee.info.Offset,
			ExternalAttrs:    section.UnixExternalAttrs(attrs.Mode, attrs.SetUID, attrs.SetGID, attrs.Sticky),
			UID:              attrs.UID,
			GID:              attrs.GID,
			HasOwner:         attrs.HasOwner,
		}
		s.emit.B = header.AppendTo(s.emit.B)
		count++
	}

	eocd := section.EndOfCentralDirectory{
		EntryCount:      count,
		DirectorySize:   uint64(s.emit.Len()),
		DirectoryOffset: directoryOffset,
	}
	s.emit.B = eocd.AppendTo(s.emit.B)

	s.phase = phaseDone
	s.fire(StreamEnded{Err: nil})

	return s.emit.Bytes(), nil
}

// release closes whatever the stream still owns. It runs on halt, on Close
// and after the final chunk has been consumed.
func (s *Stream) release() {
	if s.cur != nil {
		_ = s.cur.src.Close()
		s.cur = nil
	}
	if s.comp != nil {
		_ = s.comp.Finalize()
		s.comp = nil
	}
	if s.emit != nil {
		pool.PutChunkBuffer(s.emit)
		s.emit = nil
	}
	s.pending = nil
}
