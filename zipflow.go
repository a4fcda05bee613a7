// Package zipflow produces streamable ZIP64 archives from an ordered
// manifest of entries whose payloads come from heterogeneous sources.
//
// The archive is emitted as a lazy sequence of byte chunks: the full
// archive never resides in memory and no entry payload is buffered whole.
// That makes the output suitable for piping straight into a file, an HTTP
// response body or any other append-only sink.
//
// # Core Features
//
//   - ZIP64 throughout: archives and entries past 4GiB need no special case
//   - Streaming local headers with data descriptors; sizes never precomputed
//   - Store and raw-DEFLATE methods with per-entry level and strategy
//   - Payload sources: local files, HTTP(S) URLs, deferred callbacks,
//     strong random bytes, in-memory slices, or any custom source.Descriptor
//   - Bounded, backpressured buffering for HTTP downloads
//   - Per-entry failure policy: halt the stream or skip the entry
//   - Synchronous event callbacks for progress and error observability
//
// # Basic Usage
//
// Describe the archive with a manifest, then drain the stream:
//
//	m := manifest.New().
//	    Append(manifest.NewEntry("report.txt", source.File("/tmp/report.txt"))).
//	    Append(manifest.NewEntry("remote.bin", source.URL("https://example.com/data.bin"))).
//	    Append(manifest.NewEntry("noise.dat", source.Random(1<<20),
//	        manifest.WithMethod(format.MethodStore)))
//
//	f, _ := os.Create("bundle.zip")
//	defer f.Close()
//
//	if _, err := zipflow.WriteArchive(f, m); err != nil {
//	    log.Fatal(err)
//	}
//
// For chunk-level control, use Archive and pull the stream directly:
//
//	s, err := zipflow.Archive(m, stream.WithErrorMode(stream.Skip))
//	if err != nil {
//	    return err
//	}
//	for {
//	    chunk, err := s.Next()
//	    if err == io.EOF {
//	        break
//	    }
//	    // forward chunk to the sink
//	}
//
// # Package Structure
//
// This package provides thin wrappers over the stream package. The
// building blocks live in manifest (entries and validation), source
// (payload descriptors), compress (store/deflate codecs), section (binary
// record encoders) and stream (the encoder itself).
package zipflow

import (
	"io"

	"github.com/arloliu/zipflow/manifest"
	"github.com/arloliu/zipflow/stream"
)

// Archive creates a pull-driven archive stream over m.
//
// It fails immediately when the manifest is invalid; no bytes are emitted
// in that case.
func Archive(m *manifest.Manifest, opts ...stream.Option) (*stream.Stream, error) {
	return stream.New(m, opts...)
}

// WriteArchive encodes m and drains the whole archive into w, returning
// the number of bytes written.
func WriteArchive(w io.Writer, m *manifest.Manifest, opts ...stream.Option) (int64, error) {
	s, err := stream.New(m, opts...)
	if err != nil {
		return 0, err
	}

	return s.WriteTo(w)
}
