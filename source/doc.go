// Package source defines where entry payloads come from.
//
// A Descriptor is a small immutable value naming a payload source; it can be
// validated cheaply at manifest construction time and built into a live
// Source once the encoder reaches its entry. Built-in descriptors cover
// local files, HTTP(S) downloads, deferred construction via a callback,
// strong random bytes and in-memory byte slices. Any type implementing
// Descriptor can be used as an entry source, so callers may extend the set.
//
// A Source yields the payload as successive chunks:
//
//	chunk, err := src.Read()
//	// err == nil: chunk (possibly empty) is valid until the next Read
//	// err == io.EOF: payload complete, chunk is nil
//	// otherwise: payload failed; the archive encoder applies its policy
//
// The URL source runs a small pipeline: a worker goroutine drives the HTTP
// response body into a bounded buffer, and Read drains that buffer without
// ever blocking. See Buffer for the backpressure rules.
package source
