// Package compress provides the streaming compressor abstraction used while
// encoding archive entries.
//
// A Compressor transforms one entry payload at a time. The archive encoder
// drives it through a strict lifecycle:
//
//	Open(opts)  → optional header bytes, once per compressor
//	Feed(p)     → zero or more output bytes per input chunk
//	Close()     → residual bytes flushed at end of payload
//	Reset(opts) → prepare for the next entry; Deflate keeps its context only
//	              when the effective level is unchanged
//	Finalize()  → release the context; no calls are permitted afterwards
//
// Two implementations exist, matching the only methods a produced archive
// may contain: Store (method 0, passthrough) and Deflate (method 8, raw
// DEFLATE without zlib framing, via github.com/klauspost/compress/flate).
//
// Output slices returned by Feed and Close remain valid only until the next
// call on the same compressor; callers append them to their own buffers
// immediately.
package compress
