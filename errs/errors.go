// Package errs defines the sentinel errors shared across zipflow packages.
//
// Callers should match them with errors.Is; most call sites wrap them with
// additional context via fmt.Errorf and %w.
package errs

import "errors"

// Manifest validation errors.
var (
	ErrEmptyManifest     = errors.New("manifest contains no entries")
	ErrSourceMissing     = errors.New("entry source is missing")
	ErrSourceInvalid     = errors.New("entry source is invalid")
	ErrPathMissing       = errors.New("entry path is missing")
	ErrTimestampInvalid  = errors.New("entry timestamp must be UTC")
	ErrAttributesInvalid = errors.New("entry attributes are invalid")
	ErrMethodInvalid     = errors.New("entry method is invalid")
	ErrManifestInvalid   = errors.New("manifest is invalid")
)

// Source errors.
var (
	ErrUnknownSourceKind = errors.New("unknown source kind")
	ErrSchemeInvalid     = errors.New("url scheme must be http or https")
	ErrSourceClosed      = errors.New("source is closed")
)

// URL pipeline errors.
var (
	ErrBufferTerminated = errors.New("buffer terminated")
	ErrStreamTruncated  = errors.New("response body ended before completion")
)

// Compressor errors.
var (
	ErrCompressorFinalized = errors.New("compressor already finalized")
	ErrLevelInvalid        = errors.New("compression level is invalid")
	ErrStrategyInvalid     = errors.New("compression strategy is invalid")
)

// Stream errors.
var (
	ErrStreamHalted = errors.New("stream halted")
	ErrStreamDone   = errors.New("stream already ended")
)
