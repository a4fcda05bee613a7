package stream

import (
	"github.com/arloliu/zipflow/manifest"
	"github.com/arloliu/zipflow/source"
)

// EntryInfo carries the running totals for one entry. Offset is the
// absolute position of the entry's local header in the output; the sizes
// and checksum grow as payload chunks pass through the encoder.
type EntryInfo struct {
	Offset uint64

	// Checksum is the IEEE CRC-32 of the uncompressed bytes seen so far.
	Checksum uint32

	// Size counts uncompressed payload bytes.
	Size uint64

	// SizeCompressed counts emitted payload bytes, including the
	// compressor's final flush.
	SizeCompressed uint64
}

// current is the entry being encoded right now.
type current struct {
	entry manifest.Entry
	src   source.Source
	info  EntryInfo
}

// encodedEntry records the outcome of one finished entry. Failed entries
// keep their error and are excluded from the central directory.
type encodedEntry struct {
	entry manifest.Entry
	info  EntryInfo
	err   error
}
