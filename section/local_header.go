package section

import (
	"time"

	"github.com/arloliu/zipflow/format"
)

// LocalHeader is the streaming-form local file header that precedes an entry
// payload. CRC-32 and both size fields are zero placeholders; the real
// values follow the payload in a DataDescriptor. General-purpose bits 3
// (data descriptor) and 11 (UTF-8 path) are always set.
type LocalHeader struct {
	// Path is the entry path, written as raw UTF-8 bytes without
	// normalization. Its encoded length is the UTF-8 byte count.
	Path string

	// Method is the compression method recorded for the entry.
	Method format.Method

	// Modified is the entry modification time, encoded as a DOS date/time
	// pair at 2-second resolution.
	Modified time.Time
}

// EncodedLen returns the number of bytes AppendTo will append.
func (h *LocalHeader) EncodedLen() int {
	return LocalHeaderLen + len(h.Path)
}

// AppendTo appends the encoded header to dst and returns the result.
func (h *LocalHeader) AppendTo(dst []byte) []byte {
	dosDate, dosTime := timeToMsDosTime(h.Modified)

	var buf [LocalHeaderLen]byte
	b := writeBuf(buf[:])
	b.uint32(localHeaderSignature)
	b.uint16(zipVersion45)
	b.uint16(flagDataDescriptor | flagUTF8)
	b.uint16(uint16(h.Method))
	b.uint16(dosTime)
	b.uint16(dosDate)
	b.uint32(0) // crc32 lives in the data descriptor
	b.uint32(0) // compressed size
	b.uint32(0) // uncompressed size
	b.uint16(uint16(len(h.Path)))
	b.uint16(0) // no extra data in the local header

	dst = append(dst, buf[:]...)
	dst = append(dst, h.Path...)

	return dst
}
