package section

import (
	"time"

	"github.com/arloliu/zipflow/format"
)

// CentralHeader is one central directory file header. The four legacy
// size/offset fields always hold 0xFFFFFFFF placeholders; the true 64-bit
// values travel in the Zip64 extended information extra field regardless of
// magnitude, so a reader never has to guess which representation is in use.
type CentralHeader struct {
	Path     string
	Method   format.Method
	Modified time.Time

	CRC32            uint32
	CompressedSize   uint64
	UncompressedSize uint64

	// Offset is the absolute position of the entry's local header in the
	// output stream.
	Offset uint64

	// ExternalAttrs carries the unix mode in the high 16 bits, as produced
	// by UnixExternalAttrs.
	ExternalAttrs uint32

	// UID and GID are recorded in an Info-ZIP New Unix extra field when
	// HasOwner is set; otherwise the field is omitted entirely.
	UID      uint32
	GID      uint32
	HasOwner bool
}

// UnixExternalAttrs packs a regular-file unix mode into the external
// attributes field: (S_IFREG | setuid | setgid | sticky | mode) << 16.
func UnixExternalAttrs(mode uint32, setuid, setgid, sticky bool) uint32 {
	m := uint32(s_IFREG) | (mode & 0o777)
	if setuid {
		m |= s_ISUID
	}
	if setgid {
		m |= s_ISGID
	}
	if sticky {
		m |= s_ISVTX
	}

	return m << 16
}

// EncodedLen returns the number of bytes AppendTo will append.
func (h *CentralHeader) EncodedLen() int {
	return CentralHeaderLen + len(h.Path) + h.extraLen()
}

func (h *CentralHeader) extraLen() int {
	n := extTimeExtraLen + zip64ExtraLen
	if h.HasOwner {
		n += unixExtraLen
	}

	return n
}

// AppendTo appends the encoded header, path and extra fields to dst and
// returns the result.
func (h *CentralHeader) AppendTo(dst []byte) []byte {
	dosDate, dosTime := timeToMsDosTime(h.Modified)

	var buf [CentralHeaderLen]byte
	b := writeBuf(buf[:])
	b.uint32(centralHeaderSignature)
	b.uint8(zipVersion45)
	b.uint8(hostUnix)
	b.uint16(zipVersion45)
	b.uint16(flagDataDescriptor | flagUTF8)
	b.uint16(uint16(h.Method))
	b.uint16(dosTime)
	b.uint16(dosDate)
	b.uint32(h.CRC32)
	b.uint32(uint32max) // compressed size, in zip64 extra
	b.uint32(uint32max) // uncompressed size, in zip64 extra
	b.uint16(uint16(len(h.Path)))
	b.uint16(uint16(h.extraLen()))
	b.uint16(0) // comment length
	b.skip(4)   // disk number start, internal attributes
	b.uint32(h.ExternalAttrs)
	b.uint32(uint32max) // local header offset, in zip64 extra

	dst = append(dst, buf[:]...)
	dst = append(dst, h.Path...)
	dst = h.appendExtTimeExtra(dst)
	dst = h.appendZip64Extra(dst)
	if h.HasOwner {
		dst = h.appendUnixExtra(dst)
	}

	return dst
}

// appendExtTimeExtra appends the extended timestamp extra field with only
// the modification-time bit set.
func (h *CentralHeader) appendExtTimeExtra(dst []byte) []byte {
	var buf [extTimeExtraLen]byte
	b := writeBuf(buf[:])
	b.uint16(extTimeExtraID)
	b.uint16(5) // flags byte plus uint32 mod time
	b.uint8(1)  // mod time present
	b.uint32(uint32(h.Modified.Unix()))

	return append(dst, buf[:]...)
}

// appendZip64Extra appends the Zip64 extended information extra field with
// uncompressed size, compressed size and local header offset, in that order.
func (h *CentralHeader) appendZip64Extra(dst []byte) []byte {
	var buf [zip64ExtraLen]byte
	b := writeBuf(buf[:])
	b.uint16(zip64ExtraID)
	b.uint16(24)
	b.uint64(h.UncompressedSize)
	b.uint64(h.CompressedSize)
	b.uint64(h.Offset)

	return append(dst, buf[:]...)
}

// appendUnixExtra appends the Info-ZIP New Unix extra field carrying the
// entry owner as 4-byte UID and GID values.
func (h *CentralHeader) appendUnixExtra(dst []byte) []byte {
	var buf [unixExtraLen]byte
	b := writeBuf(buf[:])
	b.uint16(infoZipUnixExtraID)
	b.uint16(11)
	b.uint8(1) // version
	b.uint8(4) // uid size
	b.uint32(h.UID)
	b.uint8(4) // gid size
	b.uint32(h.GID)

	return append(dst, buf[:]...)
}
