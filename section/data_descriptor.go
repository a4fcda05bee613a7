package section

// DataDescriptor trails each entry payload with the values the streaming
// local header omitted. Sizes are always 8 bytes wide (ZIP64 form) and the
// signature is always present.
type DataDescriptor struct {
	CRC32            uint32
	CompressedSize   uint64
	UncompressedSize uint64
}

// EncodedLen returns the number of bytes AppendTo will append.
func (d *DataDescriptor) EncodedLen() int {
	return DataDescriptorLen
}

// AppendTo appends the encoded descriptor to dst and returns the result.
func (d *DataDescriptor) AppendTo(dst []byte) []byte {
	var buf [DataDescriptorLen]byte
	b := writeBuf(buf[:])
	b.uint32(dataDescriptorSignature)
	b.uint32(d.CRC32)
	b.uint64(d.CompressedSize)
	b.uint64(d.UncompressedSize)

	return append(dst, buf[:]...)
}
