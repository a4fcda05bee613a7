package section

// EndOfCentralDirectory closes the archive. The ZIP64 record and its locator
// are always emitted, followed by the legacy end record whose narrow fields
// hold saturating placeholders when the true values do not fit.
type EndOfCentralDirectory struct {
	// EntryCount is the number of central directory records written.
	EntryCount uint64

	// DirectorySize is the byte length of the central directory, excluding
	// the end records themselves.
	DirectorySize uint64

	// DirectoryOffset is the absolute position of the first central
	// directory record in the output stream.
	DirectoryOffset uint64
}

// EncodedLen returns the number of bytes AppendTo will append.
func (e *EndOfCentralDirectory) EncodedLen() int {
	return Directory64EndLen + Directory64LocLen + DirectoryEndLen
}

// AppendTo appends the ZIP64 end record, the ZIP64 locator and the legacy
// end record to dst and returns the result.
func (e *EndOfCentralDirectory) AppendTo(dst []byte) []byte {
	zip64EndOffset := e.DirectoryOffset + e.DirectorySize

	var buf [Directory64EndLen + Directory64LocLen + DirectoryEndLen]byte
	b := writeBuf(buf[:])

	// Zip64 end of central directory record.
	b.uint32(directory64EndSignature)
	b.uint64(Directory64EndLen - 12) // size of remainder of this record
	b.uint16(zipVersion45)           // version made by
	b.uint16(zipVersion45)           // version needed to extract
	b.uint32(0)                      // number of this disk
	b.uint32(0)                      // disk with the start of the central directory
	b.uint64(e.EntryCount)           // entries on this disk
	b.uint64(e.EntryCount)           // entries total
	b.uint64(e.DirectorySize)
	b.uint64(e.DirectoryOffset)

	// Zip64 end of central directory locator.
	b.uint32(directory64LocSignature)
	b.uint32(0) // disk with the zip64 end record
	b.uint64(zip64EndOffset)
	b.uint32(1) // total number of disks

	// Legacy end of central directory record.
	b.uint32(directoryEndSignature)
	b.skip(4) // disk numbers
	b.uint16(saturate16(e.EntryCount))
	b.uint16(saturate16(e.EntryCount))
	b.uint32(saturate32(e.DirectorySize))
	b.uint32(saturate32(e.DirectoryOffset))
	b.uint16(0) // comment length

	return append(dst, buf[:]...)
}

func saturate16(v uint64) uint16 {
	if v >= uint16max {
		return uint16max
	}

	return uint16(v)
}

func saturate32(v uint64) uint32 {
	if v >= uint32max {
		return uint32max
	}

	return uint32(v)
}
