package section

const (
	localHeaderSignature    = 0x04034b50
	centralHeaderSignature  = 0x02014b50
	directoryEndSignature   = 0x06054b50
	directory64EndSignature = 0x06064b50
	directory64LocSignature = 0x07064b50
	dataDescriptorSignature = 0x08074b50 // de-facto standard, required by OS X

	// Record lengths, excluding variable-length path and extra data.
	LocalHeaderLen    = 30
	DataDescriptorLen = 24 // signature, crc32 and two uint64 sizes
	CentralHeaderLen  = 46
	DirectoryEndLen   = 22
	Directory64EndLen = 56
	Directory64LocLen = 20

	// Extra header IDs.
	//
	// See http://mdfs.net/Docs/Comp/Archiving/Zip/ExtraField
	zip64ExtraID       = 0x0001 // Zip64 extended information
	extTimeExtraID     = 0x5455 // Extended timestamp
	infoZipUnixExtraID = 0x7875 // Info-ZIP New Unix (UID/GID)

	zip64ExtraLen   = 4 + 24 // id, size, three uint64
	extTimeExtraLen = 4 + 5  // id, size, flags byte, uint32 mod time
	unixExtraLen    = 4 + 11 // id, size, version, two length-prefixed uint32

	// Version 4.5 marks ZIP64 capability; host 3 is UNIX.
	zipVersion45 = 45
	hostUnix     = 3

	// General-purpose bit flags: bit 3 announces the data descriptor,
	// bit 11 marks the path as UTF-8.
	flagDataDescriptor = 0x0008
	flagUTF8           = 0x0800

	uint16max = (1 << 16) - 1
	uint32max = (1 << 32) - 1
)

// Unix file type and permission bits used in external attributes.
// The ZIP specification does not name them, but tools agree on these values.
const (
	s_IFREG = 0x8000
	s_ISUID = 0x0800
	s_ISGID = 0x0400
	s_ISVTX = 0x0200
)
