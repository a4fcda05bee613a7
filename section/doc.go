// Package section defines the low-level binary records of the ZIP64 archive
// format and their byte-exact encoders.
//
// Every record is encoded little-endian following the PKWARE APPNOTE,
// version 4.5, with the ZIP64 extensions treated as mandatory. The archive
// produced from these records is a pure stream: local headers carry no sizes
// (general-purpose bit 3 is always set) and the real values trail each
// payload in a ZIP64-wide data descriptor.
//
// # Records
//
//  1. LocalHeader: precedes each entry payload, streaming form
//  2. DataDescriptor: CRC-32 and 64-bit sizes, after each payload
//  3. CentralHeader: one per archived entry in the central directory
//  4. EndOfCentralDirectory: ZIP64 record + locator + legacy record
//
// # Layout of a produced archive
//
//	┌──────────────────────────────────────────────┐
//	│ Local File Header (30 bytes + path)          │  per entry
//	│ Payload (stored or raw-deflated)             │
//	│ Data Descriptor (24 bytes)                   │
//	├──────────────────────────────────────────────┤
//	│ Central File Header (46 bytes + path + extra)│  per completed entry
//	├──────────────────────────────────────────────┤
//	│ Zip64 End of Central Directory (56 bytes)    │
//	│ Zip64 EOCD Locator (20 bytes)                │
//	│ End of Central Directory (22 bytes)          │
//	└──────────────────────────────────────────────┘
//
// The central header always stores 0xFFFFFFFF in the legacy size and offset
// fields and carries the true 64-bit values in the Zip64 extended
// information extra field, so readers never need the overflow heuristics.
//
// All encoders follow the AppendTo convention: they append the encoded
// record to the destination slice and return it, so callers can assemble a
// chunk from several records without intermediate allocations.
package section
