package section

import (
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zipflow/format"
)

// parseExtras splits a raw extra blob into id → payload.
func parseExtras(t *testing.T, extra []byte) map[uint16][]byte {
	t.Helper()

	fields := make(map[uint16][]byte)
	for len(extra) > 0 {
		require.GreaterOrEqual(t, len(extra), 4, "truncated extra header")
		id := binary.LittleEndian.Uint16(extra[0:2])
		size := int(binary.LittleEndian.Uint16(extra[2:4]))
		require.GreaterOrEqual(t, len(extra), 4+size, "truncated extra payload")
		fields[id] = extra[4 : 4+size]
		extra = extra[4+size:]
	}

	return fields
}

func TestCentralHeader_AppendTo(t *testing.T) {
	modified := time.Date(2021, 6, 15, 10, 30, 44, 0, time.UTC)
	h := &CentralHeader{
		Path:             "data.bin",
		Method:           format.MethodStore,
		Modified:         modified,
		CRC32:            0xcafebabe,
		CompressedSize:   1234,
		UncompressedSize: 1234,
		Offset:           98765,
		ExternalAttrs:    UnixExternalAttrs(0o644, false, false, false),
	}

	got := h.AppendTo(nil)
	require.Len(t, got, h.EncodedLen())

	require.Equal(t, uint32(0x02014b50), binary.LittleEndian.Uint32(got[0:4]))
	require.Equal(t, uint8(45), got[4], "version made by, low byte")
	require.Equal(t, uint8(3), got[5], "host system unix")
	require.Equal(t, uint16(45), binary.LittleEndian.Uint16(got[6:8]), "version needed")

	flags := binary.LittleEndian.Uint16(got[8:10])
	require.NotZero(t, flags&0x0008)
	require.NotZero(t, flags&0x0800)

	require.Equal(t, uint32(0xcafebabe), binary.LittleEndian.Uint32(got[16:20]))

	// Legacy fields are always placeholders.
	require.Equal(t, uint32(0xffffffff), binary.LittleEndian.Uint32(got[20:24]), "compressed size")
	require.Equal(t, uint32(0xffffffff), binary.LittleEndian.Uint32(got[24:28]), "uncompressed size")
	require.Equal(t, uint32(0xffffffff), binary.LittleEndian.Uint32(got[42:46]), "offset")

	require.Equal(t, uint32(0x8000|0o644)<<16, binary.LittleEndian.Uint32(got[38:42]), "external attrs")

	pathLen := int(binary.LittleEndian.Uint16(got[28:30]))
	extraLen := int(binary.LittleEndian.Uint16(got[30:32]))
	require.Equal(t, len("data.bin"), pathLen)
	require.Equal(t, "data.bin", string(got[CentralHeaderLen:CentralHeaderLen+pathLen]))

	extras := parseExtras(t, got[CentralHeaderLen+pathLen:CentralHeaderLen+pathLen+extraLen])

	ts, ok := extras[0x5455]
	require.True(t, ok, "extended timestamp present")
	require.Equal(t, uint8(1), ts[0], "mod time flag")
	require.Equal(t, uint32(modified.Unix()), binary.LittleEndian.Uint32(ts[1:5]))

	z64, ok := extras[0x0001]
	require.True(t, ok, "zip64 extra always present")
	require.Equal(t, uint64(1234), binary.LittleEndian.Uint64(z64[0:8]), "uncompressed")
	require.Equal(t, uint64(1234), binary.LittleEndian.Uint64(z64[8:16]), "compressed")
	require.Equal(t, uint64(98765), binary.LittleEndian.Uint64(z64[16:24]), "offset")

	_, ok = extras[0x7875]
	require.False(t, ok, "unix owner omitted without uid/gid")
}

func TestCentralHeader_ExtraOrder(t *testing.T) {
	h := &CentralHeader{Path: "x", Method: format.MethodDeflate, HasOwner: true, UID: 1000, GID: 1000}

	got := h.AppendTo(nil)
	extra := got[CentralHeaderLen+1:]

	require.Equal(t, uint16(0x5455), binary.LittleEndian.Uint16(extra[0:2]), "extended timestamp first")
	require.Equal(t, uint16(0x0001), binary.LittleEndian.Uint16(extra[extTimeExtraLen:extTimeExtraLen+2]), "zip64 second")
	require.Equal(t, uint16(0x7875),
		binary.LittleEndian.Uint16(extra[extTimeExtraLen+zip64ExtraLen:extTimeExtraLen+zip64ExtraLen+2]),
		"unix owner last")
}

func TestCentralHeader_UnixOwnerExtra(t *testing.T) {
	h := &CentralHeader{Path: "o", Method: format.MethodStore, HasOwner: true, UID: 1234, GID: 5678}

	got := h.AppendTo(nil)
	extras := parseExtras(t, got[CentralHeaderLen+1:])

	unix, ok := extras[0x7875]
	require.True(t, ok)
	require.Equal(t, uint8(1), unix[0], "version")
	require.Equal(t, uint8(4), unix[1], "uid size")
	require.Equal(t, uint32(1234), binary.LittleEndian.Uint32(unix[2:6]))
	require.Equal(t, uint8(4), unix[6], "gid size")
	require.Equal(t, uint32(5678), binary.LittleEndian.Uint32(unix[7:11]))
}

func TestUnixExternalAttrs(t *testing.T) {
	tests := []struct {
		name   string
		mode   uint32
		setuid bool
		setgid bool
		sticky bool
		want   uint32
	}{
		{name: "default mode", mode: 0o644, want: (0x8000 | 0o644) << 16},
		{name: "full mode", mode: 0o777, want: (0x8000 | 0o777) << 16},
		{name: "setuid", mode: 0o755, setuid: true, want: (0x8000 | 0x800 | 0o755) << 16},
		{name: "setgid", mode: 0o755, setgid: true, want: (0x8000 | 0x400 | 0o755) << 16},
		{name: "sticky", mode: 0o755, sticky: true, want: (0x8000 | 0x200 | 0o755) << 16},
		{name: "mode truncated to 0777", mode: 0o7755, want: (0x8000 | 0o755) << 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UnixExternalAttrs(tt.mode, tt.setuid, tt.setgid, tt.sticky)
			require.Equal(t, tt.want, got)
		})
	}
}
