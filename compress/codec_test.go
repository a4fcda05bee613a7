package compress

import (
	"bytes"
	"io"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/zipflow/errs"
	"github.com/arloliu/zipflow/format"
)

// runEntry drives one full entry through a compressor and returns the
// concatenated output stream.
func runEntry(t *testing.T, c Compressor, chunks [][]byte) []byte {
	t.Helper()

	var out []byte
	for _, chunk := range chunks {
		produced, err := c.Feed(chunk)
		require.NoError(t, err)
		out = append(out, produced...)
	}

	tail, err := c.Close()
	require.NoError(t, err)

	return append(out, tail...)
}

func inflate(t *testing.T, compressed []byte) []byte {
	t.Helper()

	fr := flate.NewReader(bytes.NewReader(compressed))
	defer fr.Close()

	plain, err := io.ReadAll(fr)
	require.NoError(t, err)

	return plain
}

func TestNew(t *testing.T) {
	c, err := New(format.MethodStore)
	require.NoError(t, err)
	require.Equal(t, format.MethodStore, c.Method())

	c, err = New(format.MethodDeflate)
	require.NoError(t, err)
	require.Equal(t, format.MethodDeflate, c.Method())

	_, err = New(format.Method(3))
	require.ErrorIs(t, err, errs.ErrMethodInvalid)
}

func TestStore_Passthrough(t *testing.T) {
	s := NewStore()

	header, err := s.Open(Options{})
	require.NoError(t, err)
	require.Empty(t, header)

	out := runEntry(t, s, [][]byte{[]byte("hello "), []byte("world")})
	require.Equal(t, []byte("hello world"), out)

	_, err = s.Reset(Options{})
	require.NoError(t, err)
	out = runEntry(t, s, [][]byte{[]byte("next entry")})
	require.Equal(t, []byte("next entry"), out)

	require.NoError(t, s.Finalize())
	_, err = s.Feed([]byte("late"))
	require.ErrorIs(t, err, errs.ErrCompressorFinalized)
}

func TestDeflate_RoundTrip(t *testing.T) {
	d := NewDeflate()

	header, err := d.Open(Options{Level: format.LevelDefault})
	require.NoError(t, err)
	require.Empty(t, header, "raw deflate has no stream header")

	payload := bytes.Repeat([]byte("zipflow streaming payload "), 4096)
	out := runEntry(t, d, [][]byte{payload[:1000], payload[1000:]})
	require.NotEmpty(t, out)
	require.Less(t, len(out), len(payload), "repetitive input must shrink")
	require.Equal(t, payload, inflate(t, out))

	require.NoError(t, d.Finalize())
}

func TestDeflate_ResetReusesContext(t *testing.T) {
	d := NewDeflate()

	_, err := d.Open(Options{Level: format.LevelDefault})
	require.NoError(t, err)

	first := runEntry(t, d, [][]byte{[]byte("first entry payload")})
	require.Equal(t, []byte("first entry payload"), inflate(t, first))

	_, err = d.Reset(Options{Level: format.LevelDefault})
	require.NoError(t, err)

	second := runEntry(t, d, [][]byte{[]byte("second entry payload")})
	require.Equal(t, []byte("second entry payload"), inflate(t, second),
		"stream after reset must be independent of the previous entry")

	require.NoError(t, d.Finalize())
}

func TestDeflate_ResetChangesLevel(t *testing.T) {
	d := NewDeflate()

	_, err := d.Open(Options{Level: format.LevelBestSpeed})
	require.NoError(t, err)
	payload := bytes.Repeat([]byte("abcdef"), 10000)
	fast := runEntry(t, d, [][]byte{payload})
	require.Equal(t, payload, inflate(t, fast))

	_, err = d.Reset(Options{Level: format.LevelBestCompression})
	require.NoError(t, err)
	best := runEntry(t, d, [][]byte{payload})
	require.Equal(t, payload, inflate(t, best))

	require.NoError(t, d.Finalize())
}

func TestDeflate_LevelNone(t *testing.T) {
	d := NewDeflate()

	_, err := d.Open(Options{Level: format.LevelNone})
	require.NoError(t, err)

	payload := []byte("uncompressed but still framed")
	out := runEntry(t, d, [][]byte{payload})
	require.Equal(t, payload, inflate(t, out))

	require.NoError(t, d.Finalize())
}

func TestDeflate_HuffmanOnlyStrategy(t *testing.T) {
	d := NewDeflate()

	_, err := d.Open(Options{Level: format.LevelDefault, Strategy: format.StrategyHuffmanOnly})
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("rle-friendly-data "), 1000)
	out := runEntry(t, d, [][]byte{payload})
	require.Equal(t, payload, inflate(t, out))

	require.NoError(t, d.Finalize())
}

func TestOptions_Validate(t *testing.T) {
	require.NoError(t, Options{Level: format.LevelDefault}.Validate())
	require.NoError(t, Options{Level: 5, Strategy: format.StrategyFixed}.Validate())

	err := Options{Level: 10}.Validate()
	require.ErrorIs(t, err, errs.ErrLevelInvalid)

	err = Options{Level: -2}.Validate()
	require.ErrorIs(t, err, errs.ErrLevelInvalid)

	err = Options{Strategy: format.Strategy(9)}.Validate()
	require.ErrorIs(t, err, errs.ErrStrategyInvalid)
}
