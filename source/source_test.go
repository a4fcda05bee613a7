package source

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zipflow/errs"
)

// collect drains a source until io.EOF and returns the payload.
func collect(t *testing.T, src Source) []byte {
	t.Helper()

	var out []byte
	for {
		chunk, err := src.Read()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, chunk...)
	}
}

func TestFileSource(t *testing.T) {
	payload := []byte("file payload for the archive")
	path := filepath.Join(t.TempDir(), "payload.bin")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	d := File(path)
	require.NoError(t, d.Validate())

	src, err := d.Build()
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, payload, collect(t, src))
}

func TestFileSource_ChunksLargePayload(t *testing.T) {
	payload := make([]byte, chunkSize*2+17)
	for i := range payload {
		payload[i] = byte(i)
	}
	path := filepath.Join(t.TempDir(), "large.bin")
	require.NoError(t, os.WriteFile(path, payload, 0o644))

	src, err := File(path).Build()
	require.NoError(t, err)
	defer src.Close()

	chunk, err := src.Read()
	require.NoError(t, err)
	require.Len(t, chunk, chunkSize, "reads happen in fixed chunks")

	rest := collect(t, src)
	require.Equal(t, payload[chunkSize:], rest)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "absent")).Build()
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileSource_EmptyPathInvalid(t *testing.T) {
	require.ErrorIs(t, File("").Validate(), errs.ErrSourceInvalid)
}

func TestRandomSource(t *testing.T) {
	const n = chunkSize + 1234

	src, err := Random(n).Build()
	require.NoError(t, err)
	defer src.Close()

	chunk, err := src.Read()
	require.NoError(t, err)
	require.Len(t, chunk, chunkSize)

	got := append(append([]byte(nil), chunk...), collect(t, src)...)
	require.Len(t, got, n)
}

func TestRandomSource_ZeroBytes(t *testing.T) {
	src, err := Random(0).Build()
	require.NoError(t, err)
	defer src.Close()

	_, err = src.Read()
	require.ErrorIs(t, err, io.EOF)
}

func TestBytesSource(t *testing.T) {
	payload := []byte("in-memory payload")

	src, err := Bytes(payload).Build()
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, payload, collect(t, src))
}

func TestDynamicSource_ResolvesDescriptor(t *testing.T) {
	d := Dynamic(func() (Descriptor, error) {
		return Bytes([]byte("resolved later")), nil
	})
	require.NoError(t, d.Validate())

	src, err := d.Build()
	require.NoError(t, err)
	defer src.Close()

	require.Equal(t, []byte("resolved later"), collect(t, src))
}

func TestDynamicSource_CallbackError(t *testing.T) {
	notFound := errors.New("not_found")
	d := Dynamic(func() (Descriptor, error) {
		return nil, notFound
	})

	_, err := d.Build()
	require.ErrorIs(t, err, notFound)
}

func TestDynamicSource_NilResult(t *testing.T) {
	d := Dynamic(func() (Descriptor, error) {
		return nil, nil
	})

	_, err := d.Build()
	require.ErrorIs(t, err, errs.ErrSourceInvalid)
}

func TestDynamicSource_NilCallbackInvalid(t *testing.T) {
	require.ErrorIs(t, Dynamic(nil).Validate(), errs.ErrSourceInvalid)
}
