package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-craft/voxelstore/internal/compress"
	"github.com/go-theft-craft/voxelstore/internal/tag"
)

func TestWriteEmptyCompoundRoot(t *testing.T) {
	n := New("", tag.New(tag.Compound))
	compressed, err := Write(n, compress.Zlib)
	require.NoError(t, err)

	raw, err := compress.Decompress(compress.Zlib, compressed)
	require.NoError(t, err)
	require.Equal(t, []byte{0x0A, 0x00, 0x00, 0x00}, raw)
}

func TestWriteLengthMatchesValueLen(t *testing.T) {
	root := tag.CompoundOf(
		tag.Entry{Key: "n", Value: tag.IntOf(42)},
		tag.Entry{Key: "s", Value: tag.StringOf("hi")},
	)
	n := New("root", root)

	compressed, err := Write(n, compress.Gzip)
	require.NoError(t, err)

	raw, err := compress.Decompress(compress.Gzip, compressed)
	require.NoError(t, err)
	require.Equal(t, 1+2+len("root")+valueLen(root), len(raw))
}

func TestWriteNilNamedNbtFails(t *testing.T) {
	_, err := Write(nil, compress.Zlib)
	require.Error(t, err)
}
