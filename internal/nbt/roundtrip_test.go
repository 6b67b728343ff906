package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-craft/voxelstore/internal/compress"
	"github.com/go-theft-craft/voxelstore/internal/tag"
)

func buildSample() *NamedNbt {
	root := tag.CompoundOf(
		tag.Entry{Key: "n", Value: tag.IntOf(42)},
		tag.Entry{Key: "s", Value: tag.StringOf("hi")},
		tag.Entry{Key: "list", Value: tag.ListOf(tag.ByteOf(1), tag.ByteOf(2), tag.ByteOf(3))},
		tag.Entry{Key: "nested", Value: tag.CompoundOf(
			tag.Entry{Key: "flag", Value: tag.ByteOf(1)},
		)},
	)
	return New("root", root)
}

func TestRoundTripGzip(t *testing.T) {
	n := buildSample()
	buf, err := Write(n, compress.Gzip)
	require.NoError(t, err)
	require.Equal(t, compress.Gzip, compress.Sniff(buf))

	back, err := Parse(buf, compress.Gzip)
	require.NoError(t, err)
	require.Equal(t, n.Name(), back.Name())
	require.EqualValues(t, 42, back.Root().Get("n").GetInt())
	require.Equal(t, "hi", back.Root().Get("s").Str())
	require.Equal(t, 3, back.Root().Get("list").Len())
	require.EqualValues(t, 1, back.Root().Get("nested").Get("flag").GetInt())
}

func TestRoundTripZlib(t *testing.T) {
	n := buildSample()
	buf, err := Write(n, compress.Zlib)
	require.NoError(t, err)
	require.Equal(t, compress.Zlib, compress.Sniff(buf))

	back, err := Parse(buf, compress.Zlib)
	require.NoError(t, err)
	require.EqualValues(t, 42, back.Root().Get("n").GetInt())
}

func TestRoundTripListOrderPreserved(t *testing.T) {
	root := tag.CompoundOf(
		tag.Entry{Key: "l", Value: tag.ListOf(tag.IntOf(1), tag.IntOf(2), tag.IntOf(3))},
	)
	n := New("", root)

	buf, err := Write(n, compress.Zlib)
	require.NoError(t, err)

	back, err := Parse(buf, compress.Zlib)
	require.NoError(t, err)

	l := back.Root().Get("l")
	require.Equal(t, 3, l.Len())
	require.EqualValues(t, 1, l.At(0).GetInt())
	require.EqualValues(t, 2, l.At(1).GetInt())
	require.EqualValues(t, 3, l.At(2).GetInt())
}
