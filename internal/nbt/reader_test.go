package nbt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-craft/voxelstore/internal/compress"
	"github.com/go-theft-craft/voxelstore/internal/tag"
)

func TestParseEmptyCompoundRoot(t *testing.T) {
	// root kind Compound (0x0A), empty name, immediate End terminator.
	raw := []byte{0x0A, 0x00, 0x00, 0x00}
	compressed, err := compress.Compress(compress.Zlib, raw)
	require.NoError(t, err)

	n, err := Parse(compressed, compress.Zlib)
	require.NoError(t, err)
	require.Equal(t, "", n.Name())
	require.Equal(t, tag.Compound, n.Root().Kind())
	require.Equal(t, 0, n.Root().Size())
}

func TestParseTooShortFails(t *testing.T) {
	compressed, err := compress.Compress(compress.Zlib, []byte{0x0A})
	require.NoError(t, err)
	_, err = Parse(compressed, compress.Zlib)
	require.Error(t, err)
}

func TestParseUnknownRootKindFails(t *testing.T) {
	raw := []byte{0xFF, 0x00, 0x00}
	compressed, err := compress.Compress(compress.Zlib, raw)
	require.NoError(t, err)
	_, err = Parse(compressed, compress.Zlib)
	require.Error(t, err)
}

func TestParseTrailingBytesFails(t *testing.T) {
	raw := []byte{0x0A, 0x00, 0x00, 0x00, 0xAA} // valid compound plus one garbage byte
	compressed, err := compress.Compress(compress.Zlib, raw)
	require.NoError(t, err)
	_, err = Parse(compressed, compress.Zlib)
	require.Error(t, err)
}

func TestParseUnterminatedCompoundFails(t *testing.T) {
	// one Int entry "x"=1, but no terminating 0x00
	raw := []byte{0x0A, 0x00, 0x00, 0x03, 0x00, 0x01, 'x', 0x00, 0x00, 0x00, 0x01}
	compressed, err := compress.Compress(compress.Gzip, raw)
	require.NoError(t, err)
	_, err = Parse(compressed, compress.Gzip)
	require.Error(t, err)
}

func TestParseListTruncatedBeforeCountReachedFails(t *testing.T) {
	// root compound with one list entry declaring 3 Int elements but only
	// supplying one, and no bytes left to read the rest.
	raw := []byte{
		0x0A, 0x00, 0x00, // root compound, empty name
		0x09, 0x00, 1, 'l', // list tag named "l"
		0x03,                   // element kind: Int
		0x00, 0x00, 0x00, 0x03, // declared count 3
		0x00, 0x00, 0x00, 0x01, // one Int value (1)
		// input ends here — two more Ints were promised
	}
	compressed, err := compress.Compress(compress.Zlib, raw)
	require.NoError(t, err)
	_, err = Parse(compressed, compress.Zlib)
	require.Error(t, err)
}

func TestParseAutoDetectsCodec(t *testing.T) {
	raw := []byte{0x0A, 0x00, 0x00, 0x00}
	compressed, err := compress.Compress(compress.Gzip, raw)
	require.NoError(t, err)

	n, err := Parse(compressed, compress.Auto)
	require.NoError(t, err)
	require.Equal(t, tag.Compound, n.Root().Kind())
}
