package tag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-craft/voxelstore/internal/tag"
)

type countingAllocator struct{ calls int }

func (c *countingAllocator) Bytes(n int) []byte {
	c.calls++
	return make([]byte, n)
}

func TestNewRejectsEnd(t *testing.T) {
	require.Nil(t, tag.New(tag.End))
}

func TestFloatingReferenceStartsAtZero(t *testing.T) {
	i := tag.IntOf(42)
	require.EqualValues(t, 0, i.RefCount())
}

func TestRefUnrefLifecycle(t *testing.T) {
	s := tag.StringOf("hello")
	s.Ref()
	require.EqualValues(t, 1, s.RefCount())
	s.Ref()
	require.EqualValues(t, 2, s.RefCount())
	s.Unref()
	require.EqualValues(t, 1, s.RefCount())
	s.Unref()
	require.EqualValues(t, 0, s.RefCount())

	require.Equal(t, "", s.Str(), "accessors on a released tag should soft-fail, not panic")
}

func TestIntegerTruncation(t *testing.T) {
	b := tag.New(tag.Byte)
	b.SetInt(0x1FF)
	require.EqualValues(t, -1, b.GetInt(), "0x1FF truncates to byte 0xFF, sign-extended as int8(-1)")

	sh := tag.New(tag.Short)
	sh.SetInt(0x1FFFF)
	require.EqualValues(t, -1, sh.GetInt())

	in := tag.New(tag.Int)
	in.SetInt(0x100000000)
	require.EqualValues(t, 0, in.GetInt())

	lo := tag.New(tag.Long)
	lo.SetInt(1<<40 + 7)
	require.EqualValues(t, 1<<40+7, lo.GetInt())
}

func TestFloatNarrowing(t *testing.T) {
	f := tag.New(tag.Float)
	f.SetFloat(1.0 / 3.0)
	require.EqualValues(t, float64(float32(1.0/3.0)), f.GetFloat())

	d := tag.New(tag.Double)
	d.SetFloat(1.0 / 3.0)
	require.Equal(t, 1.0/3.0, d.GetFloat())
}

func TestByteArrayIsCopied(t *testing.T) {
	src := []byte{1, 2, 3}
	ba := tag.ByteArrayOf(src)
	src[0] = 0xFF
	require.Equal(t, byte(1), ba.Bytes()[0], "SetBytes must copy, not alias")
}

func TestWrongKindAccessorIsSoftFailure(t *testing.T) {
	b := tag.New(tag.Byte)
	require.Equal(t, "", b.Str())
	require.Equal(t, float64(0), b.GetFloat())
}

func TestSetAllocatorIsUsedForByteArrays(t *testing.T) {
	counter := &countingAllocator{}
	tag.SetAllocator(counter)
	defer tag.SetAllocator(nil)

	tag.ByteArrayOf([]byte{1, 2, 3})
	require.Equal(t, 1, counter.calls)
}

func TestUnrefReleasesCompoundChildren(t *testing.T) {
	child := tag.IntOf(7)
	root := tag.CompoundOf(tag.Entry{Key: "x", Value: child})
	require.EqualValues(t, 1, child.RefCount())

	root.Ref()
	root.Unref()
	require.EqualValues(t, 0, child.RefCount(), "releasing the parent must unref owned children")
}
