package tag_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-theft-craft/voxelstore/internal/tag"
)

func TestCompoundSetAndGet(t *testing.T) {
	c := tag.CompoundOf(
		tag.Entry{Key: "health", Value: tag.IntOf(20)},
		tag.Entry{Key: "name", Value: tag.StringOf("steve")},
	)
	require.EqualValues(t, 20, c.Get("health").GetInt())
	require.Equal(t, "steve", c.Get("name").Str())
	require.Equal(t, 2, c.Size())
}

func TestCompoundGetMissingKeyIsNil(t *testing.T) {
	c := tag.New(tag.Compound)
	require.Nil(t, c.Get("missing"))
}

func TestCompoundSetReplacesAndMovesToFront(t *testing.T) {
	c := tag.CompoundOf(
		tag.Entry{Key: "a", Value: tag.IntOf(1)},
		tag.Entry{Key: "b", Value: tag.IntOf(2)},
	)

	old := c.Get("a")
	require.EqualValues(t, 1, old.RefCount())

	c.Set("a", tag.IntOf(99))
	require.EqualValues(t, 0, old.RefCount(), "replacing a binding must unref the prior value")
	require.EqualValues(t, 99, c.Get("a").GetInt())

	// re-insertion moves the pair to the front of iteration order
	it := c.CompoundIterator()
	key, _, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, "a", key)
}

func TestCompoundDeleteUnrefs(t *testing.T) {
	v := tag.IntOf(5)
	c := tag.CompoundOf(tag.Entry{Key: "x", Value: v})
	require.EqualValues(t, 1, v.RefCount())

	c.Delete("x")
	require.EqualValues(t, 0, v.RefCount())
	require.Nil(t, c.Get("x"))
	require.Equal(t, 0, c.Size())
}

func TestCompoundGetChainWalksNestedCompounds(t *testing.T) {
	inner := tag.CompoundOf(tag.Entry{Key: "y", Value: tag.IntOf(7)})
	outer := tag.CompoundOf(tag.Entry{Key: "x", Value: inner})

	require.EqualValues(t, 7, outer.GetChain("x", "y").GetInt())
}

func TestCompoundGetChainBreaksOnNonCompoundIntermediate(t *testing.T) {
	outer := tag.CompoundOf(tag.Entry{Key: "x", Value: tag.IntOf(1)})
	require.Nil(t, outer.GetChain("x", "y"))
}

func TestCompoundGetChainMissingKeyIsNil(t *testing.T) {
	outer := tag.CompoundOf(tag.Entry{Key: "x", Value: tag.IntOf(1)})
	require.Nil(t, outer.GetChain("nope"))
}

func TestCompoundIteratorInvalidatedByMutation(t *testing.T) {
	c := tag.CompoundOf(tag.Entry{Key: "a", Value: tag.IntOf(1)})
	it := c.CompoundIterator()

	_, _, ok := it.Next()
	require.True(t, ok)

	c.Set("b", tag.IntOf(2))

	_, _, ok = it.Next()
	require.False(t, ok)
}
