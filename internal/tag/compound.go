package tag

import "github.com/go-theft-craft/voxelstore/internal/check"

// Get returns the child bound to key, or nil if absent. O(n) scan over the
// insertion-order storage.
func (t *Tag) Get(key string) *Tag {
	if !t.alive("Tag.Get") {
		return nil
	}
	if t.kind.k != Compound {
		check.Fail("Tag.Get", "not a compound tag", "kind", t.kind.k)
		return nil
	}
	for _, node := range t.compound {
		if node.key == key {
			return node.value
		}
	}
	return nil
}

// Set replaces any existing binding for key (unref-ing the prior value),
// then pushes the new pair at the front of the insertion-order sequence.
// value is ref'd, sinking a floating reference.
func (t *Tag) Set(key string, value *Tag) {
	if !t.alive("Tag.Set") {
		return
	}
	if t.kind.k != Compound {
		check.Fail("Tag.Set", "not a compound tag", "kind", t.kind.k)
		return
	}
	if value == nil {
		check.Fail("Tag.Set", "nil value", "key", key)
		return
	}

	t.delete(key)

	value.Ref()
	t.compound = append([]compoundNode{{key: key, value: value}}, t.compound...)
	t.gen++
}

// Delete removes the pair bound to key, unref-ing its value.
func (t *Tag) Delete(key string) {
	if !t.alive("Tag.Delete") {
		return
	}
	if t.kind.k != Compound {
		check.Fail("Tag.Delete", "not a compound tag", "kind", t.kind.k)
		return
	}
	t.delete(key)
}

func (t *Tag) delete(key string) {
	for i, node := range t.compound {
		if node.key == key {
			t.compound = append(t.compound[:i], t.compound[i+1:]...)
			node.value.Unref()
			t.gen++
			return
		}
	}
}

// Size returns the number of entries in the compound.
func (t *Tag) Size() int {
	if !t.alive("Tag.Size") {
		return 0
	}
	if t.kind.k != Compound {
		check.Fail("Tag.Size", "not a compound tag", "kind", t.kind.k)
		return 0
	}
	return len(t.compound)
}

// GetChain successively indexes into nested compounds: GetChain("a", "b")
// is roughly Get("a").Get("b"), except a non-compound intermediate or a
// missing key at any step yields nil with a soft-check log instead of a
// panic.
func (t *Tag) GetChain(keys ...string) *Tag {
	cur := t
	for _, k := range keys {
		if cur == nil {
			check.Fail("Tag.GetChain", "chain broken: nil tag", "key", k)
			return nil
		}
		if cur.Kind() != Compound {
			check.Fail("Tag.GetChain", "chain broken: not a compound", "kind", cur.Kind(), "key", k)
			return nil
		}
		cur = cur.Get(k)
		if cur == nil {
			check.Fail("Tag.GetChain", "chain broken: missing key", "key", k)
			return nil
		}
	}
	return cur
}

// CompoundIterator is a single-pass cursor over a compound's (key, value)
// pairs, in current internal order. Invalidated by any mutation made after
// creation.
type CompoundIterator struct {
	t   *Tag
	gen uint64
	idx int
}

// CompoundIterator returns a fresh single-pass cursor over the compound's
// entries.
func (t *Tag) CompoundIterator() *CompoundIterator {
	if !t.alive("Tag.CompoundIterator") {
		return &CompoundIterator{}
	}
	if t.kind.k != Compound {
		check.Fail("Tag.CompoundIterator", "not a compound tag", "kind", t.kind.k)
		return &CompoundIterator{}
	}
	return &CompoundIterator{t: t, gen: t.gen}
}

// Next advances the cursor, returning the next (key, value) pair and true,
// or ("", nil, false) at the end or once the compound has been mutated.
func (it *CompoundIterator) Next() (string, *Tag, bool) {
	if it == nil || it.t == nil {
		return "", nil, false
	}
	if it.t.gen != it.gen {
		check.Fail("CompoundIterator.Next", "compound mutated during iteration")
		return "", nil, false
	}
	if it.idx >= len(it.t.compound) {
		return "", nil, false
	}
	node := it.t.compound[it.idx]
	it.idx++
	return node.key, node.value, true
}
