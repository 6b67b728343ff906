package tag

import "github.com/go-theft-craft/voxelstore/internal/check"

// ElementKind returns the list's declared element kind (End until set).
func (t *Tag) ElementKind() Kind {
	if !t.alive("Tag.ElementKind") {
		return End
	}
	if t.kind.k != List {
		check.Fail("Tag.ElementKind", "not a list tag", "kind", t.kind.k)
		return End
	}
	return t.listKind
}

// SetElementKind declares the list's element kind. Only permitted while the
// list is empty; mutating a non-empty list's element kind is a contract
// violation.
func (t *Tag) SetElementKind(kind Kind) {
	if !t.alive("Tag.SetElementKind") {
		return
	}
	if t.kind.k != List {
		check.Fail("Tag.SetElementKind", "not a list tag", "kind", t.kind.k)
		return
	}
	if len(t.list) != 0 {
		check.Fail("Tag.SetElementKind", "list is not empty", "length", len(t.list))
		return
	}
	t.listKind = kind
	t.gen++
}

// Len returns the number of elements in the list.
func (t *Tag) Len() int {
	if !t.alive("Tag.Len") {
		return 0
	}
	if t.kind.k != List {
		check.Fail("Tag.Len", "not a list tag", "kind", t.kind.k)
		return 0
	}
	return len(t.list)
}

// At returns the i-th element without transferring ownership. Out-of-range
// i yields nil and a soft-check log.
func (t *Tag) At(i int) *Tag {
	if !t.alive("Tag.At") {
		return nil
	}
	if t.kind.k != List {
		check.Fail("Tag.At", "not a list tag", "kind", t.kind.k)
		return nil
	}
	if i < 0 || i >= len(t.list) {
		check.Fail("Tag.At", "index out of range", "index", i, "length", len(t.list))
		return nil
	}
	return t.list[i]
}

// Insert places child at position i, shifting later elements right. i >=
// Len() appends. child's kind must equal the list's declared element kind;
// an empty list with an unset element kind adopts child's kind implicitly,
// mirroring the variadic list constructor's behavior. Insert refs child on
// success (sinking a floating reference).
func (t *Tag) Insert(i int, child *Tag) {
	if !t.alive("Tag.Insert") {
		return
	}
	if t.kind.k != List {
		check.Fail("Tag.Insert", "not a list tag", "kind", t.kind.k)
		return
	}
	if child == nil {
		check.Fail("Tag.Insert", "nil child")
		return
	}
	if t.listKind == End && len(t.list) == 0 {
		t.listKind = child.Kind()
	}
	if child.Kind() != t.listKind {
		check.Fail("Tag.Insert", "element kind mismatch", "want", t.listKind, "got", child.Kind())
		return
	}

	child.Ref()

	n := len(t.list)
	if i < 0 {
		i = 0
	}
	if i >= n {
		t.list = append(t.list, child)
	} else {
		t.list = append(t.list, nil)
		copy(t.list[i+1:], t.list[i:n])
		t.list[i] = child
	}
	t.gen++
}

// RemoveAt removes the i-th element, unref-ing it.
func (t *Tag) RemoveAt(i int) {
	if !t.alive("Tag.RemoveAt") {
		return
	}
	if t.kind.k != List {
		check.Fail("Tag.RemoveAt", "not a list tag", "kind", t.kind.k)
		return
	}
	if i < 0 || i >= len(t.list) {
		check.Fail("Tag.RemoveAt", "index out of range", "index", i, "length", len(t.list))
		return
	}
	removed := t.list[i]
	t.list = append(t.list[:i], t.list[i+1:]...)
	removed.Unref()
	t.gen++
}

// Reverse reverses the list in place, in O(n). After prepend-only
// construction (Insert at 0), one Reverse restores insertion order.
func (t *Tag) Reverse() {
	if !t.alive("Tag.Reverse") {
		return
	}
	if t.kind.k != List {
		check.Fail("Tag.Reverse", "not a list tag", "kind", t.kind.k)
		return
	}
	for i, j := 0, len(t.list)-1; i < j; i, j = i+1, j-1 {
		t.list[i], t.list[j] = t.list[j], t.list[i]
	}
	t.gen++
}

// ListIterator is a single-pass cursor over a list's elements, in order.
// It is invalidated by any mutation to the list made after the iterator
// was created.
type ListIterator struct {
	t   *Tag
	gen uint64
	idx int
}

// Iterator returns a fresh single-pass cursor over the list.
func (t *Tag) Iterator() *ListIterator {
	if !t.alive("Tag.Iterator") {
		return &ListIterator{}
	}
	if t.kind.k != List {
		check.Fail("Tag.Iterator", "not a list tag", "kind", t.kind.k)
		return &ListIterator{}
	}
	return &ListIterator{t: t, gen: t.gen}
}

// Next advances the cursor, returning the next element and true, or
// (nil, false) at the end. Returns (nil, false) and logs if the list was
// mutated since the iterator was created.
func (it *ListIterator) Next() (*Tag, bool) {
	if it == nil || it.t == nil {
		return nil, false
	}
	if it.t.gen != it.gen {
		check.Fail("ListIterator.Next", "list mutated during iteration")
		return nil, false
	}
	if it.idx >= len(it.t.list) {
		return nil, false
	}
	v := it.t.list[it.idx]
	it.idx++
	return v, true
}
