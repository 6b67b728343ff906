// Package tag implements the in-memory tagged-tree value type described by
// the named-tag wire format: eleven variants sharing reference-counted
// shared ownership, with constructors, scalar/blob/string accessors, and
// list/compound operations.
//
// Go's garbage collector makes manual freeing unnecessary, but the ref/unref
// surface is kept anyway (as recommended in the port's design notes) because
// it is part of the contract a caller of this package relies on: a Tag
// starts out "floating" with a zero refcount, the first attach raises it to
// one, and Unref-ing to zero recursively releases owned children and marks
// the tag unusable. That lets tests (and callers) observe the same
// lifecycle the original library exposes, without this package actually
// managing memory by hand.
package tag

import (
	"sync/atomic"

	"github.com/go-theft-craft/voxelstore/internal/alloc"
	"github.com/go-theft-craft/voxelstore/internal/check"
)

// allocator backs every ByteArray tag's storage. SetAllocator lets a caller
// swap in a pooling implementation; the default just calls make.
var allocator alloc.Allocator = alloc.Default

// SetAllocator replaces the allocator used for ByteArray tag storage. A nil
// a reverts to the standard allocator.
func SetAllocator(a alloc.Allocator) {
	allocator = alloc.Or(a)
}

// compoundNode is one (key, value) pair in a Compound's insertion-order
// sequence.
type compoundNode struct {
	key   string
	value *Tag
}

// Tag is a node in the typed tree. Exactly one of the fields below is
// meaningful, selected by kind.
type Tag struct {
	kind refcount

	i64 int64
	f64 float64

	blob []byte
	str  string

	listKind Kind
	list     []*Tag

	compound []compoundNode

	gen uint64 // bumped on every list/compound mutation, invalidates iterators
}

// refcount bundles the kind with its atomic reference count and a released
// flag so zero-value checks stay cheap.
type refcount struct {
	k        Kind
	count    int32
	released bool
}

// New creates an empty tag of the given kind with a floating reference
// count of zero. kind must not be End; violating that is a contract error,
// logged and reported as a nil Tag.
func New(kind Kind) *Tag {
	if kind == End || !kind.Valid() {
		check.Fail("tag.New", "kind must not be End", "kind", kind)
		return nil
	}
	t := &Tag{kind: refcount{k: kind}}
	if kind == List {
		t.listKind = End // unset until SetElementKind or the first Insert
	}
	return t
}

// Kind returns the tag's variant.
func (t *Tag) Kind() Kind {
	if t == nil {
		return End
	}
	return t.kind.k
}

func (t *Tag) alive(op string) bool {
	if t == nil {
		check.Fail(op, "nil tag")
		return false
	}
	if t.kind.released {
		check.Fail(op, "use of released tag")
		return false
	}
	return true
}

// Ref increments the reference count.
func (t *Tag) Ref() {
	if !t.alive("Tag.Ref") {
		return
	}
	atomic.AddInt32(&t.kind.count, 1)
}

// Unref decrements the reference count, releasing the tag and its owned
// children once it reaches zero.
func (t *Tag) Unref() {
	if !t.alive("Tag.Unref") {
		return
	}
	if atomic.LoadInt32(&t.kind.count) > 0 {
		if atomic.AddInt32(&t.kind.count, -1) > 0 {
			return
		}
	}
	t.release()
}

// RefCount reports the current reference count (for tests/diagnostics).
func (t *Tag) RefCount() int32 {
	if t == nil {
		return 0
	}
	return atomic.LoadInt32(&t.kind.count)
}

// release recursively unrefs owned children and drops this tag's storage.
func (t *Tag) release() {
	switch t.kind.k {
	case List:
		for _, child := range t.list {
			child.Unref()
		}
		t.list = nil
	case Compound:
		for _, node := range t.compound {
			node.value.Unref()
		}
		t.compound = nil
	case ByteArray:
		t.blob = nil
	case String:
		t.str = ""
	}
	t.kind.released = true
}

// ---- integer accessors (Byte, Short, Int, Long) ----

// GetInt returns the tag's value, widened to int64. Calling this on a
// non-integer tag is a contract violation; it logs and returns 0.
func (t *Tag) GetInt() int64 {
	if !t.alive("Tag.GetInt") {
		return 0
	}
	if !t.kind.k.isInteger() {
		check.Fail("Tag.GetInt", "not an integer tag", "kind", t.kind.k)
		return 0
	}
	return t.i64
}

// SetInt assigns v to an integer tag, truncating via two's-complement to
// the tag's declared width (Byte: 8 bits, Short: 16, Int: 32, Long: 64).
func (t *Tag) SetInt(v int64) {
	if !t.alive("Tag.SetInt") {
		return
	}
	switch t.kind.k {
	case Byte:
		t.i64 = int64(int8(v))
	case Short:
		t.i64 = int64(int16(v))
	case Int:
		t.i64 = int64(int32(v))
	case Long:
		t.i64 = v
	default:
		check.Fail("Tag.SetInt", "not an integer tag", "kind", t.kind.k)
	}
}

// ---- float accessors (Float, Double) ----

// GetFloat returns the tag's value widened to float64.
func (t *Tag) GetFloat() float64 {
	if !t.alive("Tag.GetFloat") {
		return 0
	}
	if !t.kind.k.isFloat() {
		check.Fail("Tag.GetFloat", "not a float tag", "kind", t.kind.k)
		return 0
	}
	return t.f64
}

// SetFloat assigns v, narrowing to float32 for a Float tag.
func (t *Tag) SetFloat(v float64) {
	if !t.alive("Tag.SetFloat") {
		return
	}
	switch t.kind.k {
	case Float:
		t.f64 = float64(float32(v))
	case Double:
		t.f64 = v
	default:
		check.Fail("Tag.SetFloat", "not a float tag", "kind", t.kind.k)
	}
}

// ---- byte array accessors ----

// Bytes returns the tag's underlying byte blob without copying.
func (t *Tag) Bytes() []byte {
	if !t.alive("Tag.Bytes") {
		return nil
	}
	if t.kind.k != ByteArray {
		check.Fail("Tag.Bytes", "not a byte_array tag", "kind", t.kind.k)
		return nil
	}
	return t.blob
}

// SetBytes copies b into the tag, releasing any prior contents.
func (t *Tag) SetBytes(b []byte) {
	if !t.alive("Tag.SetBytes") {
		return
	}
	if t.kind.k != ByteArray {
		check.Fail("Tag.SetBytes", "not a byte_array tag", "kind", t.kind.k)
		return
	}
	cp := allocator.Bytes(len(b))
	copy(cp, b)
	t.blob = cp
}

// ---- string accessors ----

// Str returns the tag's string value.
func (t *Tag) Str() string {
	if !t.alive("Tag.Str") {
		return ""
	}
	if t.kind.k != String {
		check.Fail("Tag.Str", "not a string tag", "kind", t.kind.k)
		return ""
	}
	return t.str
}

// SetStr assigns s to a String tag.
func (t *Tag) SetStr(s string) {
	if !t.alive("Tag.SetStr") {
		return
	}
	if t.kind.k != String {
		check.Fail("Tag.SetStr", "not a string tag", "kind", t.kind.k)
		return
	}
	t.str = s
}
