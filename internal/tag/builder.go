package tag

// Entry is one (key, value) pair for CompoundOf.
type Entry struct {
	Key   string
	Value *Tag
}

// ByteOf creates a Byte tag holding v.
func ByteOf(v int8) *Tag {
	t := New(Byte)
	t.SetInt(int64(v))
	return t
}

// ShortOf creates a Short tag holding v.
func ShortOf(v int16) *Tag {
	t := New(Short)
	t.SetInt(int64(v))
	return t
}

// IntOf creates an Int tag holding v.
func IntOf(v int32) *Tag {
	t := New(Int)
	t.SetInt(int64(v))
	return t
}

// LongOf creates a Long tag holding v.
func LongOf(v int64) *Tag {
	t := New(Long)
	t.SetInt(v)
	return t
}

// FloatOf creates a Float tag holding v.
func FloatOf(v float32) *Tag {
	t := New(Float)
	t.SetFloat(float64(v))
	return t
}

// DoubleOf creates a Double tag holding v.
func DoubleOf(v float64) *Tag {
	t := New(Double)
	t.SetFloat(v)
	return t
}

// ByteArrayOf creates a ByteArray tag; b is copied.
func ByteArrayOf(b []byte) *Tag {
	t := New(ByteArray)
	t.SetBytes(b)
	return t
}

// StringOf creates a String tag holding s.
func StringOf(s string) *Tag {
	t := New(String)
	t.SetStr(s)
	return t
}

// ListOf creates a List tag and inserts children in order, adopting the
// first child's kind as the list's declared element kind (per the
// named-tag variadic constructor contract). Each child's floating
// reference is sunk as it is attached.
func ListOf(children ...*Tag) *Tag {
	t := New(List)
	for _, c := range children {
		t.Insert(t.Len(), c)
	}
	return t
}

// CompoundOf creates a Compound tag and sets each entry in order. Each
// value's floating reference is sunk as it is attached.
func CompoundOf(entries ...Entry) *Tag {
	t := New(Compound)
	for _, e := range entries {
		t.Set(e.Key, e.Value)
	}
	return t
}
