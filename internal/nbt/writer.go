package nbt

import (
	"fmt"

	"github.com/go-theft-craft/voxelstore/internal/compress"
	"github.com/go-theft-craft/voxelstore/internal/endian"
	"github.com/go-theft-craft/voxelstore/internal/tag"
)

// Write computes the exact serialized length of n, allocates a buffer of
// that size, serializes into it, then compresses with codec (which must be
// compress.Gzip or compress.Zlib — Auto/Unknown are errors).
func Write(n *NamedNbt, codec compress.Kind) ([]byte, error) {
	if n == nil || n.root == nil {
		return nil, fmt.Errorf("nbt: cannot write a nil named tag")
	}

	size := 1 + 2 + len(n.name) + valueLen(n.root)
	buf := make([]byte, size)
	w := &emitter{buf: buf}

	if err := w.byte(byte(n.root.Kind())); err != nil {
		return nil, err
	}
	if err := w.string(n.name); err != nil {
		return nil, err
	}
	if err := writeValue(w, n.root); err != nil {
		return nil, err
	}
	if w.pos != len(buf) {
		return nil, fmt.Errorf("nbt: internal error: wrote %d bytes, computed length %d", w.pos, len(buf))
	}

	return compress.Compress(codec, buf)
}

// valueLen computes the exact uncompressed length of t's recursive
// encoding, per the length table in the wire-format section: integers and
// floats are fixed width, ByteArray is 4 + blob size, String is 2 + byte
// length, List is 5 + sum of child sizes, Compound is the sum over entries
// of (1 + 2 + key length + value size) plus 1 for the terminator.
func valueLen(t *tag.Tag) int {
	switch t.Kind() {
	case tag.Byte:
		return 1
	case tag.Short:
		return 2
	case tag.Int, tag.Float:
		return 4
	case tag.Long, tag.Double:
		return 8
	case tag.ByteArray:
		return 4 + len(t.Bytes())
	case tag.String:
		return 2 + len(t.Str())
	case tag.List:
		n := 5
		it := t.Iterator()
		for {
			child, ok := it.Next()
			if !ok {
				break
			}
			n += valueLen(child)
		}
		return n
	case tag.Compound:
		n := 1
		it := t.CompoundIterator()
		for {
			key, child, ok := it.Next()
			if !ok {
				break
			}
			n += 1 + 2 + len(key) + valueLen(child)
		}
		return n
	default:
		return 0
	}
}

// emitter writes into a pre-sized buffer at a running offset; every write
// is length-checked against valueLen's computation by construction, so
// this never needs to grow the buffer.
type emitter struct {
	buf []byte
	pos int
}

func (w *emitter) byte(b byte) error {
	if w.pos+1 > len(w.buf) {
		return fmt.Errorf("nbt: write overrun")
	}
	w.buf[w.pos] = b
	w.pos++
	return nil
}

func (w *emitter) raw(b []byte) error {
	if w.pos+len(b) > len(w.buf) {
		return fmt.Errorf("nbt: write overrun")
	}
	copy(w.buf[w.pos:], b)
	w.pos += len(b)
	return nil
}

func (w *emitter) uint16(v uint16) error {
	var tmp [2]byte
	endian.PutUint16(tmp[:], v)
	return w.raw(tmp[:])
}

func (w *emitter) int32(v int32) error {
	var tmp [4]byte
	endian.PutInt32(tmp[:], v)
	return w.raw(tmp[:])
}

func (w *emitter) int64(v int64) error {
	var tmp [8]byte
	endian.PutInt64(tmp[:], v)
	return w.raw(tmp[:])
}

func (w *emitter) float32(v float32) error {
	var tmp [4]byte
	endian.PutFloat32(tmp[:], v)
	return w.raw(tmp[:])
}

func (w *emitter) float64(v float64) error {
	var tmp [8]byte
	endian.PutFloat64(tmp[:], v)
	return w.raw(tmp[:])
}

func (w *emitter) string(s string) error {
	if len(s) > 0xFFFF {
		return fmt.Errorf("nbt: string too long: %d bytes", len(s))
	}
	if err := w.uint16(uint16(len(s))); err != nil {
		return err
	}
	return w.raw([]byte(s))
}

func writeValue(w *emitter, t *tag.Tag) error {
	switch t.Kind() {
	case tag.Byte:
		return w.byte(byte(t.GetInt()))
	case tag.Short:
		return w.uint16(uint16(t.GetInt()))
	case tag.Int:
		return w.int32(int32(t.GetInt()))
	case tag.Long:
		return w.int64(t.GetInt())
	case tag.Float:
		return w.float32(float32(t.GetFloat()))
	case tag.Double:
		return w.float64(t.GetFloat())
	case tag.ByteArray:
		b := t.Bytes()
		if err := w.int32(int32(len(b))); err != nil {
			return err
		}
		return w.raw(b)
	case tag.String:
		return w.string(t.Str())
	case tag.List:
		return writeList(w, t)
	case tag.Compound:
		return writeCompound(w, t)
	default:
		return fmt.Errorf("nbt: cannot write kind %v", t.Kind())
	}
}

func writeList(w *emitter, t *tag.Tag) error {
	if err := w.byte(byte(t.ElementKind())); err != nil {
		return err
	}
	if err := w.int32(int32(t.Len())); err != nil {
		return err
	}
	it := t.Iterator()
	for {
		child, ok := it.Next()
		if !ok {
			break
		}
		if err := writeValue(w, child); err != nil {
			return err
		}
	}
	return nil
}

func writeCompound(w *emitter, t *tag.Tag) error {
	it := t.CompoundIterator()
	for {
		key, child, ok := it.Next()
		if !ok {
			break
		}
		if err := w.byte(byte(child.Kind())); err != nil {
			return err
		}
		if err := w.string(key); err != nil {
			return err
		}
		if err := writeValue(w, child); err != nil {
			return err
		}
	}
	return w.byte(0)
}
