package nbt

import (
	"fmt"

	"github.com/go-theft-craft/voxelstore/internal/compress"
	"github.com/go-theft-craft/voxelstore/internal/endian"
	"github.com/go-theft-craft/voxelstore/internal/tag"
)

const minHeaderLen = 1 + 2 // root kind byte + root-name length

// cursor is a forward-only reader over an inflated named-tag buffer.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) remaining() int { return len(c.buf) - c.pos }

func (c *cursor) byte() (byte, error) {
	if c.remaining() < 1 {
		return 0, fmt.Errorf("nbt: short read: want 1 byte, have %d", c.remaining())
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

func (c *cursor) bytes(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, fmt.Errorf("nbt: short read: want %d bytes, have %d", n, c.remaining())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) uint16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return endian.Uint16(b), nil
}

func (c *cursor) int32() (int32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return endian.Int32(b), nil
}

func (c *cursor) int64() (int64, error) {
	b, err := c.bytes(8)
	if err != nil {
		return 0, err
	}
	return endian.Int64(b), nil
}

func (c *cursor) float32() (float32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return endian.Float32(b), nil
}

func (c *cursor) float64() (float64, error) {
	b, err := c.bytes(8)
	if err != nil {
		return 0, err
	}
	return endian.Float64(b), nil
}

func (c *cursor) string(n uint16) (string, error) {
	if n == 0 {
		return "", nil
	}
	b, err := c.bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func kindFromByte(b byte) (tag.Kind, bool) {
	k := tag.Kind(b)
	if k > tag.Compound {
		return 0, false
	}
	return k, true
}

// Parse decompresses data with codec (which may be compress.Auto, in which
// case the codec is sniffed), then parses the inflated buffer as a named
// tag. Any short read, unknown kind, or list-element-kind mismatch is a
// hard failure.
func Parse(data []byte, codec compress.Kind) (*NamedNbt, error) {
	inflated, err := compress.Decompress(codec, data)
	if err != nil {
		return nil, fmt.Errorf("nbt: decompress: %w", err)
	}
	if len(inflated) < minHeaderLen {
		return nil, fmt.Errorf("nbt: inflated buffer too short: %d bytes", len(inflated))
	}

	c := &cursor{buf: inflated}

	rootKindByte, err := c.byte()
	if err != nil {
		return nil, err
	}
	rootKind, ok := kindFromByte(rootKindByte)
	if !ok || rootKind == tag.End {
		return nil, fmt.Errorf("nbt: invalid root kind byte 0x%02x", rootKindByte)
	}

	nameLen, err := c.uint16()
	if err != nil {
		return nil, err
	}
	name, err := c.string(nameLen)
	if err != nil {
		return nil, err
	}

	root, err := parseValue(c, rootKind)
	if err != nil {
		return nil, err
	}

	if c.remaining() != 0 {
		return nil, fmt.Errorf("nbt: %d trailing bytes after root value", c.remaining())
	}

	return New(name, root), nil
}

func parseValue(c *cursor, kind tag.Kind) (*tag.Tag, error) {
	switch kind {
	case tag.Byte:
		v, err := c.byte()
		if err != nil {
			return nil, err
		}
		return tag.ByteOf(int8(v)), nil
	case tag.Short:
		v, err := c.uint16()
		if err != nil {
			return nil, err
		}
		return tag.ShortOf(int16(v)), nil
	case tag.Int:
		v, err := c.int32()
		if err != nil {
			return nil, err
		}
		return tag.IntOf(v), nil
	case tag.Long:
		v, err := c.int64()
		if err != nil {
			return nil, err
		}
		return tag.LongOf(v), nil
	case tag.Float:
		v, err := c.float32()
		if err != nil {
			return nil, err
		}
		return tag.FloatOf(v), nil
	case tag.Double:
		v, err := c.float64()
		if err != nil {
			return nil, err
		}
		return tag.DoubleOf(v), nil
	case tag.ByteArray:
		return parseByteArray(c)
	case tag.String:
		return parseString(c)
	case tag.List:
		return parseList(c)
	case tag.Compound:
		return parseCompound(c)
	default:
		return nil, fmt.Errorf("nbt: unknown kind %v", kind)
	}
}

func parseByteArray(c *cursor) (*tag.Tag, error) {
	l, err := c.int32()
	if err != nil {
		return nil, err
	}
	if l < 0 {
		return nil, fmt.Errorf("nbt: negative byte_array length %d", l)
	}
	b, err := c.bytes(int(l))
	if err != nil {
		return nil, err
	}
	return tag.ByteArrayOf(b), nil
}

func parseString(c *cursor) (*tag.Tag, error) {
	l, err := c.uint16()
	if err != nil {
		return nil, err
	}
	s, err := c.string(l)
	if err != nil {
		return nil, err
	}
	return tag.StringOf(s), nil
}

// parseList reads the element-kind byte, the signed element count, then
// that many values, appending each in order (equivalent to the
// prepend-then-reverse strategy the wire format's design notes describe).
func parseList(c *cursor) (*tag.Tag, error) {
	elemKindByte, err := c.byte()
	if err != nil {
		return nil, err
	}
	elemKind, ok := kindFromByte(elemKindByte)
	if !ok {
		return nil, fmt.Errorf("nbt: unknown list element kind byte 0x%02x", elemKindByte)
	}

	count, err := c.int32()
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("nbt: negative list count %d", count)
	}

	l := tag.New(tag.List)
	l.SetElementKind(elemKind)

	for i := int32(0); i < count; i++ {
		if c.remaining() == 0 {
			// input exhausted before the declared count reached zero: a
			// hard failure, matching the behavior of the latest upstream
			// draft rather than silently truncating the list.
			return nil, fmt.Errorf("nbt: list truncated at element %d of %d", i, count)
		}
		child, err := parseValue(c, elemKind)
		if err != nil {
			return nil, err
		}
		l.Insert(l.Len(), child)
	}
	return l, nil
}

// parseCompound reads (kind, name, value) entries until the End (0x00)
// terminator, or fails if input is exhausted first.
func parseCompound(c *cursor) (*tag.Tag, error) {
	comp := tag.New(tag.Compound)

	for {
		if c.remaining() == 0 {
			return nil, fmt.Errorf("nbt: unterminated compound")
		}
		kindByte, err := c.byte()
		if err != nil {
			return nil, err
		}
		if kindByte == 0 {
			return comp, nil
		}
		kind, ok := kindFromByte(kindByte)
		if !ok {
			return nil, fmt.Errorf("nbt: unknown compound entry kind byte 0x%02x", kindByte)
		}

		nameLen, err := c.uint16()
		if err != nil {
			return nil, err
		}
		name, err := c.string(nameLen)
		if err != nil {
			return nil, err
		}

		child, err := parseValue(c, kind)
		if err != nil {
			return nil, err
		}
		comp.Set(name, child)
	}
}
