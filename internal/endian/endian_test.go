package endian

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntInvolution(t *testing.T) {
	r := require.New(t)

	buf16 := make([]byte, 2)
	PutUint16(buf16, 0xBEEF)
	r.Equal(uint16(0xBEEF), Uint16(buf16))

	buf32 := make([]byte, 4)
	PutUint32(buf32, 0xDEADBEEF)
	r.Equal(uint32(0xDEADBEEF), Uint32(buf32))

	buf64 := make([]byte, 8)
	PutUint64(buf64, 0x0123456789ABCDEF)
	r.Equal(uint64(0x0123456789ABCDEF), Uint64(buf64))
}

func TestSignedInvolution(t *testing.T) {
	r := require.New(t)

	buf := make([]byte, 8)
	PutInt16(buf[:2], -1)
	r.Equal(int16(-1), Int16(buf[:2]))

	PutInt32(buf[:4], -42)
	r.Equal(int32(-42), Int32(buf[:4]))

	PutInt64(buf, -123456789)
	r.Equal(int64(-123456789), Int64(buf))
}

func TestUint24HighByteZero(t *testing.T) {
	buf := make([]byte, 3)
	PutUint24(buf, 0xFFAABBCC) // high byte (0xFF) must be discarded
	got := Uint24(buf)
	if got != 0x00AABBCC {
		t.Fatalf("expected 0x00AABBCC, got 0x%08X", got)
	}
	if got&0xFF000000 != 0 {
		t.Fatal("Uint24 must never set the high byte")
	}
}

func TestFloatBitPatternPreserved(t *testing.T) {
	r := require.New(t)

	buf4 := make([]byte, 4)
	var f32 float32 = 3.14159
	PutFloat32(buf4, f32)
	r.Equal(f32, Float32(buf4))

	buf8 := make([]byte, 8)
	var f64 = 2.718281828459045
	PutFloat64(buf8, f64)
	r.Equal(f64, Float64(buf8))
}

func TestBigEndianByteOrder(t *testing.T) {
	buf := make([]byte, 4)
	PutUint32(buf, 0x01020304)
	if buf[0] != 0x01 || buf[1] != 0x02 || buf[2] != 0x03 || buf[3] != 0x04 {
		t.Fatalf("expected big-endian byte order, got %v", buf)
	}
}
