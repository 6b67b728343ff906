// Package endian provides the fixed big-endian <-> host conversions used by
// the tag codec and region store. The wire format is always big-endian
// (matching historical Minecraft-style save data), so unlike a general
// byte-order package this one is not parameterized over ByteOrder — it
// always converts through encoding/binary.BigEndian, the same primitive
// arloliu-mebo's endian package wraps for its configurable engines.
//
// Each Put function and its matching read function are inverses: writing a
// value and reading it back recovers the original value (the exact bit
// pattern, for floats).
package endian

import (
	"encoding/binary"
	"math"
)

// Uint16 reads a big-endian uint16.
func Uint16(b []byte) uint16 { return binary.BigEndian.Uint16(b) }

// PutUint16 writes v as big-endian into b.
func PutUint16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }

// Int16 reads a big-endian int16.
func Int16(b []byte) int16 { return int16(binary.BigEndian.Uint16(b)) }

// PutInt16 writes v as big-endian into b.
func PutInt16(b []byte, v int16) { binary.BigEndian.PutUint16(b, uint16(v)) }

// Uint24 reads a 24-bit big-endian unsigned integer into a 32-bit container
// (the high byte of the result is always zero). This is the layout of the
// region location table's 3-byte sector-offset field.
func Uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}

// PutUint24 writes the low 24 bits of v as big-endian into b[:3]. v's high
// byte (bits 24-31) is discarded, matching the on-disk field width.
func PutUint24(b []byte, v uint32) {
	b[0] = byte(v >> 16)
	b[1] = byte(v >> 8)
	b[2] = byte(v)
}

// Uint32 reads a big-endian uint32.
func Uint32(b []byte) uint32 { return binary.BigEndian.Uint32(b) }

// PutUint32 writes v as big-endian into b.
func PutUint32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }

// Int32 reads a big-endian int32.
func Int32(b []byte) int32 { return int32(binary.BigEndian.Uint32(b)) }

// PutInt32 writes v as big-endian into b.
func PutInt32(b []byte, v int32) { binary.BigEndian.PutUint32(b, uint32(v)) }

// Uint64 reads a big-endian uint64.
func Uint64(b []byte) uint64 { return binary.BigEndian.Uint64(b) }

// PutUint64 writes v as big-endian into b.
func PutUint64(b []byte, v uint64) { binary.BigEndian.PutUint64(b, v) }

// Int64 reads a big-endian int64.
func Int64(b []byte) int64 { return int64(binary.BigEndian.Uint64(b)) }

// PutInt64 writes v as big-endian into b.
func PutInt64(b []byte, v int64) { binary.BigEndian.PutUint64(b, uint64(v)) }

// Float32 reads a big-endian IEEE-754 binary32, preserving the exact bit
// pattern (no value-domain rounding).
func Float32(b []byte) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b))
}

// PutFloat32 writes v's bit pattern as big-endian into b.
func PutFloat32(b []byte, v float32) {
	binary.BigEndian.PutUint32(b, math.Float32bits(v))
}

// Float64 reads a big-endian IEEE-754 binary64, preserving the exact bit
// pattern.
func Float64(b []byte) float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(b))
}

// PutFloat64 writes v's bit pattern as big-endian into b.
func PutFloat64(b []byte, v float64) {
	binary.BigEndian.PutUint64(b, math.Float64bits(v))
}
