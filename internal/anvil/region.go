// Package anvil implements the region file store: a 1024-slot table of
// compressed, sector-aligned chunk blobs backed by a single memory-mapped
// file, in the spirit of the teacher's pkg/world/anvil region writer but
// generalized to support in-place reads, a queued writer, and the
// compacting flush that keeps the file gap-free after slots shrink, grow,
// or are cleared.
package anvil

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"github.com/edsrzf/mmap-go"

	"github.com/go-theft-craft/voxelstore/internal/alloc"
	"github.com/go-theft-craft/voxelstore/internal/check"
	"github.com/go-theft-craft/voxelstore/internal/compress"
	"github.com/go-theft-craft/voxelstore/internal/endian"
)

// allocator backs every queued write's payload copy. SetAllocator lets a
// caller swap in a pooling implementation; the default just calls make.
var allocator alloc.Allocator = alloc.Default

// SetAllocator replaces the allocator used to copy queued write payloads. A
// nil a reverts to the standard allocator.
func SetAllocator(a alloc.Allocator) {
	allocator = alloc.Or(a)
}

const (
	sectorSize    = 4096
	headerSectors = 2 // location table (sector 0) + timestamp table (sector 1)
	gridWidth     = 32 // slots are laid out on a 32x32 (x, z) grid
	slotCount     = gridWidth * gridWidth
	sectorHeader  = 5 // 4-byte length-plus-one + 1-byte codec, per chunk sector run
)

// Region is an open region file: a fixed 1024-slot header plus a sequence
// of sector-aligned, individually compressed chunk blobs. Reads are served
// directly from the memory mapping; writes are queued and applied
// atomically by Flush.
type Region struct {
	path     string
	writable bool

	file *os.File
	data mmap.MMap // nil when the underlying file is still empty

	pending map[int]*pendingWrite

	log       *slog.Logger
	allocator alloc.Allocator
}

// Option configures a Region at Open time.
type Option func(*Region)

// WithLogger routes this Region's diagnostic logging (currently just the
// flush-completion trace) to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Region) {
		if l != nil {
			r.log = l
		}
	}
}

// WithAllocator overrides the allocator used for this Region's queued-write
// payload copies, instead of the package-wide default set by SetAllocator.
func WithAllocator(a alloc.Allocator) Option {
	return func(r *Region) {
		r.allocator = alloc.Or(a)
	}
}

type pendingWrite struct {
	payload   []byte
	codec     compress.Kind
	timestamp uint32
	clear     bool
}

// Open opens the region file at path. When writable is true and the file
// does not exist, it is created (mode 0666). A non-empty file must be at
// least one full sector pair (8192 bytes); anything in (0, 8192) is
// corruption. A non-empty file is memory-mapped immediately; an empty file
// is left unmapped until the first Flush lays down its header.
func Open(path string, writable bool, opts ...Option) (*Region, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR | os.O_CREATE
	}
	f, err := os.OpenFile(path, flag, 0o666)
	if err != nil {
		return nil, fmt.Errorf("anvil: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("anvil: stat %s: %w", path, err)
	}

	size := info.Size()
	if size != 0 && size < headerSectors*sectorSize {
		f.Close()
		return nil, fmt.Errorf("anvil: %s: corrupt size %d, expected 0 or >= %d", path, size, headerSectors*sectorSize)
	}

	r := &Region{
		path:     path,
		writable: writable,
		file:     f,
		pending:  make(map[int]*pendingWrite),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if size > 0 {
		if err := r.mapFile(); err != nil {
			f.Close()
			return nil, err
		}
	}
	return r, nil
}

func (r *Region) mapFile() error {
	prot := mmap.RDONLY
	if r.writable {
		prot = mmap.RDWR
	}
	m, err := mmap.Map(r.file, prot, 0)
	if err != nil {
		return fmt.Errorf("anvil: mmap %s: %w", r.path, err)
	}
	r.data = m
	return nil
}

func (r *Region) unmap() error {
	if r.data == nil {
		return nil
	}
	err := r.data.Unmap()
	r.data = nil
	return err
}

// Close flushes any pending writes (when writable), then unmaps and closes
// the underlying file.
func (r *Region) Close() error {
	if r.writable && len(r.pending) > 0 {
		if err := r.Flush(); err != nil {
			return err
		}
	}
	if err := r.unmap(); err != nil {
		return fmt.Errorf("anvil: unmap %s: %w", r.path, err)
	}
	return r.file.Close()
}

func slotIndex(x, z int) (int, bool) {
	if x < 0 || x >= gridWidth || z < 0 || z >= gridWidth {
		return 0, false
	}
	return x + z*gridWidth, true
}

// locationEntry reads the (offset-in-sectors, sector-count) pair for slot
// from the location table. Returns zeros when the region has no mapping
// yet (nothing has ever been flushed).
func (r *Region) locationEntry(slot int) (offset uint32, count uint8) {
	if r.data == nil {
		return 0, 0
	}
	v := endian.Uint32(r.data[slot*4 : slot*4+4])
	return v >> 8, uint8(v & 0xFF)
}

func (r *Region) putLocationEntry(slot int, offset uint32, count uint8) {
	v := (offset << 8) | uint32(count)
	endian.PutUint32(r.data[slot*4:slot*4+4], v)
}

func (r *Region) timestampEntry(slot int) uint32 {
	if r.data == nil {
		return 0
	}
	base := sectorSize + slot*4
	return endian.Uint32(r.data[base : base+4])
}

func (r *Region) putTimestampEntry(slot int, ts uint32) {
	base := sectorSize + slot*4
	endian.PutUint32(r.data[base:base+4], ts)
}

// sectorPayloadLength reads the declared length from the 4-byte header at
// the start of a slot's sector run. Corrupt headers — out of bounds
// themselves, or declaring a payload that would run past end-of-file — soft
// fail to zero rather than letting a later read panic.
func (r *Region) sectorPayloadLength(offsetSectors uint32) int32 {
	start := int64(offsetSectors) * sectorSize
	if r.data == nil || start+4 > int64(len(r.data)) {
		check.Fail("Region.sectorPayloadLength", "sector run out of bounds", "offset", offsetSectors)
		return 0
	}
	v := endian.Uint32(r.data[start : start+4])
	if v == 0 {
		return 0
	}
	length := int32(v) - 1
	if length < 0 || start+sectorHeader+int64(length) > int64(len(r.data)) {
		check.Fail("Region.sectorPayloadLength", "declared length runs past end of file", "offset", offsetSectors, "length", length)
		return 0
	}
	return length
}

func (r *Region) sectorCodec(offsetSectors uint32) compress.Kind {
	start := int64(offsetSectors)*sectorSize + 4
	if r.data == nil || start+1 > int64(len(r.data)) {
		return compress.Unknown
	}
	switch r.data[start] {
	case 1:
		return compress.Gzip
	case 2:
		return compress.Zlib
	default:
		return compress.Unknown
	}
}

// Contains reports whether (x, z) is a present slot: a non-zero offset,
// sector count, and timestamp, and a positive declared payload length.
func (r *Region) Contains(x, z int) bool {
	slot, ok := slotIndex(x, z)
	if !ok {
		check.Fail("Region.Contains", "coordinate out of range", "x", x, "z", z)
		return false
	}
	offset, count := r.locationEntry(slot)
	if offset == 0 || count == 0 {
		return false
	}
	if r.timestampEntry(slot) == 0 {
		return false
	}
	return r.sectorPayloadLength(offset) > 0
}

// Timestamp returns the slot's stored timestamp, or 0 if absent.
func (r *Region) Timestamp(x, z int) uint32 {
	slot, ok := slotIndex(x, z)
	if !ok {
		check.Fail("Region.Timestamp", "coordinate out of range", "x", x, "z", z)
		return 0
	}
	return r.timestampEntry(slot)
}

// Length returns the declared compressed payload length for (x, z), or 0
// if absent.
func (r *Region) Length(x, z int) int32 {
	slot, ok := slotIndex(x, z)
	if !ok {
		check.Fail("Region.Length", "coordinate out of range", "x", x, "z", z)
		return 0
	}
	offset, count := r.locationEntry(slot)
	if offset == 0 || count == 0 {
		return 0
	}
	return r.sectorPayloadLength(offset)
}

// Compression returns the codec tag stored for (x, z), or Unknown if
// absent or unrecognized.
func (r *Region) Compression(x, z int) compress.Kind {
	slot, ok := slotIndex(x, z)
	if !ok {
		check.Fail("Region.Compression", "coordinate out of range", "x", x, "z", z)
		return compress.Unknown
	}
	offset, count := r.locationEntry(slot)
	if offset == 0 || count == 0 {
		return compress.Unknown
	}
	return r.sectorCodec(offset)
}

// Data returns the compressed payload bytes for (x, z) without copying.
// The slice is valid until the next Flush or Close.
func (r *Region) Data(x, z int) []byte {
	slot, ok := slotIndex(x, z)
	if !ok {
		check.Fail("Region.Data", "coordinate out of range", "x", x, "z", z)
		return nil
	}
	offset, count := r.locationEntry(slot)
	if offset == 0 || count == 0 {
		return nil
	}
	length := r.sectorPayloadLength(offset)
	if length <= 0 {
		return nil
	}
	start := int64(offset)*sectorSize + sectorHeader
	return r.data[start : start+int64(length)]
}

// Set enqueues a write for (x, z) using the current wall-clock time as the
// timestamp. codec may be compress.Auto, in which case the codec is
// inferred from payload via compress.Sniff.
func (r *Region) Set(x, z int, payload []byte, codec compress.Kind) error {
	return r.SetWithTimestamp(x, z, payload, codec, uint32(time.Now().Unix()))
}

// SetWithTimestamp is Set with an explicit timestamp. payload is copied;
// the caller's buffer may be reused immediately. Any previously queued
// write for the same slot is replaced.
func (r *Region) SetWithTimestamp(x, z int, payload []byte, codec compress.Kind, timestamp uint32) error {
	if !r.writable {
		return fmt.Errorf("anvil: %s: region is read-only", r.path)
	}
	slot, ok := slotIndex(x, z)
	if !ok {
		check.Fail("Region.Set", "coordinate out of range", "x", x, "z", z)
		return fmt.Errorf("anvil: coordinate (%d, %d) out of range", x, z)
	}
	if codec == compress.Auto {
		codec = compress.Sniff(payload)
	}
	a := r.allocator
	if a == nil {
		a = allocator
	}
	cp := a.Bytes(len(payload))
	copy(cp, payload)
	r.pending[slot] = &pendingWrite{payload: cp, codec: codec, timestamp: timestamp}
	return nil
}

// Clear enqueues a write that removes (x, z) on the next Flush.
func (r *Region) Clear(x, z int) error {
	if !r.writable {
		return fmt.Errorf("anvil: %s: region is read-only", r.path)
	}
	slot, ok := slotIndex(x, z)
	if !ok {
		check.Fail("Region.Clear", "coordinate out of range", "x", x, "z", z)
		return fmt.Errorf("anvil: coordinate (%d, %d) out of range", x, z)
	}
	r.pending[slot] = &pendingWrite{clear: true}
	return nil
}

func sectorsFor(payloadLen int) uint32 {
	total := payloadLen + sectorHeader
	return uint32((total + sectorSize - 1) / sectorSize)
}

// Flush applies all queued writes atomically with respect to the on-disk
// layout, then clears the queue. An empty queue is a no-op.
func (r *Region) Flush() error {
	if !r.writable {
		return fmt.Errorf("anvil: %s: region is read-only", r.path)
	}
	if len(r.pending) == 0 {
		return nil
	}

	var err error
	if r.data == nil {
		err = r.flushCold()
	} else {
		err = r.flushHot()
	}
	r.pending = make(map[int]*pendingWrite)
	if err != nil {
		return err
	}
	if syncErr := r.data.Flush(); syncErr != nil {
		return fmt.Errorf("anvil: %s: sync: %w", r.path, syncErr)
	}
	r.log.Debug("region flushed", "path", r.path)
	return nil
}

func sortedSlots(m map[int]*pendingWrite) []int {
	out := make([]int, 0, len(m))
	for slot := range m {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}
