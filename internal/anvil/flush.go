package anvil

import (
	"fmt"

	"github.com/go-theft-craft/voxelstore/internal/endian"
)

// flushCold handles the first-ever flush of a region whose file is still
// empty: there is no existing layout to preserve, so every queued write
// (other than clears, which are no-ops on an empty file) is laid out once,
// in slot order, starting right after the two header sectors.
func (r *Region) flushCold() error {
	slots := sortedSlots(r.pending)

	cursor := uint32(headerSectors)
	type placement struct {
		slot    int
		offset  uint32
		sectors uint32
	}
	var placements []placement
	for _, slot := range slots {
		w := r.pending[slot]
		if w.clear {
			continue
		}
		s := sectorsFor(len(w.payload))
		placements = append(placements, placement{slot, cursor, s})
		cursor += s
	}

	newSize := int64(cursor) * sectorSize
	if err := r.file.Truncate(newSize); err != nil {
		return fmt.Errorf("anvil: %s: truncate: %w", r.path, err)
	}
	if err := r.mapFile(); err != nil {
		return err
	}

	// zero the two header sectors before stamping entries into them
	for i := 0; i < headerSectors*sectorSize; i++ {
		r.data[i] = 0
	}

	for _, p := range placements {
		w := r.pending[p.slot]
		r.putLocationEntry(p.slot, p.offset, uint8(p.sectors))
		r.putTimestampEntry(p.slot, w.timestamp)
		r.writeSectorRun(p.offset, w)
	}
	return nil
}

// writeSectorRun stamps the 5-byte sector header (length-plus-one, codec)
// and copies the payload at the given sector offset.
func (r *Region) writeSectorRun(offsetSectors uint32, w *pendingWrite) {
	start := int64(offsetSectors) * sectorSize
	endian.PutUint32(r.data[start:start+4], uint32(len(w.payload))+1)
	r.data[start+4] = byte(w.codec)
	copy(r.data[start+5:], w.payload)
}

// existingSlot is a present slot's on-disk position, captured before a
// hot flush begins moving things around.
type existingSlot struct {
	slot    int
	offset  uint32
	sectors uint32
}

func (r *Region) snapshotExisting() []existingSlot {
	var out []existingSlot
	for slot := 0; slot < slotCount; slot++ {
		offset, count := r.locationEntry(slot)
		if offset == 0 || count == 0 {
			continue
		}
		out = append(out, existingSlot{slot, offset, uint32(count)})
	}
	return out
}

type hotWrite struct {
	slot       int
	w          *pendingWrite // nil for a clear of a present slot
	existing   bool
	oldOffset  uint32
	oldSectors uint32
	newSectors uint32
}

// flushHot rewrites an already-laid-out region in place: shrinking writes
// (and clears of present slots) are compacted left-to-right, then growing
// writes (including brand-new slots) are placed right-to-left into the
// space that compaction opened up. Both passes keep the mapping valid for
// any slot not directly involved in a given step.
func (r *Region) flushHot() error {
	existingBySlot := make(map[int]existingSlot)
	var oldEnd uint32 = headerSectors
	for _, e := range r.snapshotExisting() {
		existingBySlot[e.slot] = e
		if end := e.offset + e.sectors; end > oldEnd {
			oldEnd = end
		}
	}

	var shrinks, grows []hotWrite
	for _, slot := range sortedSlots(r.pending) {
		w := r.pending[slot]
		e, existed := existingBySlot[slot]

		if w.clear {
			if existed {
				shrinks = append(shrinks, hotWrite{slot: slot, w: nil, existing: true, oldOffset: e.offset, oldSectors: e.sectors})
			}
			continue
		}

		newSectors := sectorsFor(len(w.payload))
		hw := hotWrite{slot: slot, w: w, existing: existed, newSectors: newSectors}
		if existed {
			hw.oldOffset, hw.oldSectors = e.offset, e.sectors
			if newSectors <= e.sectors {
				shrinks = append(shrinks, hw)
			} else {
				grows = append(grows, hw)
			}
		} else {
			grows = append(grows, hw)
		}
	}

	sortByOldOffset(shrinks)
	sortGrows(grows)

	writeCursor, sectorsRemoved := r.runShrinkPass(shrinks, oldEnd)

	// The shrink pass may have relocated a grow-target slot's bytes as a
	// bystander of compacting the gap around it, even though the slot itself
	// was never a shrink. Re-read its current offset before the grow pass
	// uses it as a boundary.
	for i := range grows {
		if grows[i].existing {
			offset, _ := r.locationEntry(grows[i].slot)
			grows[i].oldOffset = offset
		}
	}

	sectorsAdded := uint32(0)
	for _, g := range grows {
		if g.existing {
			sectorsAdded += g.newSectors - g.oldSectors
		} else {
			sectorsAdded += g.newSectors
		}
	}

	oldSize := int64(len(r.data))
	newSize := oldSize - int64(sectorsRemoved)*sectorSize + int64(sectorsAdded)*sectorSize

	if err := r.data.Flush(); err != nil {
		return fmt.Errorf("anvil: %s: sync before resize: %w", r.path, err)
	}
	if err := r.unmap(); err != nil {
		return fmt.Errorf("anvil: %s: unmap before resize: %w", r.path, err)
	}
	if err := r.file.Truncate(newSize); err != nil {
		return fmt.Errorf("anvil: %s: truncate: %w", r.path, err)
	}
	if err := r.mapFile(); err != nil {
		return err
	}

	r.runGrowPass(grows, writeCursor, uint32(newSize/sectorSize))
	return nil
}

func sortByOldOffset(ws []hotWrite) {
	for i := 1; i < len(ws); i++ {
		j := i
		for j > 0 && ws[j-1].oldOffset > ws[j].oldOffset {
			ws[j-1], ws[j] = ws[j], ws[j-1]
			j--
		}
	}
}

// sortGrows orders existing-slot grows ascending by old offset, with
// brand-new slots (no prior position) sorted last.
func sortGrows(ws []hotWrite) {
	for i := 1; i < len(ws); i++ {
		j := i
		for j > 0 && growsBefore(ws[j], ws[j-1]) {
			ws[j-1], ws[j] = ws[j], ws[j-1]
			j--
		}
	}
}

func growsBefore(a, b hotWrite) bool {
	if a.existing != b.existing {
		return a.existing // existing-slot grows sort before brand-new ones
	}
	if !a.existing {
		return false // both new: stable, no further ordering required
	}
	return a.oldOffset < b.oldOffset
}

// runShrinkPass walks shrinks (and clears of present slots) left to right,
// compacting each one's old space out of the file and relocating any
// untouched slots that lay between the previous position and this one. A
// final synthetic step carries the pass through to oldEnd so trailing
// untouched data (destined to be consumed by the grow pass) is compacted
// too. Returns the write cursor's final position (sectors) and the total
// number of sectors removed.
func (r *Region) runShrinkPass(shrinks []hotWrite, oldEnd uint32) (writeCursor, sectorsRemoved uint32) {
	if len(shrinks) == 0 {
		return oldEnd, 0
	}

	readCursor := shrinks[0].oldOffset
	writeCursor = readCursor

	for _, s := range shrinks {
		r.copyGapAndShift(readCursor, s.oldOffset, writeCursor)
		readCursor = s.oldOffset

		if s.w == nil { // clear
			r.putLocationEntry(s.slot, 0, 0)
			r.putTimestampEntry(s.slot, 0)
		} else {
			r.putLocationEntry(s.slot, writeCursor, uint8(s.newSectors))
			r.putTimestampEntry(s.slot, s.w.timestamp)
			r.writeSectorRun(writeCursor, s.w)
			writeCursor += s.newSectors
		}
		readCursor += s.oldSectors
	}

	r.copyGapAndShift(readCursor, oldEnd, writeCursor)
	writeCursor += oldEnd - readCursor
	sectorsRemoved = oldEnd - writeCursor
	return writeCursor, sectorsRemoved
}

// copyGapAndShift moves the untouched sector range [from, to) down to
// dest, then decrements the offset of every present slot whose location
// falls in that range by the same amount.
func (r *Region) copyGapAndShift(from, to, dest uint32) {
	if to <= from {
		return
	}
	n := to - from
	srcStart := int64(from) * sectorSize
	dstStart := int64(dest) * sectorSize
	copy(r.data[dstStart:dstStart+int64(n)*sectorSize], r.data[srcStart:srcStart+int64(n)*sectorSize])

	delta := from - dest
	if delta == 0 {
		return
	}
	for slot := 0; slot < slotCount; slot++ {
		offset, count := r.locationEntry(slot)
		if offset == 0 || count == 0 {
			continue
		}
		if offset >= from && offset < to {
			r.putLocationEntry(slot, offset-delta, count)
		}
	}
}

// runGrowPass walks grows right to left. The write cursor starts at the
// file's new end (newEndSectors) and claims space for each grow moving
// down; the read cursor starts at compactedEnd — the boundary the shrink
// pass left all surviving old data compacted below — since everything from
// compactedEnd up to newEndSectors is freshly-truncated free space, not old
// content to preserve. Existing slots being enlarged relocate any untouched
// sectors that sit between their old end and the current read cursor,
// shifting affected slots' offsets upward; brand-new slots simply claim
// space at the current write cursor without touching the read cursor.
func (r *Region) runGrowPass(grows []hotWrite, compactedEnd, newEndSectors uint32) {
	readCursor := compactedEnd
	writeCursor := newEndSectors

	for i := len(grows) - 1; i >= 0; i-- {
		g := grows[i]

		if g.existing {
			oldSlotEnd := g.oldOffset + g.oldSectors
			r.copyGapUpward(oldSlotEnd, readCursor, writeCursor)
			if readCursor > oldSlotEnd {
				writeCursor -= readCursor - oldSlotEnd
			}
			readCursor = oldSlotEnd

			writeCursor -= g.newSectors
			r.putLocationEntry(g.slot, writeCursor, uint8(g.newSectors))
			r.putTimestampEntry(g.slot, g.w.timestamp)
			r.writeSectorRun(writeCursor, g.w)

			readCursor -= g.oldSectors
		} else {
			writeCursor -= g.newSectors
			r.putLocationEntry(g.slot, writeCursor, uint8(g.newSectors))
			r.putTimestampEntry(g.slot, g.w.timestamp)
			r.writeSectorRun(writeCursor, g.w)
		}
	}

	// the read cursor never rises above compactedEnd, so this range is empty
	// and nothing is copied: data below the read cursor is already in place
	r.copyGapUpward(compactedEnd, readCursor, writeCursor)
}

// copyGapUpward moves the untouched sector range [from, to) up to end at
// dest (dest is the desired end of the moved range, i.e. the copy lands at
// [dest-(to-from), dest)), shifting affected slots' offsets by the same
// amount.
func (r *Region) copyGapUpward(from, to, dest uint32) {
	if to <= from {
		return
	}
	n := to - from
	destStart := dest - n
	if destStart == from {
		return
	}
	srcStart := int64(from) * sectorSize
	dstStart := int64(destStart) * sectorSize
	copy(r.data[dstStart:dstStart+int64(n)*sectorSize], r.data[srcStart:srcStart+int64(n)*sectorSize])

	delta := destStart - from
	for slot := 0; slot < slotCount; slot++ {
		offset, count := r.locationEntry(slot)
		if offset == 0 || count == 0 {
			continue
		}
		if offset >= from && offset < to {
			r.putLocationEntry(slot, offset+delta, count)
		}
	}
}
