package heap

import "github.com/joshuapare/heapkit/internal/format"

// Block header layout (little-endian), written in place at the start of
// every block:
//
//	Offset  Size  Description
//	0x00    4     Next-free link: arena offset of the next free block.
//	              Meaningful only while the block is free; set to nilLink
//	              when the block is handed out (release-time check).
//	0x04    4     Header-inclusive block size. The highest bit is the
//	              allocated flag, capping block sizes at 2^31-1.
const (
	hdrNextOff = 0
	hdrSizeOff = 4
	hdrBytes   = 8 // packed header; the on-arena header is this, alignment-rounded
)

const (
	// allocatedBit marks a block as handed out. It shares the size field.
	allocatedBit = uint32(1) << 31

	// nilLink is the null value of a next-free link. Offset 0 addresses a
	// real block, so the null link must lie outside the arena range.
	nilLink = ^uint32(0)

	// listHead stands in for the head sentinel, which lives in the Heap
	// struct rather than the arena. Its size reads as zero and its link is
	// the firstFree field.
	listHead = ^uint32(0) - 1
)

// link returns the next-free link of the block at ref.
func (h *Heap) link(ref uint32) uint32 {
	if ref == listHead {
		return h.firstFree
	}
	return format.ReadU32(h.mem, int(ref)+hdrNextOff)
}

// setLink writes the next-free link of the block at ref.
func (h *Heap) setLink(ref, next uint32) {
	if ref == listHead {
		h.firstFree = next
		return
	}
	format.PutU32(h.mem, int(ref)+hdrNextOff, next)
}

// blockSize returns the header-inclusive size of the block at ref with the
// allocated flag masked off.
func (h *Heap) blockSize(ref uint32) uint32 {
	if ref == listHead {
		return 0
	}
	return format.ReadU32(h.mem, int(ref)+hdrSizeOff) &^ allocatedBit
}

// setBlockSize writes the size of a free block. Must not be used on an
// allocated block: it clears the allocated flag.
func (h *Heap) setBlockSize(ref, size uint32) {
	format.PutU32(h.mem, int(ref)+hdrSizeOff, size)
}

// isAllocated reports whether the block at ref is marked handed out.
func (h *Heap) isAllocated(ref uint32) bool {
	return format.ReadU32(h.mem, int(ref)+hdrSizeOff)&allocatedBit != 0
}

// markAllocated sets the allocated flag of the block at ref.
func (h *Heap) markAllocated(ref uint32) {
	format.PutU32(h.mem, int(ref)+hdrSizeOff, format.ReadU32(h.mem, int(ref)+hdrSizeOff)|allocatedBit)
}

// markFree clears the allocated flag of the block at ref.
func (h *Heap) markFree(ref uint32) {
	format.PutU32(h.mem, int(ref)+hdrSizeOff, format.ReadU32(h.mem, int(ref)+hdrSizeOff)&^allocatedBit)
}

// validBlockStart reports whether ref can address a block header: inside
// the arena, below the tail sentinel, and on the alignment boundary.
func (h *Heap) validBlockStart(ref uint32) bool {
	return ref < h.tail && ref%h.align == 0
}
