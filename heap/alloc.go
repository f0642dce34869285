package heap

import "fmt"

// Ref addresses an allocation: the byte offset of its payload within the
// arena. The payload of a real allocation always sits at least one header
// past the arena start, so NilRef is unambiguous.
type Ref uint32

// NilRef is the "no allocation" reference. Freeing it is a no-op.
const NilRef Ref = 0

// Alloc takes n usable bytes from the arena and returns the payload
// reference plus the payload slice. The slice covers the whole usable span
// of the selected block, which may exceed n by alignment rounding or an
// unsplit remainder; its capacity is clamped so appends cannot reach the
// neighboring block.
//
// Refusals (ErrNoSpace for n <= 0, exhaustion, or no fitting block;
// ErrTooLarge for sizes colliding with the allocated-flag bit) leave the
// heap untouched.
func (h *Heap) Alloc(n int) (Ref, []byte, error) {
	if n <= 0 {
		// Zero-size requests are a defined refusal, not a distinct error.
		return NilRef, nil, ErrNoSpace
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.poisoned {
		return NilRef, nil, ErrCorrupted
	}
	if h.tail == 0 {
		return NilRef, nil, ErrNotInitialized
	}

	// Inflate by the header and round up to the alignment boundary.
	need64 := uint64(n) + uint64(h.hdr)
	need64 = (need64 + uint64(h.align) - 1) &^ (uint64(h.align) - 1)
	if need64 > maxBlockSize {
		return NilRef, nil, ErrTooLarge
	}
	need := uint32(need64)

	if need > h.freeBytes {
		return NilRef, nil, ErrNoSpace
	}

	// First fit: the earliest free block that covers the request wins.
	prev := uint32(listHead)
	cur := h.firstFree
	for h.blockSize(cur) < need && h.link(cur) != nilLink {
		prev = cur
		cur = h.link(cur)
		if !h.validBlockStart(cur) && cur != h.tail {
			h.poisoned = true
			return NilRef, nil, fmt.Errorf("%w: free list links to offset %d", ErrCorrupted, cur)
		}
	}
	if cur == h.tail {
		// Enough bytes in total, but fragmented below the request.
		return NilRef, nil, ErrNoSpace
	}

	// Unlink the winner.
	h.setLink(prev, h.link(cur))

	// Split when the remainder would still be a useful free block.
	if h.blockSize(cur)-need > h.minBlock {
		rem := cur + need
		h.setBlockSize(rem, h.blockSize(cur)-need)
		h.setBlockSize(cur, need)
		h.insertFreeBlock(rem)
	}

	size := h.blockSize(cur)
	h.freeBytes -= size
	if h.freeBytes < h.minFreeBytes {
		h.minFreeBytes = h.freeBytes
	}

	h.markAllocated(cur)
	// The cleared link doubles as the release-time corruption check.
	h.setLink(cur, nilLink)
	h.allocs++

	start := cur + h.hdr
	end := cur + size
	return Ref(start), h.mem[start:end:end], nil
}

// Payload returns the usable bytes of the live allocation at ref. Unlike
// Free, a bad or stale reference here is reported without poisoning the
// heap: the arena was only read.
func (h *Heap) Payload(ref Ref) ([]byte, error) {
	if ref == NilRef || uint32(ref) < h.hdr {
		return nil, ErrBadRef
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.tail == 0 {
		return nil, ErrNotInitialized
	}
	block := uint32(ref) - h.hdr
	if !h.validBlockStart(block) {
		return nil, ErrBadRef
	}
	if !h.isAllocated(block) {
		return nil, ErrBadRef
	}
	size := h.blockSize(block)
	if size < h.hdr || block+size > h.tail {
		return nil, fmt.Errorf("%w: block size %d at offset %d", ErrCorrupted, size, block)
	}
	end := block + size
	return h.mem[uint32(ref):end:end], nil
}
