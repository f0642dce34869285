package heap

import "fmt"

// Free returns the allocation at ref to the free list, merging it with any
// address-adjacent free neighbors. Freeing NilRef is a no-op.
//
// A reference that does not name a live allocation from this heap, or a
// block whose header was overwritten, is heap corruption: Free reports it
// (ErrDoubleFree, ErrBadRef, or ErrCorrupted) and poisons the heap, after
// which every Alloc and Free fails with ErrCorrupted. There is no recovery
// path past a corrupted arena.
func (h *Heap) Free(ref Ref) error {
	if ref == NilRef {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.poisoned {
		return ErrCorrupted
	}
	if h.tail == 0 {
		return ErrNotInitialized
	}

	// Recover the header preceding the payload.
	if uint32(ref) < h.hdr {
		return h.poison(fmt.Errorf("%w: payload offset %d", ErrBadRef, ref))
	}
	block := uint32(ref) - h.hdr
	if !h.validBlockStart(block) {
		return h.poison(fmt.Errorf("%w: payload offset %d", ErrBadRef, ref))
	}

	if !h.isAllocated(block) {
		return h.poison(fmt.Errorf("%w: offset %d", ErrDoubleFree, block))
	}
	if h.link(block) != nilLink {
		// Alloc cleared this link when the block was handed out; anything
		// else means the header was overwritten.
		return h.poison(fmt.Errorf("%w: link overwritten at offset %d", ErrCorrupted, block))
	}

	size := h.blockSize(block)
	if size < h.hdr || block+size > h.tail {
		return h.poison(fmt.Errorf("%w: block size %d at offset %d", ErrCorrupted, size, block))
	}

	h.markFree(block)
	if h.zeroOnFree {
		// Only the user-visible span; the header stays intact.
		clear(h.mem[uint32(ref) : block+size])
	}

	h.freeBytes += size
	h.insertFreeBlock(block)
	h.frees++
	return nil
}

// poison marks the arena untrustworthy and passes err through.
func (h *Heap) poison(err error) error {
	h.poisoned = true
	return err
}
