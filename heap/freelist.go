package heap

// insertFreeBlock links the free block at ref into the address-ordered free
// list, absorbing physically adjacent neighbors. The free-list invariant
// holds on return: the chain is strictly increasing by offset and no two
// entries touch.
func (h *Heap) insertFreeBlock(ref uint32) {
	// Walk to the entry after which ref belongs. The walk cannot pass the
	// tail sentinel: every insertable block lies below it.
	it := uint32(listHead)
	for h.link(it) < ref {
		it = h.link(it)
	}

	// Absorb ref into the preceding block when they touch.
	if it != listHead && it+h.blockSize(it) == ref {
		h.setBlockSize(it, h.blockSize(it)+h.blockSize(ref))
		ref = it
	}

	// Absorb the following block when it touches, unless it is the tail
	// sentinel, which is never merged away.
	follower := h.link(it)
	if ref+h.blockSize(ref) == follower && follower != h.tail {
		h.setBlockSize(ref, h.blockSize(ref)+h.blockSize(follower))
		h.setLink(ref, h.link(follower))
	} else {
		h.setLink(ref, follower)
	}

	if it != ref {
		h.setLink(it, ref)
	}
}
