// Package heap implements a fixed-capacity, general-purpose allocator over
// a single contiguous byte arena, for embedding in systems that must not
// grow their memory footprint after startup.
//
// # Overview
//
// The arena is carved once, when the Heap is constructed, and satisfies
// every allocation for the life of the process. Each block, free or
// allocated, starts with an 8-byte in-place header: a next-free link and a
// header-inclusive size whose highest bit marks the block allocated. Free
// blocks form a singly linked, address-ordered list bounded by a logical
// head in the Heap struct and a tail sentinel written at the highest
// aligned offset of the arena.
//
// # Allocation strategy
//
//   - First fit: the scan from the list head returns the first free block
//     whose size covers the header-inflated, alignment-rounded request.
//   - Split threshold: when the selected block's remainder exceeds twice
//     the header size, the tail of the block is carved off and reinserted
//     as a new free block; smaller remainders ride along with the
//     allocation (bounded internal fragmentation).
//   - Eager coalescing: a released block is merged with its address-adjacent
//     free neighbors on insertion, so no two contiguous free blocks ever
//     coexist.
//
// # Usage Example
//
//	h, err := heap.New(&heap.Config{Size: 64 << 10})
//	if err != nil {
//	    return err
//	}
//
//	ref, buf, err := h.Alloc(128)
//	if err != nil {
//	    return err
//	}
//
//	// Use buf (at least 128 bytes), then hand the block back.
//	if err := h.Free(ref); err != nil {
//	    return err
//	}
//
// # References and failure tiers
//
// A Ref is the byte offset of an allocation's payload within the arena;
// NilRef is never a valid allocation and freeing it is a no-op. Failures
// come in two tiers. Ordinary refusals (ErrNoSpace, ErrTooLarge) are
// side-effect free and safe to retry after frees. Corruption
// (ErrDoubleFree, ErrBadRef, ErrCorrupted) means the arena can no longer
// be trusted: the heap is poisoned and every later Alloc or Free fails
// with ErrCorrupted.
//
// # Accounting
//
// FreeBytes and MinEverFreeBytes are O(1) reads of counters maintained by
// Alloc and Free; MinEverFreeBytes is the historical low of free bytes and
// indicates worst-case memory pressure. Stats returns the full snapshot,
// including success counters.
//
// # Thread Safety
//
// All mutating and reading operations take an internal mutex held for the
// duration of the call, never across calls. A Heap is safe for concurrent
// use by multiple goroutines.
package heap
