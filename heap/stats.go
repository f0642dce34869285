package heap

// Stats is a point-in-time snapshot of the heap's accounting counters.
type Stats struct {
	TotalBytes       int    // usable arena size, fixed at construction
	FreeBytes        int    // bytes currently free
	MinEverFreeBytes int    // historical low of FreeBytes (memory pressure high-water mark)
	Allocs           uint64 // successful allocations
	Frees            uint64 // successful frees
}

// FreeBytes returns the bytes currently free, header-inclusive. O(1).
// On an uninitialized Heap it reports the zero pre-init state.
func (h *Heap) FreeBytes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int(h.freeBytes)
}

// MinEverFreeBytes returns the historical minimum of FreeBytes. It is
// non-increasing over the life of the heap and never above FreeBytes. O(1).
func (h *Heap) MinEverFreeBytes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return int(h.minFreeBytes)
}

// Stats returns the full accounting snapshot.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Stats{
		TotalBytes:       int(h.tail),
		FreeBytes:        int(h.freeBytes),
		MinEverFreeBytes: int(h.minFreeBytes),
		Allocs:           h.allocs,
		Frees:            h.frees,
	}
}
