// Package region provides backing byte regions for the heap arena: an
// internally owned slab, or an externally supplied region memory-mapped
// from a file so the arena survives the process (and can be pinned to a
// known location by the embedding system).
package region

// Slab returns a zeroed, internally owned region of the given size.
func Slab(size int) []byte {
	if size <= 0 {
		return nil
	}
	return make([]byte, size)
}
