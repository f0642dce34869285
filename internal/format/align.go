package format

// Alignment utilities for the heap layout. Block starts, block sizes, and
// the tail sentinel offset must all sit on the configured power-of-two
// boundary.

// AlignUp returns n rounded up to the next multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignUp(1, 8)  = 8
//	AlignUp(8, 8)  = 8
//	AlignUp(9, 8)  = 16
func AlignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}

// AlignDown returns n rounded down to the previous multiple of align.
// align must be a power of two.
//
// Example:
//
//	AlignDown(7, 8)  = 0
//	AlignDown(8, 8)  = 8
//	AlignDown(15, 8) = 8
func AlignDown(n, align int) int {
	return n &^ (align - 1)
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
