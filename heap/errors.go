package heap

import "errors"

var (
	// ErrConfig indicates an invalid or unusable configuration.
	ErrConfig = errors.New("heap: invalid config")

	// ErrNotInitialized indicates the Heap was not constructed with New.
	ErrNotInitialized = errors.New("heap: not initialized")

	// ErrNoSpace indicates no free block large enough was found. Safe to
	// retry after frees; nothing was changed.
	ErrNoSpace = errors.New("heap: no free block large enough")

	// ErrTooLarge indicates the header-inclusive size would collide with
	// the allocated-flag bit of the size field. Also a plain refusal.
	ErrTooLarge = errors.New("heap: size exceeds maximum block size")

	// ErrDoubleFree indicates a release of a block that is not allocated:
	// either freed twice or never handed out by this heap.
	ErrDoubleFree = errors.New("heap: block is not allocated")

	// ErrBadRef indicates a reference that cannot address a block.
	ErrBadRef = errors.New("heap: bad block reference")

	// ErrCorrupted indicates block metadata was overwritten. Once detected,
	// the heap is poisoned and refuses all further mutation.
	ErrCorrupted = errors.New("heap: arena corrupted")
)
