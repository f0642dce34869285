package heap

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/joshuapare/heapkit/internal/format"
)

const (
	// DefaultArenaSize is the arena size used when Config.Size is zero.
	DefaultArenaSize = 40960

	// DefaultAlignment is the block alignment used when Config.Alignment is zero.
	DefaultAlignment = 8

	// maxBlockSize is the largest header-inclusive block size. The
	// allocated flag occupies the high bit of the 32-bit size field.
	maxBlockSize = 1<<31 - 1
)

// Config controls arena construction. The zero value selects an internally
// owned arena of DefaultArenaSize bytes, 8-byte alignment, and zero-fill of
// released payloads.
type Config struct {
	// Size is the arena size in bytes for an internally owned arena.
	// Ignored when Backing is set.
	Size int

	// Alignment is the block alignment boundary. Must be a power of two
	// between 4 and 4096.
	Alignment int

	// Backing supplies the arena bytes externally (for example a
	// memory-mapped region). The heap takes exclusive ownership of the
	// slice contents for its lifetime.
	Backing []byte

	// NoZeroOnFree disables the default zero-fill of a released block's
	// payload. Freed contents then remain readable until reuse.
	NoZeroOnFree bool
}

// Heap is a fixed-capacity first-fit allocator over one contiguous arena.
// See the package documentation for the block and free-list layout.
type Heap struct {
	mu sync.Mutex

	mem      []byte // aligned arena window into the backing region
	align    uint32
	hdr      uint32 // header size, alignment-rounded
	minBlock uint32 // split threshold: remainders at or below this ride along

	firstFree uint32 // link of the logical head sentinel
	tail      uint32 // offset of the tail sentinel; 0 means not carved

	zeroOnFree bool
	poisoned   bool

	freeBytes    uint32
	minFreeBytes uint32
	allocs       uint64
	frees        uint64
}

// New validates cfg and carves the arena: head and tail sentinels are
// installed and one free block spans the whole usable region. A nil cfg
// selects the defaults.
func New(cfg *Config) (*Heap, error) {
	var c Config
	if cfg != nil {
		c = *cfg
	}
	if c.Alignment == 0 {
		c.Alignment = DefaultAlignment
	}
	if !format.IsPowerOfTwo(c.Alignment) || c.Alignment < 4 || c.Alignment > 4096 {
		return nil, fmt.Errorf("%w: alignment %d must be a power of two in [4, 4096]", ErrConfig, c.Alignment)
	}

	backing := c.Backing
	if backing == nil {
		if c.Size == 0 {
			c.Size = DefaultArenaSize
		}
		if c.Size < 0 {
			return nil, fmt.Errorf("%w: negative arena size %d", ErrConfig, c.Size)
		}
		backing = make([]byte, c.Size)
	}

	h := &Heap{
		align:      uint32(c.Alignment),
		zeroOnFree: !c.NoZeroOnFree,
	}
	if err := h.carve(backing); err != nil {
		return nil, err
	}
	return h, nil
}

// carve rounds the backing region to the alignment boundary, places the
// tail sentinel at the highest aligned offset, and links the single
// spanning free block as head -> block -> tail.
func (h *Heap) carve(backing []byte) error {
	align := int(h.align)
	h.hdr = uint32(format.AlignUp(hdrBytes, align))
	h.minBlock = 2 * h.hdr

	// Round the base address up to the alignment boundary so returned
	// payloads are aligned in address space, not just in offset space.
	skip := 0
	if len(backing) > 0 {
		base := uintptr(unsafe.Pointer(&backing[0]))
		skip = int((uintptr(align) - base%uintptr(align)) % uintptr(align))
	}

	minArena := skip + int(h.hdr) + int(h.minBlock)
	if len(backing) < minArena {
		return fmt.Errorf("%w: arena of %d bytes cannot hold the sentinels and a usable block", ErrConfig, len(backing))
	}
	if len(backing)-skip > maxBlockSize {
		return fmt.Errorf("%w: arena of %d bytes exceeds the %d-byte maximum", ErrConfig, len(backing), maxBlockSize)
	}
	mem := backing[skip:]

	// The tail sentinel occupies the highest aligned offset that still
	// leaves room for its header.
	tail := uint32(format.AlignDown(len(mem)-int(h.hdr), align))
	if tail < h.minBlock {
		return fmt.Errorf("%w: arena of %d bytes cannot hold the sentinels and a usable block", ErrConfig, len(backing))
	}

	h.mem = mem
	h.tail = tail

	// One free block spans the whole usable region.
	h.setBlockSize(0, tail)
	h.setLink(0, tail)
	h.setBlockSize(tail, 0)
	h.setLink(tail, nilLink)
	h.firstFree = 0

	h.freeBytes = tail
	h.minFreeBytes = tail
	return nil
}

// HeaderSize returns the per-block overhead in bytes: the in-place header
// rounded up to the alignment boundary.
func (h *Heap) HeaderSize() int {
	return int(h.hdr)
}

// Alignment returns the configured block alignment boundary.
func (h *Heap) Alignment() int {
	return int(h.align)
}

// TotalBytes returns the usable arena size: the sum of all header-inclusive
// block sizes, fixed at construction. Zero on an uninitialized Heap.
func (h *Heap) TotalBytes() int {
	return int(h.tail)
}
