package heap

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// assertHeapInvariants walks the arena block by block and cross-checks it
// against the free list and the accounting counters:
//
//   - blocks partition [0, tail) exactly, each at least one header long
//   - the free list is strictly increasing by offset, contains exactly the
//     blocks not marked allocated, and ends at the tail sentinel
//   - no two free-list neighbors are physically contiguous
//   - the free-byte counter equals the sum of free block sizes
func assertHeapInvariants(t *testing.T, h *Heap) {
	t.Helper()

	freeByWalk := map[uint32]uint32{}
	var freeSum uint32
	off := uint32(0)
	for off < h.tail {
		size := h.blockSize(off)
		require.GreaterOrEqual(t, size, h.hdr, "block at offset %d shorter than a header", off)
		require.LessOrEqual(t, off+size, h.tail, "block at offset %d runs past the tail sentinel", off)
		if !h.isAllocated(off) {
			freeByWalk[off] = size
			freeSum += size
		}
		off += size
	}
	require.Equal(t, h.tail, off, "blocks must partition the arena exactly")

	seen := map[uint32]bool{}
	prev := uint32(0)
	first := true
	for cur := h.firstFree; cur != h.tail; cur = h.link(cur) {
		require.False(t, seen[cur], "free list revisits offset %d", cur)
		seen[cur] = true
		if !first {
			require.Greater(t, cur, prev, "free list not in address order at offset %d", cur)
			require.NotEqual(t, prev+h.blockSize(prev), cur, "contiguous free blocks left unmerged at offset %d", cur)
		}
		size, ok := freeByWalk[cur]
		require.True(t, ok, "free list entry %d is not a free block", cur)
		require.Equal(t, size, h.blockSize(cur))
		prev = cur
		first = false
	}
	require.Len(t, seen, len(freeByWalk), "free blocks missing from the free list")
	require.Equal(t, h.freeBytes, freeSum, "free-byte counter disagrees with the arena walk")
}

// mustNew builds a heap and fails the test on error.
func mustNew(t *testing.T, cfg *Config) *Heap {
	t.Helper()
	h, err := New(cfg)
	require.NoError(t, err)
	return h
}

// mustAlloc allocates n bytes and fails the test on refusal.
func mustAlloc(t *testing.T, h *Heap, n int) (Ref, []byte) {
	t.Helper()
	ref, buf, err := h.Alloc(n)
	require.NoError(t, err, "Alloc(%d)", n)
	require.NotEqual(t, NilRef, ref)
	require.GreaterOrEqual(t, len(buf), n, "payload shorter than requested")
	return ref, buf
}
