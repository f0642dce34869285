package heap

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	h := mustNew(t, nil)

	assert.Equal(t, 8, h.Alignment())
	assert.Equal(t, 8, h.HeaderSize())

	// The usable size is the default arena minus the tail sentinel and any
	// base-address rounding; it can never exceed the raw size.
	total := h.TotalBytes()
	assert.Greater(t, total, 0)
	assert.LessOrEqual(t, total, DefaultArenaSize-h.HeaderSize())
	assert.Equal(t, total, h.FreeBytes(), "a fresh heap is one spanning free block")
	assert.Equal(t, total, h.MinEverFreeBytes())

	assertHeapInvariants(t, h)
}

func TestNewConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"alignment not a power of two", Config{Alignment: 12}},
		{"alignment too small", Config{Alignment: 2}},
		{"alignment too large", Config{Alignment: 8192}},
		{"negative size", Config{Size: -1}},
		{"arena too small for a block", Config{Size: 16}},
		{"empty backing", Config{Backing: []byte{}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(&tc.cfg)
			require.ErrorIs(t, err, ErrConfig)
		})
	}
}

func TestNewWiderAlignment(t *testing.T) {
	h := mustNew(t, &Config{Size: 4096, Alignment: 64})

	assert.Equal(t, 64, h.HeaderSize(), "header is rounded up to the alignment boundary")
	assert.Equal(t, 0, h.TotalBytes()%64)

	ref, _ := mustAlloc(t, h, 10)
	assert.Zero(t, int(ref)%64, "payload offset must sit on the alignment boundary")
	assertHeapInvariants(t, h)
}

func TestExternalBacking(t *testing.T) {
	backing := make([]byte, 8192)
	h := mustNew(t, &Config{Backing: backing})

	assert.LessOrEqual(t, h.TotalBytes(), len(backing)-h.HeaderSize())

	_, buf := mustAlloc(t, h, 64)
	for i := range buf[:64] {
		buf[i] = 0x5a
	}

	// Writes through the payload land in the caller-supplied region.
	pattern := bytes.Repeat([]byte{0x5a}, 64)
	assert.True(t, bytes.Contains(backing, pattern), "payload writes must reach the backing region")
	assertHeapInvariants(t, h)
}

func TestZeroValueHeapIsInert(t *testing.T) {
	var h Heap

	// Accounting reads the zero pre-init state and carves nothing.
	assert.Equal(t, 0, h.FreeBytes())
	assert.Equal(t, 0, h.MinEverFreeBytes())
	assert.Equal(t, Stats{}, h.Stats())

	_, _, err := h.Alloc(16)
	require.ErrorIs(t, err, ErrNotInitialized)

	require.NoError(t, h.Free(NilRef), "freeing nothing is always a no-op")
	require.ErrorIs(t, h.Free(Ref(64)), ErrNotInitialized)
}
