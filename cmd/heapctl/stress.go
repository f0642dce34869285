package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/heapkit/heap"
)

var msgPrinter = message.NewPrinter(language.English)

func init() {
	rootCmd.AddCommand(newStressCmd())
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run the allocation, coalescing, and refusal workload",
		Long: `The stress command drives the allocator through its paces: a burst of
aligned allocations, pattern writes into every payload, a middle-then-first
release that must coalesce into one reusable hole, an oversized request
that must be refused without side effects, and a full cleanup that must
return the arena to its starting state.

Example:
  heapctl stress
  heapctl stress --config arena.toml --verbose
  heapctl stress --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress()
		},
	}
}

func runStress() error {
	cfg, err := loadArenaConfig(cfgPath)
	if err != nil {
		return err
	}
	h, cleanup, err := cfg.openHeap()
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	if err := runScenario(h); err != nil {
		return err
	}
	if jsonOut {
		return printJSON(h.Stats())
	}
	return nil
}

// snapshot prints the accounting counters under a phase tag.
func snapshot(h *heap.Heap, tag string) {
	st := h.Stats()
	printInfo("[%s] free: %s bytes, min ever free: %s bytes\n",
		tag,
		msgPrinter.Sprintf("%d", st.FreeBytes),
		msgPrinter.Sprintf("%d", st.MinEverFreeBytes))
	log.Debug().
		Str("tag", tag).
		Int("free", st.FreeBytes).
		Int("min_ever_free", st.MinEverFreeBytes).
		Uint64("allocs", st.Allocs).
		Uint64("frees", st.Frees).
		Msg("heap snapshot")
}

// runScenario exercises the allocator end to end and fails on the first
// violated expectation.
func runScenario(h *heap.Heap) error {
	start := h.FreeBytes()
	snapshot(h, "START")

	printInfo("\n1. Allocation & alignment:\n")
	sizes := []int{10, 128, 50, 100}
	refs := make([]heap.Ref, len(sizes))
	bufs := make([][]byte, len(sizes))
	for i, n := range sizes {
		ref, buf, err := h.Alloc(n)
		if err != nil {
			return fmt.Errorf("alloc %d bytes: %w", n, err)
		}
		if int(ref)%h.Alignment() != 0 {
			return fmt.Errorf("alloc %d bytes: offset %d not %d-byte aligned", n, ref, h.Alignment())
		}
		refs[i], bufs[i] = ref, buf
		printInfo("  %4d bytes -> offset %6d\n", n, ref)
	}
	snapshot(h, "AFTER_ALLOC")

	printInfo("\n2. Pattern writes:\n")
	for i, buf := range bufs {
		for j := range buf {
			buf[j] = byte(0xa0 + i)
		}
	}
	printInfo("  wrote %d blocks\n", len(bufs))

	printInfo("\n3. Coalescing (free middle, then first):\n")
	if err := h.Free(refs[1]); err != nil {
		return err
	}
	snapshot(h, "FREE_P2")
	if err := h.Free(refs[0]); err != nil {
		return err
	}
	snapshot(h, "FREE_P1_P2_MERGED")

	// One request sized to the merged hole proves the blocks coalesced:
	// it must come back at the first block's offset.
	merged := len(bufs[0]) + len(bufs[1]) + h.HeaderSize()
	ref, _, err := h.Alloc(merged)
	if err != nil {
		return fmt.Errorf("alloc from merged hole: %w", err)
	}
	if ref != refs[0] {
		return fmt.Errorf("merged hole handed out at offset %d, want %d", ref, refs[0])
	}
	printInfo("  merged hole reused at offset %d\n", ref)

	printInfo("\n4. Boundary:\n")
	before := h.Stats()
	if _, _, err := h.Alloc(25 * h.TotalBytes()); err == nil {
		return fmt.Errorf("oversized allocation unexpectedly succeeded")
	}
	if h.Stats() != before {
		return fmt.Errorf("refused allocation altered the accounting counters")
	}
	printInfo("  oversized request refused, accounting untouched\n")

	printInfo("\n5. Cleanup:\n")
	for _, r := range []heap.Ref{ref, refs[2], refs[3]} {
		if err := h.Free(r); err != nil {
			return err
		}
	}
	snapshot(h, "FINAL")
	if got := h.FreeBytes(); got != start {
		return fmt.Errorf("leak: %d bytes free after cleanup, started with %d", got, start)
	}

	printInfo("\nScenario complete.\n")
	return nil
}
