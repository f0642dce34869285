package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the resolved arena configuration and layout",
		Long: `The info command resolves the arena configuration, carves the arena,
and reports the resulting layout: usable size after sentinel and alignment
overhead, per-block header cost, and the backing region in use.

Example:
  heapctl info
  heapctl info --config arena.toml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo()
		},
	}
}

type arenaInfo struct {
	ArenaSize  int    `json:"arena_size"`
	ArenaFile  string `json:"arena_file,omitempty"`
	Alignment  int    `json:"alignment"`
	HeaderSize int    `json:"header_size"`
	TotalBytes int    `json:"total_bytes"`
	FreeBytes  int    `json:"free_bytes"`
	ZeroOnFree bool   `json:"zero_on_free"`
}

func runInfo() error {
	cfg, err := loadArenaConfig(cfgPath)
	if err != nil {
		return err
	}
	h, cleanup, err := cfg.openHeap()
	if err != nil {
		return err
	}
	defer func() { _ = cleanup() }()

	info := arenaInfo{
		ArenaSize:  cfg.ArenaSize,
		ArenaFile:  cfg.ArenaFile,
		Alignment:  h.Alignment(),
		HeaderSize: h.HeaderSize(),
		TotalBytes: h.TotalBytes(),
		FreeBytes:  h.FreeBytes(),
		ZeroOnFree: !cfg.NoZeroOnFree,
	}
	if jsonOut {
		return printJSON(info)
	}

	printInfo("Arena:\n")
	printInfo("  Raw size: %s (%s bytes)\n", formatBytes(int64(info.ArenaSize)), msgPrinter.Sprintf("%d", info.ArenaSize))
	if info.ArenaFile != "" {
		printInfo("  Backing: %s (memory-mapped)\n", info.ArenaFile)
	} else {
		printInfo("  Backing: internal slab\n")
	}
	printInfo("  Usable: %s bytes after sentinel and alignment overhead\n", msgPrinter.Sprintf("%d", info.TotalBytes))
	printInfo("\nLayout:\n")
	printInfo("  Alignment: %d bytes\n", info.Alignment)
	printInfo("  Block header: %d bytes\n", info.HeaderSize)
	printInfo("  Zero on free: %v\n", info.ZeroOnFree)
	return nil
}
