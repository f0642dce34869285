package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog/log"

	"github.com/joshuapare/heapkit/heap"
	"github.com/joshuapare/heapkit/internal/region"
)

// arenaConfig is the TOML surface over heap.Config, plus the choice of
// backing region. An arena_file pins the arena to a memory-mapped file so
// its location is stable across the process and inspectable afterwards.
type arenaConfig struct {
	ArenaSize    int    `toml:"arena_size"`
	Alignment    int    `toml:"alignment"`
	ArenaFile    string `toml:"arena_file"`
	NoZeroOnFree bool   `toml:"no_zero_on_free"`
}

func defaultArenaConfig() arenaConfig {
	return arenaConfig{
		ArenaSize: heap.DefaultArenaSize,
		Alignment: heap.DefaultAlignment,
	}
}

// loadArenaConfig returns the defaults overlaid with the TOML file at path,
// when one is given.
func loadArenaConfig(path string) (arenaConfig, error) {
	cfg := defaultArenaConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// openHeap builds the heap, memory-mapping the arena file when one is
// configured. The returned cleanup is a no-op for internally owned arenas.
func (c arenaConfig) openHeap() (*heap.Heap, func() error, error) {
	hc := heap.Config{
		Size:         c.ArenaSize,
		Alignment:    c.Alignment,
		NoZeroOnFree: c.NoZeroOnFree,
	}
	cleanup := func() error { return nil }
	if c.ArenaFile != "" {
		backing, done, err := region.MapFile(c.ArenaFile, c.ArenaSize)
		if err != nil {
			return nil, nil, err
		}
		hc.Backing = backing
		cleanup = done
		log.Debug().Str("file", c.ArenaFile).Int("size", c.ArenaSize).Msg("mapped arena file")
	}
	h, err := heap.New(&hc)
	if err != nil {
		_ = cleanup()
		return nil, nil, err
	}
	return h, cleanup, nil
}
