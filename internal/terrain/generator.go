// Package terrain synthesises deterministic height fields from seeded value
// noise. Every field is generated lazily per tile and cached for the lifetime
// of the Generator.
package terrain

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"

	"hippocraft/internal/config"
	"hippocraft/internal/mathx"
	"hippocraft/internal/profiling"
)

// Stats counts how many fields have actually been generated (cache misses).
type Stats struct {
	NoiseFields   int
	ZoomFields    int
	TerrainFields int
}

type zoomKey struct {
	tile  TileCoord
	scale int
}

// Generator owns the noise, zoom and terrain caches for one seed.
// It is safe for concurrent use; each key is generated at most once.
type Generator struct {
	seed    string
	size    int
	domain  int
	base    float64
	octaves []config.Octave
	log     *slog.Logger

	mu      sync.RWMutex
	noise   map[TileCoord]*Grid
	zoom    map[zoomKey]*Grid
	terrain map[TileCoord]*Grid
	stats   Stats
	flight  singleflight.Group
}

// New creates a generator for seed. Malformed terrain settings are rejected.
func New(seed string, cfg config.TerrainConfig, log *slog.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Generator{
		seed:    seed,
		size:    cfg.TileSize,
		domain:  cfg.NoiseDomain,
		base:    cfg.BaseWeight,
		octaves: append([]config.Octave(nil), cfg.Octaves...),
		log:     log,
		noise:   make(map[TileCoord]*Grid),
		zoom:    make(map[zoomKey]*Grid),
		terrain: make(map[TileCoord]*Grid),
	}, nil
}

// TileSize returns the edge length of every grid this generator produces.
func (g *Generator) TileSize() int { return g.size }

// Stats returns the number of fields generated so far.
func (g *Generator) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stats
}

// Noise returns the raw seeded noise field of a tile, values in [0, NoiseDomain).
func (g *Generator) Noise(tc TileCoord) *Grid {
	return load(g, g.noise, tc, "noise:"+tc.String(), &g.stats.NoiseFields, func() *Grid {
		return g.generateNoise(tc)
	})
}

// Terrain returns the weighted octave sum for a tile.
func (g *Generator) Terrain(tc TileCoord) *Grid {
	return load(g, g.terrain, tc, "terrain:"+tc.String(), &g.stats.TerrainFields, func() *Grid {
		return g.synthesize(tc)
	})
}

// HeightAt returns the terrain value of the world column (x, z).
func (g *Generator) HeightAt(x, z int) int {
	tc := TileCoord{X: mathx.FloorDiv(x, g.size), Z: mathx.FloorDiv(z, g.size)}
	return g.Terrain(tc).At(mathx.Mod(x, g.size), mathx.Mod(z, g.size))
}

// tileSeed folds the global seed and tile coordinate into one PRNG seed.
// The string layout is "<seed>:<tx>.<tz>".
func (g *Generator) tileSeed(tc TileCoord) uint64 {
	return xxhash.Sum64String(g.seed + ":" + tc.String())
}

func (g *Generator) generateNoise(tc TileCoord) *Grid {
	s := g.tileSeed(tc)
	rng := rand.New(rand.NewPCG(s, s^0x9E3779B97F4A7C15))
	grid := NewGrid(g.size)
	for x := 0; x < g.size; x++ {
		for z := 0; z < g.size; z++ {
			grid.Set(x, z, rng.IntN(g.domain))
		}
	}
	return grid
}

func (g *Generator) synthesize(tc TileCoord) *Grid {
	defer profiling.Track("terrain.Synthesize")()
	grid := NewGrid(g.size)
	grid.addWeighted(g.Noise(tc), g.base)
	for _, o := range g.octaves {
		grid.addWeighted(g.Zoom(tc, o.Scale), o.Weight)
	}
	g.log.Debug("terrain tile synthesized", "tile", tc.String(), "octaves", len(g.octaves))
	return grid
}

// load returns cache[key], building it once. Concurrent callers for the same
// key wait on a single build. build runs with g.mu released; counter is
// bumped under g.mu when the result is stored.
func load[K comparable](g *Generator, cache map[K]*Grid, key K, flightKey string, counter *int, build func() *Grid) *Grid {
	g.mu.RLock()
	grid, ok := cache[key]
	g.mu.RUnlock()
	if ok {
		return grid
	}

	v, _, _ := g.flight.Do(flightKey, func() (any, error) {
		g.mu.RLock()
		grid, ok := cache[key]
		g.mu.RUnlock()
		if ok {
			return grid, nil
		}
		grid = build()
		g.mu.Lock()
		cache[key] = grid
		*counter++
		g.mu.Unlock()
		return grid, nil
	})
	return v.(*Grid)
}

func scaleKey(tc TileCoord, scale int) string {
	return "zoom:" + tc.String() + "@" + strconv.Itoa(scale)
}
