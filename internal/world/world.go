package world

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"hippocraft/internal/config"
	"hippocraft/internal/mathx"
	"hippocraft/internal/profiling"
	"hippocraft/internal/terrain"
)

// World is the sparse index of loaded chunks. A chunk's presence is the only
// record that its region is loaded.
type World struct {
	gen           *terrain.Generator
	log           *slog.Logger
	chunkSize     int
	chunkHeight   int
	groundLevel   int
	chunksPerTile int

	mu       sync.RWMutex
	chunks   map[ChunkCoord]*Chunk
	modCount uint64 // bumped on every add/remove
	flight   singleflight.Group
}

// New creates an empty world that generates chunks from gen.
func New(cfg *config.Config, gen *terrain.Generator, log *slog.Logger) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("world: %w", err)
	}
	if gen.TileSize() != cfg.Terrain.TileSize {
		return nil, fmt.Errorf("world: %w: generator tile size %d does not match configured %d",
			config.ErrInvalid, gen.TileSize(), cfg.Terrain.TileSize)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &World{
		gen:           gen,
		log:           log,
		chunkSize:     cfg.Chunk.Size,
		chunkHeight:   cfg.Chunk.Height,
		groundLevel:   cfg.Terrain.GroundLevel,
		chunksPerTile: cfg.ChunksPerTile(),
		chunks:        make(map[ChunkCoord]*Chunk),
	}, nil
}

// ChunkSize returns the chunk edge length on X and Z.
func (w *World) ChunkSize() int { return w.chunkSize }

// ChunkHeight returns the number of voxels per column.
func (w *World) ChunkHeight() int { return w.chunkHeight }

// Chunk returns the loaded chunk at coord without creating it.
func (w *World) Chunk(coord ChunkCoord) (*Chunk, bool) {
	w.mu.RLock()
	c, ok := w.chunks[coord]
	w.mu.RUnlock()
	return c, ok
}

// GetOrCreateChunk returns the chunk at coord, generating and filling it if
// absent. created is true only for the call that generated it; concurrent
// requests for one coordinate share a single generation.
func (w *World) GetOrCreateChunk(coord ChunkCoord) (c *Chunk, created bool) {
	if c, ok := w.Chunk(coord); ok {
		return c, false
	}

	v, _, _ := w.flight.Do(coord.String(), func() (any, error) {
		if c, ok := w.Chunk(coord); ok {
			return c, nil
		}
		c := w.generateChunk(coord)
		w.mu.Lock()
		w.chunks[coord] = c
		w.modCount++
		w.mu.Unlock()
		created = true
		return c, nil
	})
	return v.(*Chunk), created
}

// AddChunk installs a prepared chunk. It reports false, leaving the index
// untouched, when the coordinate is already taken.
func (w *World) AddChunk(c *Chunk) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.chunks[c.coord]; ok {
		return false
	}
	w.chunks[c.coord] = c
	w.modCount++
	return true
}

// RemoveChunk drops the chunk at coord and reports whether it was loaded.
func (w *World) RemoveChunk(coord ChunkCoord) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.chunks[coord]; !ok {
		return false
	}
	delete(w.chunks, coord)
	w.modCount++
	return true
}

// Chunks returns every loaded chunk ordered by X then Z.
func (w *World) Chunks() []*Chunk {
	w.mu.RLock()
	out := make([]*Chunk, 0, len(w.chunks))
	for _, c := range w.chunks {
		out = append(out, c)
	}
	w.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Chunk) int {
		if a.coord.X != b.coord.X {
			return a.coord.X - b.coord.X
		}
		return a.coord.Z - b.coord.Z
	})
	return out
}

// Len returns the number of loaded chunks.
func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// ModCount increases on every chunk add or remove.
func (w *World) ModCount() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.modCount
}

// GlobalVoxel returns the voxel at world coordinates, or VoxelUndefined when
// the owning chunk is not loaded.
func (w *World) GlobalVoxel(x, y, z int) Voxel {
	coord, lx, lz := chunkOfBlock(x, z, w.chunkSize)
	c, ok := w.Chunk(coord)
	if !ok {
		return VoxelUndefined
	}
	return c.LocalVoxel(lx, y, lz)
}

// IsSolid reports whether the world voxel is loaded and solid.
func (w *World) IsSolid(x, y, z int) bool {
	return w.GlobalVoxel(x, y, z).IsSolid()
}

// GenerateSquare creates every chunk with -n <= cx, cz < n and returns how
// many were new.
func (w *World) GenerateSquare(n int) int {
	created := 0
	for x := -n; x < n; x++ {
		for z := -n; z < n; z++ {
			if _, ok := w.GetOrCreateChunk(ChunkCoord{X: x, Z: z}); ok {
				created++
			}
		}
	}
	return created
}

// TileFor maps a chunk to the terrain tile holding it and the block offset of
// the chunk inside that tile.
func (w *World) TileFor(coord ChunkCoord) (tile terrain.TileCoord, offsetX, offsetZ int) {
	tile = terrain.TileCoord{
		X: mathx.FloorDiv(coord.X, w.chunksPerTile),
		Z: mathx.FloorDiv(coord.Z, w.chunksPerTile),
	}
	offsetX = mathx.Mod(coord.X, w.chunksPerTile) * w.chunkSize
	offsetZ = mathx.Mod(coord.Z, w.chunksPerTile) * w.chunkSize
	return tile, offsetX, offsetZ
}

func (w *World) generateChunk(coord ChunkCoord) *Chunk {
	defer profiling.Track("world.GenerateChunk")()
	tile, offX, offZ := w.TileFor(coord)
	c := NewChunk(coord, w.chunkSize, w.chunkHeight)
	c.Fill(offX, offZ, w.gen.Terrain(tile), w.groundLevel)
	w.log.Debug("chunk generated", "chunk", coord.String(), "tile", tile.String())
	return c
}
