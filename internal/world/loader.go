package world

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"hippocraft/internal/profiling"
)

// ChunkMesher is told when a chunk needs its mesh built and when a chunk is
// about to be dropped from the world.
type ChunkMesher interface {
	Rebuild(c *Chunk)
	Release(c *Chunk)
}

// UpdateResult reports what one lifecycle pass did.
type UpdateResult struct {
	Center  ChunkCoord
	Changed bool // false when the reference chunk did not move
	Created []ChunkCoord
	Evicted []ChunkCoord
}

// Loader keeps the chunks around a reference position loaded and evicts the
// rest. It is driven from a single goroutine.
type Loader struct {
	world     *World
	mesher    ChunkMesher
	loadRange int
	log       *slog.Logger

	center    ChunkCoord
	hasCenter bool
}

// NewLoader creates a loader for w. loadRange is the chunk distance at which
// chunks are evicted.
func NewLoader(w *World, loadRange int, mesher ChunkMesher, log *slog.Logger) *Loader {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Loader{
		world:     w,
		mesher:    mesher,
		loadRange: loadRange,
		log:       log,
	}
}

// Center returns the reference chunk of the last pass.
func (l *Loader) Center() (ChunkCoord, bool) {
	return l.center, l.hasCenter
}

// Update runs a lifecycle pass for a reference world position.
func (l *Loader) Update(pos mgl32.Vec3) UpdateResult {
	return l.UpdateChunk(ChunkAt(pos, l.world.ChunkSize()))
}

// UpdateChunk runs a lifecycle pass centred on chunk c. Nothing happens when
// c equals the centre of the previous pass.
//
// Every chunk in the inclusive square [c-R, c+R] is created if missing and
// meshed once on creation. Then every chunk whose distance on either axis is
// at least R is evicted, so the ring at distance R only lives long enough to
// give the inner chunks neighbours while they mesh.
func (l *Loader) UpdateChunk(c ChunkCoord) UpdateResult {
	res := UpdateResult{Center: c}
	if l.hasCenter && l.center == c {
		return res
	}
	defer profiling.Track("world.LoaderUpdate")()
	res.Changed = true

	r := l.loadRange
	for x := c.X - r; x <= c.X+r; x++ {
		for z := c.Z - r; z <= c.Z+r; z++ {
			coord := ChunkCoord{X: x, Z: z}
			ch, created := l.world.GetOrCreateChunk(coord)
			if !created {
				continue
			}
			res.Created = append(res.Created, coord)
			if l.mesher != nil {
				l.mesher.Rebuild(ch)
			}
		}
	}

	for _, ch := range l.world.Chunks() {
		coord := ch.Coord()
		if abs(coord.X-c.X) < r && abs(coord.Z-c.Z) < r {
			continue
		}
		if l.mesher != nil {
			l.mesher.Release(ch)
		}
		l.world.RemoveChunk(coord)
		res.Evicted = append(res.Evicted, coord)
	}

	l.center = c
	l.hasCenter = true
	l.log.Debug("chunks updated",
		"center", c.String(),
		"created", len(res.Created),
		"evicted", len(res.Evicted),
		"loaded", l.world.Len())
	return res
}

// RebuildAll rebuilds the mesh of every loaded chunk and returns the count.
func (l *Loader) RebuildAll() int {
	if l.mesher == nil {
		return 0
	}
	chunks := l.world.Chunks()
	for _, ch := range chunks {
		l.mesher.Rebuild(ch)
	}
	return len(chunks)
}
