package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"hippocraft/internal/world"
)

// Sink receives finished chunk meshes. Attaching them to anything renderable
// or collidable is the sink's business.
type Sink interface {
	Attach(coord world.ChunkCoord, origin mgl32.Vec3, m *Mesh)
	Detach(coord world.ChunkCoord)
}

// Builder meshes chunks on demand and hands the result to a sink. It
// implements world.ChunkMesher.
type Builder struct {
	src    VoxelSource
	sink   Sink
	builds int
}

// NewBuilder creates a builder reading occupancy from src. sink may be nil.
func NewBuilder(src VoxelSource, sink Sink) *Builder {
	return &Builder{src: src, sink: sink}
}

// Rebuild builds c's mesh and attaches it to the sink.
func (b *Builder) Rebuild(c *world.Chunk) {
	m := BuildMesh(b.src, c)
	b.builds++
	if b.sink != nil {
		b.sink.Attach(c.Coord(), c.OriginVec(), m)
	}
}

// Release detaches c's mesh from the sink.
func (b *Builder) Release(c *world.Chunk) {
	if b.sink != nil {
		b.sink.Detach(c.Coord())
	}
}

// Builds returns how many meshes have been built.
func (b *Builder) Builds() int { return b.builds }

var _ world.ChunkMesher = (*Builder)(nil)
