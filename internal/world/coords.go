package world

import (
	"math"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"

	"hippocraft/internal/mathx"
)

// Voxel is a tile ID. Zero is air, positive values are solid.
type Voxel int

const (
	// VoxelUndefined is returned, never stored, for coordinates outside any
	// loaded chunk.
	VoxelUndefined Voxel = -1
	VoxelAir       Voxel = 0
	VoxelSolid     Voxel = 1
)

// IsSolid reports whether the voxel occludes neighbouring faces.
func (v Voxel) IsSolid() bool { return v > 0 }

// ChunkCoord identifies a chunk column on the X/Z plane.
type ChunkCoord struct {
	X, Z int
}

func (c ChunkCoord) String() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Z)
}

// ChebyshevDistance returns max(|dx|, |dz|) between two chunk coordinates.
func (c ChunkCoord) ChebyshevDistance(o ChunkCoord) int {
	return max(abs(c.X-o.X), abs(c.Z-o.Z))
}

// chunkOfBlock returns the chunk holding world column (x, z) and the local
// offsets inside it.
func chunkOfBlock(x, z, size int) (ChunkCoord, int, int) {
	return ChunkCoord{X: mathx.FloorDiv(x, size), Z: mathx.FloorDiv(z, size)},
		mathx.Mod(x, size), mathx.Mod(z, size)
}

// ChunkAt returns the chunk containing a world position.
func ChunkAt(pos mgl32.Vec3, size int) ChunkCoord {
	bx := int(math.Floor(float64(pos.X())))
	bz := int(math.Floor(float64(pos.Z())))
	c, _, _ := chunkOfBlock(bx, bz, size)
	return c
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
