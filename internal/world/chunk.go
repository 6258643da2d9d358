package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"hippocraft/internal/terrain"
)

// Chunk is a dense size×height×size block of voxels.
type Chunk struct {
	coord  ChunkCoord
	size   int
	height int
	voxels []Voxel
}

// NewChunk creates an all-air chunk at the given chunk coordinate.
func NewChunk(coord ChunkCoord, size, height int) *Chunk {
	return &Chunk{
		coord:  coord,
		size:   size,
		height: height,
		voxels: make([]Voxel, size*height*size),
	}
}

// Coord returns the chunk coordinate.
func (c *Chunk) Coord() ChunkCoord { return c.coord }

// Size returns the edge length on X and Z.
func (c *Chunk) Size() int { return c.size }

// Height returns the number of voxels on Y.
func (c *Chunk) Height() int { return c.height }

func (c *Chunk) index(x, y, z int) int {
	return (x*c.height+y)*c.size + z
}

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.height && z >= 0 && z < c.size
}

// LocalVoxel returns the voxel at local coordinates, or VoxelUndefined when
// the coordinate lies outside the chunk.
func (c *Chunk) LocalVoxel(x, y, z int) Voxel {
	if !c.inBounds(x, y, z) {
		return VoxelUndefined
	}
	return c.voxels[c.index(x, y, z)]
}

// SetLocalVoxel overwrites one voxel and reports whether the coordinate was
// inside the chunk. Meshes are not updated; rebuild them afterwards.
func (c *Chunk) SetLocalVoxel(x, y, z int, v Voxel) bool {
	if !c.inBounds(x, y, z) {
		return false
	}
	c.voxels[c.index(x, y, z)] = v
	return true
}

// Fill sets every column from y=0 up to groundLevel+height (inclusive) to
// solid, reading heights[offsetX+x][offsetZ+z]. Columns are clipped to the
// chunk height; the rest stays air.
func (c *Chunk) Fill(offsetX, offsetZ int, heights *terrain.Grid, groundLevel int) {
	for x := 0; x < c.size; x++ {
		for z := 0; z < c.size; z++ {
			top := min(groundLevel+heights.At(offsetX+x, offsetZ+z), c.height-1)
			for y := 0; y < c.height; y++ {
				v := VoxelAir
				if y <= top {
					v = VoxelSolid
				}
				c.voxels[c.index(x, y, z)] = v
			}
		}
	}
}

// Origin returns the world block coordinate of local (0, 0, 0).
func (c *Chunk) Origin() (x, y, z int) {
	return c.coord.X * c.size, 0, c.coord.Z * c.size
}

// OriginVec is Origin as a float vector for mesh placement.
func (c *Chunk) OriginVec() mgl32.Vec3 {
	x, y, z := c.Origin()
	return mgl32.Vec3{float32(x), float32(y), float32(z)}
}

// ToWorld converts local voxel coordinates to world block coordinates.
func (c *Chunk) ToWorld(x, y, z int) (int, int, int) {
	ox, oy, oz := c.Origin()
	return ox + x, oy + y, oz + z
}

// SolidCount returns the number of solid voxels.
func (c *Chunk) SolidCount() int {
	n := 0
	for _, v := range c.voxels {
		if v.IsSolid() {
			n++
		}
	}
	return n
}
