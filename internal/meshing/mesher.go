// Package meshing turns chunk voxels into triangle meshes, emitting one quad
// for every solid voxel face that borders a non-solid neighbour.
package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"hippocraft/internal/profiling"
	"hippocraft/internal/world"
)

// VoxelSource answers occupancy queries in world block coordinates.
// *world.World implements it; unloaded regions are not solid.
type VoxelSource interface {
	IsSolid(x, y, z int) bool
}

// Mesh is a chunk's surface: positions relative to the chunk origin and
// counter-clockwise triangles, four vertices and six indices per face.
type Mesh struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
}

// FaceCount returns the number of emitted quads.
func (m *Mesh) FaceCount() int { return len(m.Vertices) / 4 }

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

func (m *Mesh) addFace(f Face, x, y, z int) {
	base := uint32(len(m.Vertices))
	for _, c := range faceTable[f].corners {
		m.Vertices = append(m.Vertices, mgl32.Vec3{
			float32(x + c[0]),
			float32(y + c[1]),
			float32(z + c[2]),
		})
	}
	for _, i := range quadTriangles {
		m.Indices = append(m.Indices, base+i)
	}
}

// BuildMesh builds c's mesh from scratch. Neighbour solidity is read from src
// in world coordinates so faces against other loaded chunks are culled and
// faces against unloaded space are kept.
func BuildMesh(src VoxelSource, c *world.Chunk) *Mesh {
	defer profiling.Track("meshing.BuildMesh")()
	m := &Mesh{}
	if c == nil {
		return m
	}

	size, height := c.Size(), c.Height()
	for x := 0; x < size; x++ {
		for y := 0; y < height; y++ {
			for z := 0; z < size; z++ {
				if !c.LocalVoxel(x, y, z).IsSolid() {
					continue
				}
				wx, wy, wz := c.ToWorld(x, y, z)
				for f := range faceTable {
					n := faceTable[f].normal
					if !src.IsSolid(wx+n[0], wy+n[1], wz+n[2]) {
						m.addFace(Face(f), x, y, z)
					}
				}
			}
		}
	}
	return m
}
