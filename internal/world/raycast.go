package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"hippocraft/internal/profiling"
)

const raycastStep = float32(0.02)

// RaycastHit stores the result of a Raycast.
type RaycastHit struct {
	Voxel    [3]int // first solid voxel along the ray
	Previous [3]int // last empty voxel before it
	Distance float32
	Hit      bool
}

// Raycast marches from start along dir up to maxDist and reports the first
// solid voxel. Voxel (x, y, z) occupies [x, x+1) on every axis. Chunks that
// are not loaded read as empty.
func (w *World) Raycast(start, dir mgl32.Vec3, maxDist float32) RaycastHit {
	defer profiling.Track("world.Raycast")()
	if dir.Len() == 0 {
		return RaycastHit{}
	}
	dir = dir.Normalize()
	steps := int(maxDist / raycastStep)

	prev := voxelAt(start)
	for i := 0; i <= steps; i++ {
		dist := float32(i) * raycastStep
		v := voxelAt(start.Add(dir.Mul(dist)))
		if w.IsSolid(v[0], v[1], v[2]) {
			return RaycastHit{Voxel: v, Previous: prev, Distance: dist, Hit: true}
		}
		prev = v
	}
	return RaycastHit{}
}

// SurfaceY probes straight down from the top of the world at column (x, z)
// and returns the y of the highest solid voxel, or -1 when the column is
// empty or not loaded.
func (w *World) SurfaceY(x, z int) int {
	start := mgl32.Vec3{float32(x) + 0.5, float32(w.chunkHeight) - 0.5, float32(z) + 0.5}
	hit := w.Raycast(start, mgl32.Vec3{0, -1, 0}, float32(w.chunkHeight))
	if !hit.Hit {
		return -1
	}
	return hit.Voxel[1]
}

func voxelAt(p mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(p.X()))),
		int(math.Floor(float64(p.Y()))),
		int(math.Floor(float64(p.Z()))),
	}
}
