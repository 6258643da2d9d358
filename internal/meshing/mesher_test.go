package meshing

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"hippocraft/internal/config"
	"hippocraft/internal/terrain"
	"hippocraft/internal/world"
)

func newEmptyWorld(t testing.TB) *world.World {
	t.Helper()
	cfg := config.Default()
	gen, err := terrain.New(cfg.Seed, cfg.Terrain, nil)
	if err != nil {
		t.Fatalf("terrain: %v", err)
	}
	w, err := world.New(cfg, gen, nil)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return w
}

// addEmptyChunk installs an all-air chunk so tests control every voxel.
func addEmptyChunk(t testing.TB, w *world.World, x, z int) *world.Chunk {
	t.Helper()
	c := world.NewChunk(world.ChunkCoord{X: x, Z: z}, w.ChunkSize(), w.ChunkHeight())
	if !w.AddChunk(c) {
		t.Fatalf("chunk %d,%d already present", x, z)
	}
	return c
}

func TestSingleVoxelMesh(t *testing.T) {
	w := newEmptyWorld(t)
	c := addEmptyChunk(t, w, 0, 0)
	c.SetLocalVoxel(5, 5, 5, world.VoxelSolid)

	m := BuildMesh(w, c)
	if m.FaceCount() != 6 {
		t.Fatalf("faces: got %d, want 6", m.FaceCount())
	}
	if len(m.Vertices) != 24 {
		t.Fatalf("vertices: got %d, want 24", len(m.Vertices))
	}
	if m.TriangleCount() != 12 {
		t.Fatalf("triangles: got %d, want 12", m.TriangleCount())
	}
}

func TestSingleVoxelFaceLayout(t *testing.T) {
	w := newEmptyWorld(t)
	c := addEmptyChunk(t, w, 0, 0)
	c.SetLocalVoxel(1, 2, 3, world.VoxelSolid)

	m := BuildMesh(w, c)
	want := [6][4]mgl32.Vec3{
		{{2, 2, 3}, {2, 2, 4}, {2, 3, 4}, {2, 3, 3}}, // +X
		{{1, 2, 4}, {1, 2, 3}, {1, 3, 3}, {1, 3, 4}}, // -X
		{{1, 3, 3}, {2, 3, 3}, {2, 3, 4}, {1, 3, 4}}, // +Y
		{{1, 2, 4}, {2, 2, 4}, {2, 2, 3}, {1, 2, 3}}, // -Y
		{{2, 2, 4}, {1, 2, 4}, {1, 3, 4}, {2, 3, 4}}, // +Z
		{{1, 2, 3}, {2, 2, 3}, {2, 3, 3}, {1, 3, 3}}, // -Z
	}
	for f := range want {
		for i, v := range want[f] {
			if got := m.Vertices[f*4+i]; got != v {
				t.Fatalf("face %v vertex %d: got %v, want %v", Face(f), i, got, v)
			}
		}
		base := uint32(f * 4)
		tri := m.Indices[f*6 : f*6+6]
		wantTri := []uint32{base, base + 2, base + 1, base, base + 3, base + 2}
		for i := range tri {
			if tri[i] != wantTri[i] {
				t.Fatalf("face %v indices: got %v, want %v", Face(f), tri, wantTri)
			}
		}
	}
}

// Every triangle must face away from the voxel it belongs to.
func TestTriangleWindingOutward(t *testing.T) {
	w := newEmptyWorld(t)
	c := addEmptyChunk(t, w, 0, 0)
	c.SetLocalVoxel(0, 0, 0, world.VoxelSolid)

	m := BuildMesh(w, c)
	for tri := 0; tri < m.TriangleCount(); tri++ {
		p0 := m.Vertices[m.Indices[tri*3]]
		p1 := m.Vertices[m.Indices[tri*3+1]]
		p2 := m.Vertices[m.Indices[tri*3+2]]
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		fn := Face(tri / 2).Normal()
		want := mgl32.Vec3{float32(fn[0]), float32(fn[1]), float32(fn[2])}
		if !n.ApproxEqual(want) {
			t.Fatalf("triangle %d (%v): normal %v, want %v", tri, Face(tri/2), n, want)
		}
	}
}

func TestAdjacentVoxelsShareNoFace(t *testing.T) {
	w := newEmptyWorld(t)
	c := addEmptyChunk(t, w, 0, 0)
	c.SetLocalVoxel(3, 3, 3, world.VoxelSolid)
	c.SetLocalVoxel(4, 3, 3, world.VoxelSolid)

	m := BuildMesh(w, c)
	if m.FaceCount() != 10 {
		t.Fatalf("faces: got %d, want 10", m.FaceCount())
	}
}

func TestCrossChunkFaceCulling(t *testing.T) {
	w := newEmptyWorld(t)
	size := w.ChunkSize()
	left := addEmptyChunk(t, w, 0, 0)
	right := addEmptyChunk(t, w, 1, 0)
	left.SetLocalVoxel(size-1, 0, 0, world.VoxelSolid)
	right.SetLocalVoxel(0, 0, 0, world.VoxelSolid)

	if got := BuildMesh(w, left).FaceCount(); got != 5 {
		t.Fatalf("left chunk faces: got %d, want 5", got)
	}
	if got := BuildMesh(w, right).FaceCount(); got != 5 {
		t.Fatalf("right chunk faces: got %d, want 5", got)
	}
}

// Neighbours in unloaded chunks are not solid, so border faces are emitted.
func TestUnloadedNeighbourKeepsFace(t *testing.T) {
	w := newEmptyWorld(t)
	c := addEmptyChunk(t, w, 0, 0)
	size := w.ChunkSize()
	c.SetLocalVoxel(0, 0, 0, world.VoxelSolid)
	c.SetLocalVoxel(1, 0, 0, world.VoxelSolid)
	c.SetLocalVoxel(size-1, 0, size-1, world.VoxelSolid)

	// two touching voxels (10) plus one isolated corner voxel (6)
	if got := BuildMesh(w, c).FaceCount(); got != 16 {
		t.Fatalf("faces: got %d, want 16", got)
	}
}

func TestFullChunkSurroundedByLoadedChunks(t *testing.T) {
	w := newEmptyWorld(t)
	size := w.ChunkSize()
	fill := func(c *world.Chunk) {
		for x := 0; x < size; x++ {
			for y := 0; y < 4; y++ {
				for z := 0; z < size; z++ {
					c.SetLocalVoxel(x, y, z, world.VoxelSolid)
				}
			}
		}
	}
	var center *world.Chunk
	for x := -1; x <= 1; x++ {
		for z := -1; z <= 1; z++ {
			c := addEmptyChunk(t, w, x, z)
			fill(c)
			if x == 0 && z == 0 {
				center = c
			}
		}
	}

	// only the top and bottom layers are exposed
	if got, want := BuildMesh(w, center).FaceCount(), 2*size*size; got != want {
		t.Fatalf("faces: got %d, want %d", got, want)
	}
}

func TestBuildMeshRebuildsFromScratch(t *testing.T) {
	w := newEmptyWorld(t)
	c := addEmptyChunk(t, w, 0, 0)
	c.SetLocalVoxel(2, 2, 2, world.VoxelSolid)
	first := BuildMesh(w, c)

	c.SetLocalVoxel(2, 2, 2, world.VoxelAir)
	second := BuildMesh(w, c)
	if second.FaceCount() != 0 {
		t.Fatalf("rebuilt mesh kept %d faces", second.FaceCount())
	}
	if first.FaceCount() != 6 {
		t.Fatalf("earlier mesh was modified")
	}
}

func TestBuildMeshNilChunk(t *testing.T) {
	if m := BuildMesh(newEmptyWorld(t), nil); m.FaceCount() != 0 {
		t.Fatalf("nil chunk produced faces")
	}
}

func BenchmarkBuildMeshGeneratedChunk(b *testing.B) {
	w := newEmptyWorld(b)
	for x := -1; x <= 1; x++ {
		for z := -1; z <= 1; z++ {
			w.GetOrCreateChunk(world.ChunkCoord{X: x, Z: z})
		}
	}
	c, _ := w.Chunk(world.ChunkCoord{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = BuildMesh(w, c)
	}
}
