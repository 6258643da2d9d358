// Package export provides file-backed mesh sinks and terrain previews for
// inspecting generated worlds outside a renderer.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"

	"hippocraft/internal/meshing"
	"hippocraft/internal/world"
)

type objEntry struct {
	origin mgl32.Vec3
	mesh   *meshing.Mesh
}

// OBJWriter is a mesh sink that keeps the latest mesh of every attached chunk
// and writes them as one Wavefront OBJ file.
type OBJWriter struct {
	mu     sync.Mutex
	meshes map[world.ChunkCoord]objEntry
}

// NewOBJWriter creates an empty sink.
func NewOBJWriter() *OBJWriter {
	return &OBJWriter{meshes: make(map[world.ChunkCoord]objEntry)}
}

// Attach stores or replaces the mesh for coord.
func (o *OBJWriter) Attach(coord world.ChunkCoord, origin mgl32.Vec3, m *meshing.Mesh) {
	o.mu.Lock()
	o.meshes[coord] = objEntry{origin: origin, mesh: m}
	o.mu.Unlock()
}

// Detach forgets the mesh for coord.
func (o *OBJWriter) Detach(coord world.ChunkCoord) {
	o.mu.Lock()
	delete(o.meshes, coord)
	o.mu.Unlock()
}

// Len returns the number of attached chunk meshes.
func (o *OBJWriter) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.meshes)
}

// Encode writes every attached mesh in world space, one object per chunk,
// ordered by chunk coordinate.
func (o *OBJWriter) Encode(w io.Writer) error {
	o.mu.Lock()
	coords := make([]world.ChunkCoord, 0, len(o.meshes))
	for c := range o.meshes {
		coords = append(coords, c)
	}
	entries := make(map[world.ChunkCoord]objEntry, len(o.meshes))
	for c, e := range o.meshes {
		entries[c] = e
	}
	o.mu.Unlock()

	slices.SortFunc(coords, func(a, b world.ChunkCoord) int {
		if a.X != b.X {
			return a.X - b.X
		}
		return a.Z - b.Z
	})

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# hippocraft chunks: %d\n", len(coords))
	base := 1
	for _, c := range coords {
		e := entries[c]
		fmt.Fprintf(bw, "o chunk_%d_%d\n", c.X, c.Z)
		for _, v := range e.mesh.Vertices {
			p := v.Add(e.origin)
			fmt.Fprintf(bw, "v %g %g %g\n", p.X(), p.Y(), p.Z())
		}
		idx := e.mesh.Indices
		for i := 0; i+2 < len(idx); i += 3 {
			fmt.Fprintf(bw, "f %d %d %d\n", base+int(idx[i]), base+int(idx[i+1]), base+int(idx[i+2]))
		}
		base += len(e.mesh.Vertices)
	}
	return bw.Flush()
}

// WriteFile encodes to path, compressing with zstd when path ends in ".zst".
func (o *OBJWriter) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create obj: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close obj: %w", cerr)
		}
	}()

	if !strings.HasSuffix(path, ".zst") {
		if err := o.Encode(f); err != nil {
			return fmt.Errorf("encode obj: %w", err)
		}
		return nil
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("zstd writer: %w", err)
	}
	if err := o.Encode(enc); err != nil {
		_ = enc.Close()
		return fmt.Errorf("encode obj: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("flush zstd: %w", err)
	}
	return nil
}

var _ meshing.Sink = (*OBJWriter)(nil)
