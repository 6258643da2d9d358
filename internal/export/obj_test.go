package export

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/klauspost/compress/zstd"

	"hippocraft/internal/meshing"
	"hippocraft/internal/world"
)

func quadMesh() *meshing.Mesh {
	return &meshing.Mesh{
		Vertices: []mgl32.Vec3{{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}},
		Indices:  []uint32{0, 2, 1, 0, 3, 2},
	}
}

func linesWithPrefix(s, prefix string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if strings.HasPrefix(l, prefix) {
			out = append(out, l)
		}
	}
	return out
}

func TestOBJWriterEncode(t *testing.T) {
	o := NewOBJWriter()
	o.Attach(world.ChunkCoord{X: 1, Z: 0}, mgl32.Vec3{16, 0, 0}, quadMesh())
	o.Attach(world.ChunkCoord{X: 0, Z: 0}, mgl32.Vec3{0, 0, 0}, quadMesh())

	var buf bytes.Buffer
	if err := o.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	out := buf.String()

	objects := linesWithPrefix(out, "o ")
	if len(objects) != 2 || objects[0] != "o chunk_0_0" || objects[1] != "o chunk_1_0" {
		t.Fatalf("objects: got %v", objects)
	}
	verts := linesWithPrefix(out, "v ")
	if len(verts) != 8 {
		t.Fatalf("vertex lines: got %d, want 8", len(verts))
	}
	if verts[4] != "v 16 1 0" {
		t.Fatalf("second chunk vertex not offset by origin: %q", verts[4])
	}
	faces := linesWithPrefix(out, "f ")
	if len(faces) != 4 {
		t.Fatalf("face lines: got %d, want 4", len(faces))
	}
	if faces[0] != "f 1 3 2" || faces[2] != "f 5 7 6" {
		t.Fatalf("face indices: got %q and %q", faces[0], faces[2])
	}
}

func TestOBJWriterAttachReplacesAndDetachRemoves(t *testing.T) {
	o := NewOBJWriter()
	c := world.ChunkCoord{X: 2, Z: -3}
	o.Attach(c, mgl32.Vec3{}, quadMesh())
	o.Attach(c, mgl32.Vec3{}, &meshing.Mesh{})
	if o.Len() != 1 {
		t.Fatalf("len after re-attach: got %d, want 1", o.Len())
	}

	var buf bytes.Buffer
	if err := o.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if n := len(linesWithPrefix(buf.String(), "v ")); n != 0 {
		t.Fatalf("replaced mesh still written: %d vertices", n)
	}

	o.Detach(c)
	if o.Len() != 0 {
		t.Fatalf("len after detach: got %d, want 0", o.Len())
	}
}

func TestOBJWriterWriteFile(t *testing.T) {
	o := NewOBJWriter()
	o.Attach(world.ChunkCoord{}, mgl32.Vec3{}, quadMesh())

	var want bytes.Buffer
	if err := o.Encode(&want); err != nil {
		t.Fatalf("encode: %v", err)
	}

	dir := t.TempDir()
	plain := filepath.Join(dir, "mesh.obj")
	if err := o.WriteFile(plain); err != nil {
		t.Fatalf("write plain: %v", err)
	}
	got, err := os.ReadFile(plain)
	if err != nil {
		t.Fatalf("read plain: %v", err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Fatalf("plain file differs from encoded output")
	}

	packed := filepath.Join(dir, "mesh.obj.zst")
	if err := o.WriteFile(packed); err != nil {
		t.Fatalf("write zst: %v", err)
	}
	f, err := os.Open(packed)
	if err != nil {
		t.Fatalf("open zst: %v", err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer dec.Close()
	got, err = io.ReadAll(dec)
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if !bytes.Equal(got, want.Bytes()) {
		t.Fatalf("decompressed file differs from encoded output")
	}
}

func TestOBJWriterAsBuilderSink(t *testing.T) {
	w, _ := newTestWorld(t)
	o := NewOBJWriter()
	b := meshing.NewBuilder(w, o)
	l := world.NewLoader(w, 1, b, nil)

	res := l.Update(mgl32.Vec3{0, 0, 0})
	if len(res.Created) != 9 {
		t.Fatalf("created: got %d, want 9", len(res.Created))
	}
	if w.Len() != 1 || o.Len() != w.Len() {
		t.Fatalf("sink holds %d meshes, world holds %d chunks", o.Len(), w.Len())
	}
}
