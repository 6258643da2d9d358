package terrain

import (
	"fmt"
	"strconv"
)

// TileCoord identifies one square noise/height tile. It is independent from
// chunk coordinates.
type TileCoord struct {
	X, Z int
}

func (t TileCoord) String() string {
	return strconv.Itoa(t.X) + "." + strconv.Itoa(t.Z)
}

// Grid is a square, dense 2D array of integers indexed [x][z].
// Grids handed out by a Generator are shared cache entries; treat them as read-only.
type Grid struct {
	size  int
	cells []int
}

// NewGrid allocates a zeroed size×size grid.
func NewGrid(size int) *Grid {
	return &Grid{size: size, cells: make([]int, size*size)}
}

// Size returns the edge length.
func (g *Grid) Size() int { return g.size }

// At returns the value at (x, z). Coordinates must be in [0, Size).
func (g *Grid) At(x, z int) int {
	return g.cells[x*g.size+z]
}

// Set writes the value at (x, z).
func (g *Grid) Set(x, z, v int) {
	g.cells[x*g.size+z] = v
}

// Equal reports whether both grids hold the same values.
func (g *Grid) Equal(o *Grid) bool {
	if g.size != o.size {
		return false
	}
	for i, v := range g.cells {
		if o.cells[i] != v {
			return false
		}
	}
	return true
}

// addWeighted accumulates another grid scaled by weight, truncating each
// contribution to an integer before it is added.
func (g *Grid) addWeighted(src *Grid, weight float64) {
	if g.size != src.size {
		panic(fmt.Sprintf("terrain: grid size mismatch %d != %d", g.size, src.size))
	}
	for i, v := range src.cells {
		g.cells[i] += int(float64(v) * weight)
	}
}
