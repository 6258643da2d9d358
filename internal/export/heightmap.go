package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/draw"

	"hippocraft/internal/profiling"
	"hippocraft/internal/terrain"
)

// RenderHeightmap draws the terrain field of a tiles×tiles block of tiles
// starting at origin as a grayscale image, brightest at the highest value.
// Image X follows world X and image Y follows world Z. Each terrain cell is
// scaled up to scale×scale pixels.
func RenderHeightmap(gen *terrain.Generator, origin terrain.TileCoord, tiles, scale int) (*image.Gray, error) {
	if tiles < 1 || scale < 1 {
		return nil, fmt.Errorf("heightmap: tiles %d and scale %d must be positive", tiles, scale)
	}
	size := gen.TileSize()
	src := image.NewGray(image.Rect(0, 0, tiles*size, tiles*size))

	lo, hi := math.MaxInt, math.MinInt
	grids := make([][]*terrain.Grid, tiles)
	for i := range grids {
		grids[i] = make([]*terrain.Grid, tiles)
		for j := range grids[i] {
			g := gen.Terrain(terrain.TileCoord{X: origin.X + i, Z: origin.Z + j})
			grids[i][j] = g
			for x := 0; x < size; x++ {
				for z := 0; z < size; z++ {
					v := g.At(x, z)
					lo = min(lo, v)
					hi = max(hi, v)
				}
			}
		}
	}

	span := max(hi-lo, 1)
	for i, col := range grids {
		for j, g := range col {
			for x := 0; x < size; x++ {
				for z := 0; z < size; z++ {
					level := (g.At(x, z) - lo) * 255 / span
					src.SetGray(i*size+x, j*size+z, color.Gray{Y: uint8(level)})
				}
			}
		}
	}

	if scale == 1 {
		return src, nil
	}
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst, nil
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close png: %w", cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// HeightmapPNG renders the terrain preview and writes it to path.
func HeightmapPNG(path string, gen *terrain.Generator, origin terrain.TileCoord, tiles, scale int) error {
	defer profiling.Track("export.HeightmapPNG")()
	img, err := RenderHeightmap(gen, origin, tiles, scale)
	if err != nil {
		return err
	}
	return WritePNG(path, img)
}
