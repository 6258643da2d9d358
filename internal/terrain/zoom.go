package terrain

import (
	"hippocraft/internal/mathx"
)

// Zoom upsamples the noise of a coarser tile onto tc. scale must be a power
// of two no larger than the tile size; scale 1 is the tile's own noise.
//
// The coarse tile owning tc is (floor(tx/scale), floor(tz/scale)). Each
// coarse cell covers scale×scale output cells and output values are the
// bilinear blend of the four surrounding coarse samples.
func (g *Generator) Zoom(tc TileCoord, scale int) *Grid {
	if scale == 1 {
		return g.Noise(tc)
	}
	key := zoomKey{tile: tc, scale: scale}
	return load(g, g.zoom, key, scaleKey(tc, scale), &g.stats.ZoomFields, func() *Grid {
		return g.zoomGrid(tc, scale)
	})
}

// coarseSampler reads coarse noise indices in [0, 2*size) on both axes: the
// upper half maps (mod size) onto the next coarse tile along that axis.
type coarseSampler struct {
	size  int
	tiles [2][2]*Grid
}

func (s *coarseSampler) at(ix, iz int) int {
	return s.tiles[ix/s.size][iz/s.size].At(mathx.Mod(ix, s.size), mathx.Mod(iz, s.size))
}

func (g *Generator) zoomGrid(tc TileCoord, scale int) *Grid {
	size := g.size
	span := size / scale
	coarse := TileCoord{X: mathx.FloorDiv(tc.X, scale), Z: mathx.FloorDiv(tc.Z, scale)}
	offX := mathx.Mod(tc.X, scale) * span
	offZ := mathx.Mod(tc.Z, scale) * span

	// Resolve every coarse tile this output reads before sampling. The
	// neighbours are only needed when the sample window touches the far edge.
	s := &coarseSampler{size: size}
	s.tiles[0][0] = g.Noise(coarse)
	needX := offX+span == size
	needZ := offZ+span == size
	if needX {
		s.tiles[1][0] = g.Noise(TileCoord{X: coarse.X + 1, Z: coarse.Z})
	}
	if needZ {
		s.tiles[0][1] = g.Noise(TileCoord{X: coarse.X, Z: coarse.Z + 1})
	}
	if needX && needZ {
		s.tiles[1][1] = g.Noise(TileCoord{X: coarse.X + 1, Z: coarse.Z + 1})
	}

	out := NewGrid(size)
	fscale := float64(scale)
	for x := 0; x < size; x++ {
		zoomX1 := x/scale + offX
		zoomX2 := zoomX1 + 1
		tx := float64(x%scale) / fscale
		for z := 0; z < size; z++ {
			zoomZ1 := z/scale + offZ
			zoomZ2 := zoomZ1 + 1
			tz := float64(z%scale) / fscale

			interpX1 := mathx.Lerp(float64(s.at(zoomX1, zoomZ1)), float64(s.at(zoomX2, zoomZ1)), tx)
			interpX2 := mathx.Lerp(float64(s.at(zoomX1, zoomZ2)), float64(s.at(zoomX2, zoomZ2)), tx)
			out.Set(x, z, int(mathx.Lerp(interpX1, interpX2, tz)))
		}
	}
	return out
}
