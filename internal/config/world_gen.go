package config

import "fmt"

// Octave is one weighted, zoomed contribution to the height field.
type Octave struct {
	Scale  int     `yaml:"scale"`
	Weight float64 `yaml:"weight"`
}

// TerrainConfig holds world generation settings.
type TerrainConfig struct {
	TileSize    int      `yaml:"tile_size"`    // edge of one noise tile, power of two
	NoiseDomain int      `yaml:"noise_domain"` // noise values fall in [0, NoiseDomain)
	GroundLevel int      `yaml:"ground_level"` // baseline added to every column
	BaseWeight  float64  `yaml:"base_weight"`  // weight of the unzoomed noise
	Octaves     []Octave `yaml:"octaves"`
}

// DefaultTerrain mirrors the original generator's octave table.
func DefaultTerrain() TerrainConfig {
	return TerrainConfig{
		TileSize:    128,
		NoiseDomain: 128,
		GroundLevel: 4,
		BaseWeight:  0.025,
		Octaves: []Octave{
			{Scale: 2, Weight: 0.075},
			{Scale: 4, Weight: 0.2},
			{Scale: 8, Weight: 0.3},
			{Scale: 16, Weight: 0.4},
		},
	}
}

// Validate checks the terrain settings on their own, without chunk sizes.
func (t TerrainConfig) Validate() error {
	return t.validate()
}

func (t TerrainConfig) validate() error {
	if !IsPowerOfTwo(t.TileSize) {
		return fmt.Errorf("%w: terrain.tile_size %d is not a power of two", ErrInvalid, t.TileSize)
	}
	if t.NoiseDomain <= 0 {
		return fmt.Errorf("%w: terrain.noise_domain must be positive", ErrInvalid)
	}
	if t.GroundLevel < 0 {
		return fmt.Errorf("%w: terrain.ground_level cannot be negative", ErrInvalid)
	}
	for i, o := range t.Octaves {
		if !IsPowerOfTwo(o.Scale) {
			return fmt.Errorf("%w: terrain.octaves[%d].scale %d is not a power of two", ErrInvalid, i, o.Scale)
		}
		if o.Scale > t.TileSize {
			return fmt.Errorf("%w: terrain.octaves[%d].scale %d exceeds tile size", ErrInvalid, i, o.Scale)
		}
	}
	return nil
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
