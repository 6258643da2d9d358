package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure so callers can refuse to
// start with errors.Is.
var ErrInvalid = errors.New("invalid configuration")

// Config holds every constant the terrain core needs. It is fixed once
// loaded; nothing in the core mutates it.
type Config struct {
	Seed    string        `yaml:"seed"`
	Chunk   ChunkConfig   `yaml:"chunk"`
	Terrain TerrainConfig `yaml:"terrain"`
	// LoadRange is the chunk distance kept around the reference position.
	LoadRange int `yaml:"load_range"`
}

// ChunkConfig describes voxel chunk dimensions.
type ChunkConfig struct {
	Size   int `yaml:"size"`   // edge length on X and Z
	Height int `yaml:"height"` // voxels on Y
}

// Default returns the configuration the original world shipped with.
func Default() *Config {
	return &Config{
		Seed: "hippocraft",
		Chunk: ChunkConfig{
			Size:   16,
			Height: 128,
		},
		Terrain:   DefaultTerrain(),
		LoadRange: 6,
	}
}

// Load reads a YAML file over the defaults. An empty path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations that would produce silently wrong terrain.
func (c *Config) Validate() error {
	if c.Chunk.Size <= 0 || c.Chunk.Height <= 0 {
		return fmt.Errorf("%w: chunk dimensions must be positive", ErrInvalid)
	}
	if err := c.Terrain.validate(); err != nil {
		return err
	}
	if c.Terrain.TileSize < c.Chunk.Size || c.Terrain.TileSize%c.Chunk.Size != 0 {
		return fmt.Errorf("%w: terrain.tile_size %d must be a multiple of chunk.size %d",
			ErrInvalid, c.Terrain.TileSize, c.Chunk.Size)
	}
	if !IsPowerOfTwo(c.Terrain.TileSize / c.Chunk.Size) {
		return fmt.Errorf("%w: terrain.tile_size / chunk.size must be a power of two", ErrInvalid)
	}
	if c.LoadRange < 1 {
		return fmt.Errorf("%w: load_range must be at least 1", ErrInvalid)
	}
	return nil
}

// ChunksPerTile is how many chunks span one terrain tile along an axis.
func (c *Config) ChunksPerTile() int {
	return c.Terrain.TileSize / c.Chunk.Size
}
