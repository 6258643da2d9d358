package world

import (
	"testing"

	"hippocraft/internal/config"
	"hippocraft/internal/terrain"
)

// testConfig keeps chunks small so full lifecycle passes stay cheap.
func testConfig() *config.Config {
	return &config.Config{
		Seed:  "world-test",
		Chunk: config.ChunkConfig{Size: 8, Height: 32},
		Terrain: config.TerrainConfig{
			TileSize:    16,
			NoiseDomain: 16,
			GroundLevel: 2,
			BaseWeight:  0.5,
			Octaves:     []config.Octave{{Scale: 2, Weight: 0.25}, {Scale: 4, Weight: 0.25}},
		},
		LoadRange: 2,
	}
}

func newTestWorld(t testing.TB, cfg *config.Config) (*World, *terrain.Generator) {
	t.Helper()
	gen, err := terrain.New(cfg.Seed, cfg.Terrain, nil)
	if err != nil {
		t.Fatalf("terrain: %v", err)
	}
	w, err := New(cfg, gen, nil)
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return w, gen
}
