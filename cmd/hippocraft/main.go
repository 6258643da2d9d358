package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"

	"hippocraft/internal/config"
	"hippocraft/internal/export"
	"hippocraft/internal/meshing"
	"hippocraft/internal/profiling"
	"hippocraft/internal/terrain"
	"hippocraft/internal/world"
)

type options struct {
	configPath   string
	path         string
	objPath      string
	previewPath  string
	previewTiles int
	scale        int
	verbose      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML world configuration (defaults when empty)")
	flag.StringVar(&opts.path, "path", "0,0", "reference positions to walk, as \"x,z;x,z;...\"")
	flag.StringVar(&opts.objPath, "obj", "", "write loaded chunk meshes to this OBJ file (.zst compresses)")
	flag.StringVar(&opts.previewPath, "preview", "", "write a terrain heightmap PNG around the last position")
	flag.IntVar(&opts.previewTiles, "preview-tiles", 2, "tiles per side in the heightmap preview")
	flag.IntVar(&opts.scale, "scale", 2, "pixels per terrain cell in the heightmap preview")
	flag.BoolVar(&opts.verbose, "v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := run(opts, log); err != nil {
		log.Error("hippocraft failed", "error", err)
		if errors.Is(err, config.ErrInvalid) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(opts options, log *slog.Logger) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	points, err := parsePath(opts.path)
	if err != nil {
		return err
	}

	gen, err := terrain.New(cfg.Seed, cfg.Terrain, log)
	if err != nil {
		return err
	}
	w, err := world.New(cfg, gen, log)
	if err != nil {
		return err
	}
	sink := export.NewOBJWriter()
	builder := meshing.NewBuilder(w, sink)
	loader := world.NewLoader(w, cfg.LoadRange, builder, log)

	log.Info("world ready",
		"seed", cfg.Seed,
		"chunk_size", cfg.Chunk.Size,
		"chunk_height", cfg.Chunk.Height,
		"tile_size", cfg.Terrain.TileSize,
		"load_range", cfg.LoadRange)

	for _, p := range points {
		res := loader.Update(p)
		log.Info("position",
			"x", p.X(), "z", p.Z(),
			"surface_y", w.SurfaceY(int(math.Floor(float64(p.X()))), int(math.Floor(float64(p.Z())))),
			"center", res.Center.String(),
			"changed", res.Changed,
			"created", len(res.Created),
			"evicted", len(res.Evicted),
			"loaded", w.Len())
	}

	st := gen.Stats()
	log.Info("terrain cache",
		"noise_fields", st.NoiseFields,
		"zoom_fields", st.ZoomFields,
		"terrain_fields", st.TerrainFields,
		"meshes_built", builder.Builds())

	if opts.objPath != "" {
		if err := sink.WriteFile(opts.objPath); err != nil {
			return fmt.Errorf("export obj: %w", err)
		}
		log.Info("mesh written", "path", opts.objPath, "chunks", sink.Len())
	}

	if opts.previewPath != "" {
		last := points[len(points)-1]
		tile, _, _ := w.TileFor(world.ChunkAt(last, cfg.Chunk.Size))
		origin := terrain.TileCoord{X: tile.X - opts.previewTiles/2, Z: tile.Z - opts.previewTiles/2}
		if err := export.HeightmapPNG(opts.previewPath, gen, origin, opts.previewTiles, opts.scale); err != nil {
			return fmt.Errorf("export preview: %w", err)
		}
		log.Info("preview written", "path", opts.previewPath, "origin", origin.String())
	}

	log.Info("profile", "top", profiling.TopN(8))
	return nil
}
