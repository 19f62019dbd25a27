// Command geovox generates a region of terrain around the origin and stores
// it in a world directory, exercising the full generation pipeline.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/biome"
	"github.com/geovox/geovox/world/block"
	"github.com/geovox/geovox/world/decorator"
	"github.com/geovox/geovox/world/generator/multinoise"
	"github.com/geovox/geovox/world/save"
	"github.com/pelletier/go-toml"
)

type config struct {
	Seed    int64  `toml:"seed"`
	Radius  int32  `toml:"radius"`
	Workers int    `toml:"workers"`
	World   string `toml:"world"`
}

func defaultConfig() config {
	return config{Seed: 42, Radius: 8, World: "world"}
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	path := flag.String("config", "config.toml", "path to the generation config")
	flag.Parse()

	conf, err := readConfig(*path)
	if err != nil {
		log.Error("read config", "error", err)
		os.Exit(1)
	}
	if err := run(log, conf); err != nil {
		log.Error("generate", "error", err)
		os.Exit(1)
	}
}

// readConfig reads the TOML config at path, writing a default one first if
// none exists.
func readConfig(path string) (config, error) {
	conf := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		out, err := toml.Marshal(conf)
		if err != nil {
			return conf, fmt.Errorf("encode default config: %w", err)
		}
		return conf, os.WriteFile(path, out, 0644)
	} else if err != nil {
		return conf, err
	}
	if err := toml.Unmarshal(data, &conf); err != nil {
		return conf, fmt.Errorf("decode config: %w", err)
	}
	return conf, nil
}

func run(log *slog.Logger, conf config) error {
	biomes := world.NewRegistry[biome.Definition]()
	if err := biome.RegisterBuiltins(biomes); err != nil {
		return err
	}
	blocks := world.NewRegistry[block.Definition]()
	if err := block.RegisterBuiltins(blocks); err != nil {
		return err
	}
	decorators := world.NewRegistry[decorator.Definition]()
	if err := decorator.RegisterBuiltins(decorators); err != nil {
		return err
	}

	gen, err := multinoise.New(multinoise.Config{
		Seed:       conf.Seed,
		Biomes:     biomes,
		Blocks:     blocks,
		Decorators: decorators,
		Log:        log,
	})
	if err != nil {
		return err
	}

	provider, err := save.Open(conf.World, "geovox", conf.Seed)
	if err != nil {
		return err
	}
	defer provider.Close()

	var positions []world.ChunkPos
	for x := -conf.Radius; x <= conf.Radius; x++ {
		for z := -conf.Radius; z <= conf.Radius; z++ {
			// Terrain heights stay within one chunk of sea level, so one
			// layer below and one above the origin covers the surface.
			for y := int32(-1); y <= 1; y++ {
				positions = append(positions, world.ChunkPos{x, y, z})
			}
		}
	}

	workers := conf.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	queue := make(chan world.ChunkPos)
	errs := make(chan error, workers)
	var failed atomic.Bool
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pos := range queue {
				if failed.Load() {
					continue
				}
				c, err := gen.GenerateChunk(pos, nil)
				if err == nil {
					err = provider.PutChunk(pos, c)
				}
				if err != nil {
					failed.Store(true)
					errs <- err
				}
			}
		}()
	}
	for _, pos := range positions {
		queue <- pos
	}
	close(queue)
	wg.Wait()

	select {
	case err := <-errs:
		return err
	default:
	}
	log.Info("region generated",
		"seed", conf.Seed,
		"chunks", len(positions),
		"workers", workers,
		"world", conf.World,
		"took", time.Since(start).Round(time.Millisecond),
	)
	return nil
}
