// Package multinoise implements the standard terrain generator: a
// multi-octave noise stack drives a per-chunk Voronoi partition of biome
// cells, which are blended per column into heights and block rules and
// finally decorated with placeable features.
//
// Generation is stateless and reentrant. Each GenerateChunk call owns its
// partition and random streams; the only shared state is the read-only
// registries, so any number of chunks may generate concurrently without
// locking, at the cost of rebuilding the small local partition per chunk.
package multinoise

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/biome"
	"github.com/geovox/geovox/world/block"
	"github.com/geovox/geovox/world/chunk"
	"github.com/geovox/geovox/world/decorator"
	"github.com/geovox/geovox/world/generator/noise"
	"github.com/geovox/geovox/world/generator/prand"
	"github.com/go-gl/mathgl/mgl64"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// SeaLevel is the world sea level.
const SeaLevel = 0

// climate is an (elevation, temperature, moisture) triple in the normalized
// 0-5 range.
type climate struct {
	elevation, temperature, moisture float64
}

// Config holds the immutable inputs of a Generator.
type Config struct {
	// Seed is the 64-bit world seed.
	Seed int64
	// Biomes, Blocks and Decorators are the registries generation reads.
	// They must be fully built before New is called and must not be mutated
	// afterwards.
	Biomes     *biome.Registry
	Blocks     *block.Registry
	Decorators *decorator.Registry
	// Log is the logger biome coverage gaps are reported to. If nil, Log is
	// set to slog.Default().
	Log *slog.Logger
}

type genBiome struct {
	id  uint32
	def biome.Definition
}

// Generator is the standard multi-noise terrain generator. It is safe for
// concurrent GenerateChunk calls.
type Generator struct {
	seed int64
	log  *slog.Logger

	biomes     *biome.Registry
	blocks     *block.Registry
	decorators *decorator.Registry

	baseTerrain      *noise.Fbm
	elevationNoise   *noise.Fbm
	temperatureNoise *noise.Fbm
	moistureNoise    *noise.Fbm
	pointOffset      opensimplex.Noise

	generatable []genBiome
	voidID      uint32
	air         block.Entry
}

// New creates a generator from conf. It resolves every block name referenced
// by biome rules and decorator placers once, up front; a missing name means a
// broken registry setup and fails construction.
func New(conf Config) (*Generator, error) {
	if conf.Biomes == nil || conf.Blocks == nil || conf.Decorators == nil {
		return nil, errors.New("multinoise: all three registries must be set")
	}
	log := conf.Log
	if log == nil {
		log = slog.Default()
	}

	g := &Generator{
		seed:       conf.Seed,
		log:        log,
		biomes:     conf.Biomes,
		blocks:     conf.Blocks,
		decorators: conf.Decorators,
	}

	for id, def := range conf.Biomes.All() {
		if err := def.Rule.Bind(conf.Blocks); err != nil {
			return nil, fmt.Errorf("multinoise: bind biome %q: %w", conf.Biomes.Name(id), err)
		}
		if def.CanGenerate {
			g.generatable = append(g.generatable, genBiome{id: id, def: def})
		}
	}
	for id, def := range conf.Decorators.All() {
		if def.Placer == nil {
			continue
		}
		if err := def.Placer.Bind(conf.Blocks); err != nil {
			return nil, fmt.Errorf("multinoise: bind decorator %q: %w", conf.Decorators.Name(id), err)
		}
	}

	voidID, _, err := conf.Biomes.ByName(biome.VoidName)
	if err != nil {
		return nil, fmt.Errorf("multinoise: default biome: %w", err)
	}
	g.voidID = voidID
	airID, _, err := conf.Blocks.ByName(block.EmptyName)
	if err != nil {
		return nil, fmt.Errorf("multinoise: empty block: %w", err)
	}
	g.air = block.Entry{ID: airID}

	seedInt := uint32(conf.Seed)
	g.baseTerrain = noise.NewFbm(seedInt, -4, 1, 1, 0)
	g.elevationNoise = noise.NewFbm(wrapPow(seedInt, 1347), 1, 2, 2, 1)
	g.temperatureNoise = noise.NewFbm(wrapPow(seedInt, 2349), 1, 2, 2, 1)
	g.moistureNoise = noise.NewFbm(wrapPow(seedInt, 3243), 1, 2, 2, 1)
	g.pointOffset = opensimplex.New(int64(seedInt * 5463))

	return g, nil
}

// wrapPow is base^exp with uint32 wraparound, used to derive independent
// noise seeds from the world seed.
func wrapPow(base uint32, exp int) uint32 {
	r := uint32(1)
	for ; exp > 0; exp >>= 1 {
		if exp&1 == 1 {
			r *= base
		}
		base *= base
	}
	return r
}

// GenerateChunk generates the chunk at pos. The returned chunk is fully
// populated; on error no chunk is returned at all.
func (g *Generator) GenerateChunk(pos world.ChunkPos, extra any) (*chunk.Chunk, error) {
	origin := pos.Origin()
	stream := prand.For(g.seed, pos.X(), pos.Z())

	part, sites, err := g.buildPartition(origin)
	if err != nil {
		return nil, fmt.Errorf("multinoise: chunk %v: %w", pos, err)
	}
	for _, ci := range sites {
		if err := g.assignBiome(part, ci, stream); err != nil {
			return nil, fmt.Errorf("multinoise: chunk %v: %w", pos, err)
		}
	}

	var (
		blended [world.ChunkDim * world.ChunkDim][]biome.Entry
		heights [world.ChunkDim * world.ChunkDim]int32
	)
	for iz := int32(0); iz < world.ChunkDim; iz++ {
		for ix := int32(0); ix < world.ChunkDim; ix++ {
			i := ix + iz*world.ChunkDim
			p := mgl64.Vec2{float64(origin.X() + ix), float64(origin.Z() + iz)}
			blended[i], _ = g.findBiomesAt(p, g.voidID, part.centers)
			h, err := g.blendedHeight(p, blended[i])
			if err != nil {
				return nil, fmt.Errorf("multinoise: chunk %v: %w", pos, err)
			}
			heights[i] = int32(math.Round(h))
		}
	}

	c := chunk.New(g.air, extra)
	for iz := int32(0); iz < world.ChunkDim; iz++ {
		for ix := int32(0); ix < world.ChunkDim; ix++ {
			i := ix + iz*world.ChunkDim
			rules, err := g.orderedRules(blended[i])
			if err != nil {
				return nil, fmt.Errorf("multinoise: chunk %v: %w", pos, err)
			}
			ctx := biome.Context{
				Seed:     g.seed,
				Blocks:   c.Blocks,
				GroundY:  heights[i],
				SeaLevel: SeaLevel,
			}
			for iy := int32(0); iy < world.ChunkDim; iy++ {
				gpos := world.BlockPos{origin.X() + ix, origin.Y() + iy, origin.Z() + iz}
				for _, r := range rules {
					if e, ok := r.Apply(gpos, &ctx); ok {
						c.Blocks.Put(ix, iy, iz, e)
					}
				}
			}
		}
	}

	if err := g.decorate(c, pos, part); err != nil {
		return nil, fmt.Errorf("multinoise: chunk %v: %w", pos, err)
	}
	return c, nil
}

// orderedRules resolves a column's blended biomes and sorts their rules
// ascending by weight × block influence, ties broken by registry id. Rules
// run in that order with later results overwriting earlier ones, so the
// highest-influence biome decides every block both attempt to set.
func (g *Generator) orderedRules(blend []biome.Entry) ([]biome.RuleSource, error) {
	type scored struct {
		id    uint32
		score float64
		rule  biome.RuleSource
	}
	scoredRules := make([]scored, 0, len(blend))
	for _, e := range blend {
		def, err := g.biomes.ByID(e.ID)
		if err != nil {
			return nil, err
		}
		scoredRules = append(scoredRules, scored{
			id:    e.ID,
			score: e.Weight * def.BlockInfluence,
			rule:  def.Rule,
		})
	}
	sort.Slice(scoredRules, func(a, b int) bool {
		if scoredRules[a].score != scoredRules[b].score {
			return scoredRules[a].score < scoredRules[b].score
		}
		return scoredRules[a].id < scoredRules[b].id
	})
	rules := make([]biome.RuleSource, len(scoredRules))
	for i, s := range scoredRules {
		rules[i] = s.rule
	}
	return rules, nil
}

// blendedHeight blends the surface-noise heights of the biomes at a point,
// each normalized to [0, 1] and weighted by blend weight × blend influence.
func (g *Generator) blendedHeight(point mgl64.Vec2, blend []biome.Entry) (float64, error) {
	scale := biome.GlobalScale * biome.ScaleMod
	scaled := point.Mul(1 / scale)

	heights, weights := 0.0, 0.0
	for _, e := range blend {
		def, err := g.biomes.ByID(e.ID)
		if err != nil {
			return 0, err
		}
		h := (def.Surface.Sample(scaled, g.baseTerrain) + 1) / 2
		strength := e.Weight * def.BlendInfluence
		heights += h * strength
		weights += strength
	}
	if weights == 0 {
		return 0, nil
	}
	return heights / weights, nil
}

// climateAt samples the three climate noises at a point, remapped from the
// raw [-1.5, 1.5] band into the normalized 0-5 range.
func (g *Generator) climateAt(point mgl64.Vec2) climate {
	scale := biome.GlobalScale * biome.ScaleMod
	x, y := point.X()/scale, point.Y()/scale
	return climate{
		elevation:   remap(g.elevationNoise.Eval2(x, y)),
		temperature: remap(g.temperatureNoise.Eval2(x, y)),
		moisture:    remap(g.moistureNoise.Eval2(x, y)),
	}
}

func remap(v float64) float64 {
	return clampf((v+1.5)/3.0*5.0, 0, 5)
}

// assignBiome assigns a biome to a cell. It is idempotent: an already
// assigned cell returns immediately. Hydrology flags take precedence and
// force a fixed biome; otherwise the first generatable biome whose climate
// ranges all contain the cell's cached values wins. If none matches, a
// uniform random choice recovers the cell and the coverage gap is reported.
func (g *Generator) assignBiome(p *partition, idx int, r *prand.Stream) error {
	c := &p.centers[idx]
	if c.biome >= 0 {
		return nil
	}
	switch {
	case c.ocean, c.water:
		id, _, err := g.biomes.ByName(biome.OceanName)
		if err != nil {
			return err
		}
		c.biome = int64(id)
		return nil
	case c.coast:
		id, _, err := g.biomes.ByName(biome.BeachName)
		if err != nil {
			return err
		}
		c.biome = int64(id)
		return nil
	}
	for _, b := range g.generatable {
		if b.def.Elevation.Contains(c.climate.elevation) &&
			b.def.Temperature.Contains(c.climate.temperature) &&
			b.def.Moisture.Contains(c.climate.moisture) {
			c.biome = int64(b.id)
			return nil
		}
	}
	if len(g.generatable) == 0 {
		return errors.New("no generatable biomes registered")
	}
	pick := g.generatable[r.IntN(len(g.generatable))]
	c.biome = int64(pick.id)
	g.log.Warn("no biome matches cell climate, picking randomly",
		"point", c.point,
		"elevation", c.climate.elevation,
		"temperature", c.climate.temperature,
		"moisture", c.climate.moisture,
		"picked", g.biomes.Name(pick.id),
	)
	return nil
}
