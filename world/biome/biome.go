// Package biome holds the declarative biome definitions the terrain
// generator blends and evaluates: climate ranges deciding where a biome
// appears, a surface source shaping its terrain height and a rule source
// deciding its blocks.
package biome

import (
	"image/color"

	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/chunk"
)

// GlobalScale is the horizontal scale divisor applied when sampling climate
// noise and biome surface noise, in blocks per noise unit.
const GlobalScale = 64.0

// ScaleMod is a fine-tuning modifier applied on top of GlobalScale by the
// surface sources.
const ScaleMod = 1.0

// SnowLine is the height at or above which grassy surfaces turn snowy.
const SnowLine = 80

// Definition declares a biome. Definitions are plain data: the rule, surface
// and climate fields are all declarative objects, so a registry of
// definitions can be shared read-only between concurrent chunk generations.
type Definition struct {
	// Color is the representative color of the biome, used by map renderers.
	Color color.RGBA

	// Elevation, Temperature and Moisture are the climate ranges a cell's
	// noise values must all fall into for the biome to be picked. Values are
	// in the normalized 0-5 climate range.
	Elevation, Temperature, Moisture Range

	// Rule decides the block placed at each position of a column influenced
	// by the biome.
	Rule RuleSource
	// Surface shapes the biome's terrain height.
	Surface SurfaceSource

	// BlendInfluence weighs the biome's surface height against other biomes
	// blended at the same point.
	BlendInfluence float64
	// BlockInfluence orders rule evaluation between biomes blended at the
	// same position; the highest influence wins contested blocks.
	BlockInfluence float64

	// CanGenerate is false for biomes that only appear through external
	// passes (or as defaults), never through climate matching.
	CanGenerate bool
}

// Registry maps biome names and ids to definitions.
type Registry = world.Registry[Definition]

// Entry is one biome's weighted contribution at a blended point. Weights are
// non-negative blend contributions and need not sum to 1 across the entries
// of a point.
type Entry struct {
	ID     uint32
	Weight float64
}

// Context carries the per-column state rule sources and decorator count
// sources evaluate against.
type Context struct {
	Seed int64
	// Blocks is the storage of the chunk being generated.
	Blocks *chunk.PaletteStorage
	// GroundY is the blended terrain height of the column.
	GroundY int32
	// SeaLevel is the world sea level.
	SeaLevel int32
}
