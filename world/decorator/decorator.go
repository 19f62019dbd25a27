// Package decorator holds the declarative definitions of placeable features
// (trees and the like), distinct from terrain blocks: each definition pairs a
// count source deciding how many instances a spatial group gets with a placer
// writing one instance's blocks.
package decorator

import (
	"math"

	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/biome"
	"github.com/geovox/geovox/world/block"
	"github.com/geovox/geovox/world/chunk"
	"github.com/geovox/geovox/world/generator/prand"
)

// Definition describes one decorator type.
type Definition struct {
	// Count draws the number of instances for one group. A nil Count never
	// places anything.
	Count CountSource
	// Placer writes one instance's blocks.
	Placer Placer
	// Radius is the placement radius in blocks around a group's reference
	// point; candidate positions further away are discarded.
	Radius int32
}

// Registry maps decorator names and ids to definitions.
type Registry = world.Registry[Definition]

// Entry describes one feature instance to place: a decorator id and the
// absolute position of its anchor block.
type Entry struct {
	ID  uint32
	Pos world.BlockPos
}

// CountSource draws the number of feature instances for one group from the
// group's blended climate values and random stream.
type CountSource interface {
	Count(ctx *biome.Context, elevation, temperature, moisture float64, r *prand.Stream) int
}

// ClimateCount scales a base count by moisture and cuts off below a minimum
// elevation, so features thin out towards dry or submerged terrain.
type ClimateCount struct {
	Base         int
	PerMoisture  float64
	Max          int
	MinElevation float64
}

func (c ClimateCount) Count(_ *biome.Context, elevation, _, moisture float64, r *prand.Stream) int {
	if elevation < c.MinElevation {
		return 0
	}
	n := c.Base + int(math.Floor(moisture*c.PerMoisture))
	if n > c.Max {
		n = c.Max
	}
	if n <= 0 {
		return 0
	}
	// Thin the count stochastically so group boundaries are not uniform.
	return int(r.Int32N(int32(n) + 1))
}

// Placer writes one feature instance into chunk storage. Placers write only
// into empty blocks and only inside the chunk being generated: positions
// already occupied or outside the chunk are skipped silently, so decorators
// compose without crashing into each other and features straddling a chunk
// boundary are completed by the neighbour's own generation pass.
type Placer interface {
	// Bind resolves the block names the placer refers to. A missing name is
	// a registry setup defect and aborts generator construction.
	Bind(blocks *block.Registry) error
	// Place writes the instance anchored at pos into s, clipped to the chunk
	// at chunkPos.
	Place(s *chunk.PaletteStorage, chunkPos world.ChunkPos, pos world.BlockPos, r *prand.Stream)
}
