package multinoise

import (
	"math"

	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/biome"
	"github.com/geovox/geovox/world/chunk"
	"github.com/geovox/geovox/world/decorator"
	"github.com/geovox/geovox/world/generator/prand"
	"github.com/go-gl/mathgl/mgl64"
)

// GroupSize is the edge length of a decorator group, the fixed-size spatial
// bucket decorator sampling is batched in.
const GroupSize = 16

const groupSizeHalf = GroupSize / 2

// groupAlign rounds a block coordinate down to its group origin.
func groupAlign(v int32) int32 {
	return v - ((v%GroupSize)+GroupSize)%GroupSize
}

// decorate runs every registered decorator over the groups that could reach
// into the chunk. Group randomness is keyed on (world seed, group, decorator),
// never on the chunk, so a group shared by two chunks draws identical
// features and each chunk places the clipped part that falls inside it.
func (g *Generator) decorate(c *chunk.Chunk, pos world.ChunkPos, part *partition) error {
	origin := pos.Origin()

	for id, def := range g.decorators.All() {
		if def.Count == nil || def.Placer == nil {
			continue
		}
		minX := groupAlign(origin.X() - def.Radius - GroupSize)
		maxX := groupAlign(origin.X() + world.ChunkDim - 1 + def.Radius)
		minZ := groupAlign(origin.Z() - def.Radius - GroupSize)
		maxZ := groupAlign(origin.Z() + world.ChunkDim - 1 + def.Radius)

		for gz := minZ; gz <= maxZ; gz += GroupSize {
			for gx := minX; gx <= maxX; gx += GroupSize {
				if err := g.decorateGroup(c, pos, part, id, def, gx, gz); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// decorateGroup samples one decorator over one group: a stochastic count,
// that many random offsets within the group bounds, exact-position
// deduplication and a placement-radius filter around the group's reference
// point, then one placer invocation per retained position.
func (g *Generator) decorateGroup(c *chunk.Chunk, pos world.ChunkPos, part *partition, id uint32, def decorator.Definition, gx, gz int32) error {
	refX, refZ := gx+groupSizeHalf, gz+groupSizeHalf
	ref := mgl64.Vec2{float64(refX), float64(refZ)}

	blend, cl := g.findBiomesAt(ref, g.voidID, part.centers)
	h, err := g.blendedHeight(ref, blend)
	if err != nil {
		return err
	}
	height := int32(math.Round(h))

	stream := prand.For(g.seed, gx, gz).Sub(uint64(id))
	ctx := biome.Context{
		Seed:     g.seed,
		Blocks:   c.Blocks,
		GroundY:  height,
		SeaLevel: SeaLevel,
	}
	count := def.Count.Count(&ctx, cl.elevation, cl.temperature, cl.moisture, stream)
	if count == 0 {
		return nil
	}

	entries := make([]decorator.Entry, 0, count)
	seen := make(map[[2]int32]struct{}, count)
	for i := 0; i < count; i++ {
		x := refX + stream.Range(-groupSizeHalf, groupSizeHalf-1)
		z := refZ + stream.Range(-groupSizeHalf, groupSizeHalf-1)
		if _, dup := seen[[2]int32{x, z}]; dup {
			continue
		}
		seen[[2]int32{x, z}] = struct{}{}

		dx, dz := x-refX, z-refZ
		if dx*dx+dz*dz > def.Radius*def.Radius {
			continue
		}
		entries = append(entries, decorator.Entry{ID: id, Pos: world.BlockPos{x, height, z}})
	}

	for _, e := range entries {
		def.Placer.Place(c.Blocks, pos, e.Pos, stream)
	}
	return nil
}
