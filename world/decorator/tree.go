package decorator

import (
	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/block"
	"github.com/geovox/geovox/world/chunk"
	"github.com/geovox/geovox/world/generator/prand"
)

// Tree places a single tree: a trunk of log blocks rising from the anchor
// with a rounded blob of leaves around its top.
type Tree struct {
	// TrunkHeight is the minimum trunk height; up to TrunkVariance extra
	// blocks are added per instance.
	TrunkHeight   int32
	TrunkVariance int32
	// LeafRadius is the horizontal radius of the leaf blob.
	LeafRadius int32

	log    block.Entry
	leaves block.Entry
	empty  block.Entry
	bound  bool
}

func (t *Tree) Bind(blocks *block.Registry) error {
	names := []struct {
		name  string
		entry *block.Entry
	}{
		{block.LogName, &t.log},
		{block.LeavesName, &t.leaves},
		{block.EmptyName, &t.empty},
	}
	for _, n := range names {
		id, _, err := blocks.ByName(n.name)
		if err != nil {
			return err
		}
		*n.entry = block.Entry{ID: id}
	}
	t.bound = true
	return nil
}

func (t *Tree) Place(s *chunk.PaletteStorage, chunkPos world.ChunkPos, pos world.BlockPos, r *prand.Stream) {
	if !t.bound {
		panic("decorator: placer used before Bind")
	}
	height := t.TrunkHeight
	if t.TrunkVariance > 0 {
		height += r.Int32N(t.TrunkVariance + 1)
	}

	// Leaves first so the trunk overwrites the blob's core column.
	top := pos.Add(world.BlockPos{0, height, 0})
	radius := t.LeafRadius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			for dz := -radius; dz <= radius; dz++ {
				if dx*dx+dy*dy+dz*dz > radius*radius+1 {
					continue
				}
				t.put(s, chunkPos, top.Add(world.BlockPos{dx, dy, dz}), t.leaves, false)
			}
		}
	}
	for y := int32(1); y <= height; y++ {
		t.put(s, chunkPos, pos.Add(world.BlockPos{0, y, 0}), t.log, true)
	}
}

// put writes entry at an absolute position, clipped to the chunk. Occupied
// blocks are skipped unless force is set (trunks replace leaves).
func (t *Tree) put(s *chunk.PaletteStorage, chunkPos world.ChunkPos, pos world.BlockPos, entry block.Entry, force bool) {
	x, y, z, ok := chunkPos.Local(pos)
	if !ok {
		return
	}
	if cur := s.At(x, y, z); !force && cur != t.empty {
		return
	} else if force && cur != t.empty && cur != t.leaves {
		return
	}
	s.Put(x, y, z, entry)
}

// RegisterBuiltins installs the base decorator set: a single oak-like tree
// whose density follows moisture on land-level terrain.
func RegisterBuiltins(r *Registry) error {
	_, err := r.Register("tree", Definition{
		Count: ClimateCount{
			Base:         1,
			PerMoisture:  1.5,
			Max:          6,
			MinElevation: 1.0,
		},
		Placer: &Tree{TrunkHeight: 4, TrunkVariance: 2, LeafRadius: 2},
		Radius: 16,
	})
	return err
}
