package decorator

import (
	"testing"

	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/block"
	"github.com/geovox/geovox/world/chunk"
	"github.com/geovox/geovox/world/generator/prand"
)

func testBlocks(t *testing.T) *block.Registry {
	t.Helper()
	r := world.NewRegistry[block.Definition]()
	if err := block.RegisterBuiltins(r); err != nil {
		t.Fatalf("register builtin blocks: %v", err)
	}
	return r
}

func entryOf(t *testing.T, blocks *block.Registry, name string) block.Entry {
	t.Helper()
	id, _, err := blocks.ByName(name)
	if err != nil {
		t.Fatalf("block %q: %v", name, err)
	}
	return block.Entry{ID: id}
}

func TestTreePlace(t *testing.T) {
	t.Parallel()
	blocks := testBlocks(t)
	tree := &Tree{TrunkHeight: 4, LeafRadius: 2}
	if err := tree.Bind(blocks); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	empty := entryOf(t, blocks, block.EmptyName)
	log := entryOf(t, blocks, block.LogName)
	leaves := entryOf(t, blocks, block.LeavesName)

	s := chunk.NewPaletteStorage(empty)
	anchor := world.BlockPos{16, 5, 16}
	tree.Place(s, world.ChunkPos{0, 0, 0}, anchor, prand.For(1, 0, 0))

	for y := int32(6); y <= 9; y++ {
		if got := s.At(16, y, 16); got != log {
			t.Errorf("trunk block at y=%d is %v, want log", y, got)
		}
	}
	// The blob around the trunk top is leaves.
	if got := s.At(17, 9, 16); got != leaves {
		t.Errorf("block beside the trunk top is %v, want leaves", got)
	}
	if got := s.At(16, 11, 16); got != leaves {
		t.Errorf("block above the trunk top is %v, want leaves", got)
	}
	if got := s.At(16, 5, 16); got != empty {
		t.Errorf("anchor block is %v, want untouched", got)
	}
}

func TestTreeSkipsOccupiedBlocks(t *testing.T) {
	t.Parallel()
	blocks := testBlocks(t)
	tree := &Tree{TrunkHeight: 4, LeafRadius: 2}
	if err := tree.Bind(blocks); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	empty := entryOf(t, blocks, block.EmptyName)
	stone := entryOf(t, blocks, block.StoneName)

	s := chunk.NewPaletteStorage(empty)
	s.Put(16, 7, 16, stone) // in the trunk's path
	s.Put(18, 9, 16, stone) // in the leaf blob
	tree.Place(s, world.ChunkPos{0, 0, 0}, world.BlockPos{16, 5, 16}, prand.For(1, 0, 0))

	if got := s.At(16, 7, 16); got != stone {
		t.Errorf("trunk overwrote an occupied block: %v", got)
	}
	if got := s.At(18, 9, 16); got != stone {
		t.Errorf("leaves overwrote an occupied block: %v", got)
	}
}

func TestTreeClipsToChunk(t *testing.T) {
	t.Parallel()
	blocks := testBlocks(t)
	tree := &Tree{TrunkHeight: 4, TrunkVariance: 2, LeafRadius: 2}
	if err := tree.Bind(blocks); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	empty := entryOf(t, blocks, block.EmptyName)
	s := chunk.NewPaletteStorage(empty)

	// Anchors at and beyond the chunk boundary must place the in-chunk part
	// without panicking.
	tree.Place(s, world.ChunkPos{0, 0, 0}, world.BlockPos{31, 28, 31}, prand.For(1, 0, 0))
	tree.Place(s, world.ChunkPos{0, 0, 0}, world.BlockPos{33, 5, -2}, prand.For(1, 0, 0))
}

func TestClimateCount(t *testing.T) {
	t.Parallel()
	c := ClimateCount{Base: 1, PerMoisture: 1.5, Max: 6, MinElevation: 1}
	s := prand.For(3, 0, 0)

	if n := c.Count(nil, 0.5, 2, 5, s); n != 0 {
		t.Errorf("Count below the minimum elevation = %d, want 0", n)
	}
	for i := 0; i < 200; i++ {
		n := c.Count(nil, 2, 2, 5, s)
		// moisture 5 · 1.5 + 1 = 8, capped at Max.
		if n < 0 || n > 6 {
			t.Fatalf("Count = %d, want within [0, 6]", n)
		}
	}

	neg := ClimateCount{Base: -2, PerMoisture: 0, Max: 6}
	if n := neg.Count(nil, 2, 2, 0, s); n != 0 {
		t.Errorf("Count with a non-positive budget = %d, want 0", n)
	}
}
