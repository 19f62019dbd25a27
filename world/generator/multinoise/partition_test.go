package multinoise

import (
	"testing"

	"github.com/geovox/geovox/world"
	"github.com/go-gl/mathgl/mgl64"
)

func TestBuildPartitionSites(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t, 42)
	origin := world.ChunkPos{0, 0, 0}.Origin()
	part, sites, err := g.buildPartition(origin)
	if err != nil {
		t.Fatalf("buildPartition: %v", err)
	}
	if len(sites) != 25 {
		t.Fatalf("buildPartition returned %d sites, want 25", len(sites))
	}
	if len(part.centers) != 25 {
		t.Errorf("partition holds %d centers, want 25", len(part.centers))
	}

	// The chunk's own site comes last so its cell adjacency is complete.
	own := g.sitePosition(mgl64.Vec2{float64(origin.X()), float64(origin.Z())})
	if got := part.centers[sites[len(sites)-1]].point; got != own {
		t.Errorf("last site is %v, want the chunk's own site %v", got, own)
	}

	for i, c := range part.centers {
		if c.biome != -1 {
			t.Errorf("center %d already has biome %d before assignment", i, c.biome)
		}
		for _, v := range []float64{c.climate.elevation, c.climate.temperature, c.climate.moisture} {
			if v < 0 || v > 5 {
				t.Errorf("center %d has climate value %v outside [0, 5]", i, v)
			}
		}
	}
}

func TestBuildPartitionSharedSites(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t, 42)
	partA, _, err := g.buildPartition(world.ChunkPos{0, 0, 0}.Origin())
	if err != nil {
		t.Fatalf("buildPartition: %v", err)
	}
	partB, _, err := g.buildPartition(world.ChunkPos{1, 0, 0}.Origin())
	if err != nil {
		t.Fatalf("buildPartition: %v", err)
	}

	// Neighbouring chunks overlap in a 4×5 window of the site grid; those
	// sites must be bit-identical in both partitions.
	inA := make(map[mgl64.Vec2]bool, len(partA.centers))
	for _, c := range partA.centers {
		inA[c.point] = true
	}
	shared := 0
	for _, c := range partB.centers {
		if inA[c.point] {
			shared++
		}
	}
	if shared != 20 {
		t.Errorf("neighbouring chunks share %d cell sites, want 20", shared)
	}
}

func TestPartitionAdjacency(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t, 7)
	part, _, err := g.buildPartition(world.ChunkPos{-3, 0, 5}.Origin())
	if err != nil {
		t.Fatalf("buildPartition: %v", err)
	}

	for i, e := range part.edges {
		if e.d0 == e.d1 {
			t.Errorf("edge %d separates a center from itself", i)
		}
		if e.v0 == e.v1 {
			t.Errorf("edge %d connects a corner to itself", i)
		}
		mid := part.corners[e.v0].point.Add(part.corners[e.v1].point).Mul(0.5)
		if e.midpoint != mid {
			t.Errorf("edge %d has midpoint %v, want %v", i, e.midpoint, mid)
		}
	}

	contains := func(list []int, v int) bool {
		for _, x := range list {
			if x == v {
				return true
			}
		}
		return false
	}
	for ci, c := range part.centers {
		seen := make(map[int]bool, len(c.neighbors))
		for _, n := range c.neighbors {
			if seen[n] {
				t.Errorf("center %d lists neighbor %d twice", ci, n)
			}
			seen[n] = true
			if !contains(part.centers[n].neighbors, ci) {
				t.Errorf("center adjacency is not symmetric: %d -> %d", ci, n)
			}
		}
		for _, v := range c.corners {
			if !contains(part.corners[v].touches, ci) {
				t.Errorf("center %d touches corner %d, but not vice versa", ci, v)
			}
		}
	}
	for vi, v := range part.corners {
		for _, a := range v.adjacent {
			if !contains(part.corners[a].adjacent, vi) {
				t.Errorf("corner adjacency is not symmetric: %d -> %d", vi, a)
			}
		}
	}
}

func TestPartitionDeduplicatesEdges(t *testing.T) {
	t.Parallel()
	g := newTestGenerator(t, 42)
	part, _, err := g.buildPartition(world.ChunkPos{0, 0, 0}.Origin())
	if err != nil {
		t.Fatalf("buildPartition: %v", err)
	}
	seen := make(map[int64]bool, len(part.edges))
	for i, e := range part.edges {
		key := pairKey(e.v0, e.v1)
		if seen[key] {
			t.Errorf("edge %d duplicates an earlier corner pair", i)
		}
		seen[key] = true
	}
}
