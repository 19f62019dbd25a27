package multinoise

import (
	"fmt"
	"math"

	"github.com/brentp/intintmap"
	"github.com/fogleman/delaunay"
	"github.com/geovox/geovox/world"
	"github.com/go-gl/mathgl/mgl64"
)

// BiomeSize is the biome cell size in chunks. Fractional sizes break the
// rounded-position deduplication of shared cell sites between neighbouring
// chunks, so keep it integral.
const BiomeSize = 1.0

// center is a Voronoi cell: a site with its cached climate sample, its
// assigned biome and full adjacency. Centers live in a flat arena addressed
// by index; all adjacency is index lists.
type center struct {
	point   mgl64.Vec2
	climate climate
	biome   int64 // biome registry id, -1 until assigned

	// Reserved for a future hydrology pass; forced biomes when set.
	water, ocean, coast bool

	neighbors []int // adjacent centers
	borders   []int // bordering edges
	corners   []int // touching corners
}

// corner is a Voronoi vertex, the dual of a Delaunay triangle.
type corner struct {
	point mgl64.Vec2

	touches   []int // adjacent centers
	protrudes []int // protruding edges
	adjacent  []int // adjacent corners
}

// edge is a Voronoi boundary segment and its dual Delaunay edge. An index of
// -1 denotes the partition boundary; every edge has at least one center and
// one corner populated.
type edge struct {
	d0, d1   int // separated centers
	v0, v1   int // connected corners
	midpoint mgl64.Vec2
}

// partition is the transient local Voronoi partition of one chunk
// generation. It is rebuilt from scratch per chunk and never shared.
type partition struct {
	centers []center
	corners []corner
	edges   []edge

	centerLookup *intintmap.Map // packed rounded position → center index
	cornerLookup *intintmap.Map // packed rounded position → corner index
	edgeLookup   *intintmap.Map // packed corner index pair → edge index
}

func newPartition() *partition {
	return &partition{
		centerLookup: intintmap.New(64, 0.6),
		cornerLookup: intintmap.New(128, 0.6),
		edgeLookup:   intintmap.New(128, 0.6),
	}
}

func packKey(x, y int32) int64 {
	return int64(x)<<32 | int64(uint32(y))
}

func pairKey(a, b int) int64 {
	if a > b {
		a, b = b, a
	}
	return int64(a)<<32 | int64(uint32(b))
}

func roundedKey(p mgl64.Vec2) int64 {
	return packKey(int32(math.Round(p.X())), int32(math.Round(p.Y())))
}

// buildPartition places the 5×5 jittered site grid around the chunk at
// origin, triangulates it and derives the dual Voronoi cells with full
// adjacency. It returns the partition and the arena indices of the 25 site
// centers, the target chunk's own site last.
func (g *Generator) buildPartition(origin world.BlockPos) (*partition, []int, error) {
	sites := make([]mgl64.Vec2, 0, 25)
	points := make([]delaunay.Point, 0, 25)
	centerSite := -1
	for z := int32(-2); z <= 2; z++ {
		for x := int32(-2); x <= 2; x++ {
			s := g.sitePosition(mgl64.Vec2{
				float64(origin.X() + x*world.ChunkDim),
				float64(origin.Z() + z*world.ChunkDim),
			})
			if x == 0 && z == 0 {
				centerSite = len(sites)
			}
			sites = append(sites, s)
			points = append(points, delaunay.Point{X: s.X(), Y: s.Y()})
		}
	}

	tri, err := delaunay.Triangulate(points)
	if err != nil {
		// Duplicate or degenerate sites: a configuration defect, fatal for
		// the chunk.
		return nil, nil, fmt.Errorf("triangulate sites: %w", err)
	}

	p := newPartition()
	order := make([]int, 0, 25)
	for site := range sites {
		if site == centerSite {
			continue
		}
		order = append(order, g.makeEdgeCenterCorner(p, tri, sites, site))
	}
	order = append(order, g.makeEdgeCenterCorner(p, tri, sites, centerSite))
	return p, order, nil
}

// sitePosition jitters a chunk-aligned grid position by point-offset noise.
// It is a pure function of the absolute position, so neighbouring chunks
// derive bit-identical sites for the grid points they share.
func (g *Generator) sitePosition(pos mgl64.Vec2) mgl64.Vec2 {
	n := world.ChunkDimF * 0.75 * g.pointOffset.Eval2(pos.X()*BiomeSize, pos.Y()*BiomeSize)
	return mgl64.Vec2{BiomeSize*pos.X() + n, BiomeSize*pos.Y() + n}
}

// makeCenter resolves or creates the center for a site position,
// deduplicated by rounded position. New centers get their climate sample
// computed immediately.
func (g *Generator) makeCenter(p *partition, point mgl64.Vec2) int {
	key := roundedKey(point)
	if v, ok := p.centerLookup.Get(key); ok {
		return int(v)
	}
	idx := len(p.centers)
	p.centers = append(p.centers, center{
		point:   point,
		climate: g.climateAt(point),
		biome:   -1,
	})
	p.centerLookup.Put(key, int64(idx))
	return idx
}

// makeCorner resolves or creates the corner at a position, deduplicated by a
// 5×5 integer-bucket search around the rounded position within a small
// epsilon.
func (p *partition) makeCorner(point mgl64.Vec2) int {
	x := int32(math.Round(point.X()))
	y := int32(math.Round(point.Y()))
	for bx := x - 2; bx <= x+2; bx++ {
		for by := y - 2; by <= y+2; by++ {
			v, ok := p.cornerLookup.Get(packKey(bx, by))
			if !ok {
				continue
			}
			if point.Sub(p.corners[v].point).Len() < 1e-6 {
				return int(v)
			}
		}
	}
	idx := len(p.corners)
	p.corners = append(p.corners, corner{point: point})
	p.cornerLookup.Put(packKey(x, y), int64(idx))
	return idx
}

// makeEdgeCenterCorner derives the Voronoi cell of one site: it enumerates
// the site's outgoing Delaunay edges with their dual Voronoi edges pairwise,
// resolves the corners and centers on both sides and registers adjacency.
// Each unique edge is linked exactly once, however many sites enumerate it.
func (g *Generator) makeEdgeCenterCorner(p *partition, tri *delaunay.Triangulation, sites []mgl64.Vec2, site int) int {
	ctr := g.makeCenter(p, sites[site])

	for he, start := range tri.Triangles {
		if start != site {
			continue
		}
		twin := tri.Halfedges[he]
		if twin < 0 {
			// Convex hull edge; the dual Voronoi edge is unbounded.
			continue
		}
		other := tri.Triangles[nextHalfedge(he)]
		nb := g.makeCenter(p, sites[other])
		if nb == ctr {
			// Extreme jitter rounded two sites into one cell.
			continue
		}

		v0 := p.makeCorner(circumcenter(tri, he/3))
		v1 := p.makeCorner(circumcenter(tri, twin/3))
		if v0 == v1 {
			continue
		}
		if _, ok := p.edgeLookup.Get(pairKey(v0, v1)); ok {
			continue
		}

		e := edge{
			d0:       ctr,
			d1:       nb,
			v0:       v0,
			v1:       v1,
			midpoint: p.corners[v0].point.Add(p.corners[v1].point).Mul(0.5),
		}
		idx := len(p.edges)
		p.edges = append(p.edges, e)
		p.edgeLookup.Put(pairKey(v0, v1), int64(idx))
		p.link(idx)
	}
	return ctr
}

// link registers the full bidirectional adjacency of one edge:
// centers to centers, centers to edges and corners, and corners to edges and each other.
func (p *partition) link(idx int) {
	e := p.edges[idx]

	// Centers and corners point to the edge.
	if e.d0 >= 0 {
		p.centers[e.d0].borders = append(p.centers[e.d0].borders, idx)
	}
	if e.d1 >= 0 {
		p.centers[e.d1].borders = append(p.centers[e.d1].borders, idx)
	}
	if e.v0 >= 0 {
		p.corners[e.v0].protrudes = append(p.corners[e.v0].protrudes, idx)
	}
	if e.v1 >= 0 {
		p.corners[e.v1].protrudes = append(p.corners[e.v1].protrudes, idx)
	}

	// Centers point to centers.
	if e.d0 >= 0 && e.d1 >= 0 {
		addUnique(&p.centers[e.d0].neighbors, e.d1)
		addUnique(&p.centers[e.d1].neighbors, e.d0)
	}

	// Corners point to corners.
	if e.v0 >= 0 && e.v1 >= 0 {
		addUnique(&p.corners[e.v0].adjacent, e.v1)
		addUnique(&p.corners[e.v1].adjacent, e.v0)
	}

	// Centers point to corners.
	for _, d := range [2]int{e.d0, e.d1} {
		if d < 0 {
			continue
		}
		if e.v0 >= 0 {
			addUnique(&p.centers[d].corners, e.v0)
		}
		if e.v1 >= 0 {
			addUnique(&p.centers[d].corners, e.v1)
		}
	}

	// Corners point to centers.
	for _, v := range [2]int{e.v0, e.v1} {
		if v < 0 {
			continue
		}
		if e.d0 >= 0 {
			addUnique(&p.corners[v].touches, e.d0)
		}
		if e.d1 >= 0 {
			addUnique(&p.corners[v].touches, e.d1)
		}
	}
}

func addUnique(list *[]int, v int) {
	for _, x := range *list {
		if x == v {
			return
		}
	}
	*list = append(*list, v)
}

func nextHalfedge(e int) int {
	if e%3 == 2 {
		return e - 2
	}
	return e + 1
}

func circumcenter(tri *delaunay.Triangulation, t int) mgl64.Vec2 {
	a := tri.Points[tri.Triangles[3*t]]
	b := tri.Points[tri.Triangles[3*t+1]]
	c := tri.Points[tri.Triangles[3*t+2]]

	ad := a.X*a.X + a.Y*a.Y
	bd := b.X*b.X + b.Y*b.Y
	cd := c.X*c.X + c.Y*c.Y
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	return mgl64.Vec2{
		(ad*(b.Y-c.Y) + bd*(c.Y-a.Y) + cd*(a.Y-b.Y)) / d,
		(ad*(c.X-b.X) + bd*(a.X-c.X) + cd*(b.X-a.X)) / d,
	}
}
