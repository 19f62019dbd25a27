package biome

import (
	"github.com/geovox/geovox/world"
	"github.com/geovox/geovox/world/block"
)

// RuleSource decides the block a biome places at a position. Rule sources
// are data, not code: a small tree of condition, chain and terminal block
// nodes, resolved against the block registry once before generation starts.
type RuleSource interface {
	// Bind resolves the block names the rule refers to. A missing name is a
	// registry setup defect and aborts generator construction.
	Bind(blocks *block.Registry) error
	// Apply returns the block for pos, or false if the rule places nothing
	// there.
	Apply(pos world.BlockPos, ctx *Context) (block.Entry, bool)
}

// Condition gates a rule node on the position it is evaluated at.
type Condition interface {
	Holds(pos world.BlockPos, ctx *Context) bool
}

// AtGround holds at the column's terrain surface.
type AtGround struct{}

func (AtGround) Holds(pos world.BlockPos, ctx *Context) bool { return pos.Y() == ctx.GroundY }

// WithinDepth holds strictly below the surface, down to Depth blocks under
// it.
type WithinDepth struct{ Depth int32 }

func (c WithinDepth) Holds(pos world.BlockPos, ctx *Context) bool {
	return pos.Y() <= ctx.GroundY && pos.Y() > ctx.GroundY-c.Depth
}

// BelowGround holds anywhere under the terrain surface.
type BelowGround struct{}

func (BelowGround) Holds(pos world.BlockPos, ctx *Context) bool { return pos.Y() < ctx.GroundY }

// BelowSeaLevel holds under the world sea level.
type BelowSeaLevel struct{}

func (BelowSeaLevel) Holds(pos world.BlockPos, ctx *Context) bool { return pos.Y() < ctx.SeaLevel }

// AboveY holds at or above a fixed height.
type AboveY struct{ Y int32 }

func (c AboveY) Holds(pos world.BlockPos, ctx *Context) bool { return pos.Y() >= c.Y }

// Block is a terminal rule node placing one fixed block.
type Block struct {
	Name     string
	Metadata uint16

	id    uint32
	bound bool
}

// NewBlock returns a terminal rule placing the named block.
func NewBlock(name string) *Block { return &Block{Name: name} }

func (b *Block) Bind(blocks *block.Registry) error {
	id, _, err := blocks.ByName(b.Name)
	if err != nil {
		return err
	}
	b.id, b.bound = id, true
	return nil
}

func (b *Block) Apply(world.BlockPos, *Context) (block.Entry, bool) {
	if !b.bound {
		panic("biome: rule applied before Bind")
	}
	return block.Entry{ID: b.id, Metadata: b.Metadata}, true
}

// When gates a child rule on a set of conditions that must all hold.
type When struct {
	If   []Condition
	Then RuleSource
}

// Cond is shorthand for a When node.
func Cond(then RuleSource, conds ...Condition) *When { return &When{If: conds, Then: then} }

func (w *When) Bind(blocks *block.Registry) error { return w.Then.Bind(blocks) }

func (w *When) Apply(pos world.BlockPos, ctx *Context) (block.Entry, bool) {
	for _, c := range w.If {
		if !c.Holds(pos, ctx) {
			return block.Entry{}, false
		}
	}
	return w.Then.Apply(pos, ctx)
}

// Chain evaluates child rules in order; the first non-empty result wins.
type Chain []RuleSource

func (c Chain) Bind(blocks *block.Registry) error {
	for _, r := range c {
		if err := r.Bind(blocks); err != nil {
			return err
		}
	}
	return nil
}

func (c Chain) Apply(pos world.BlockPos, ctx *Context) (block.Entry, bool) {
	for _, r := range c {
		if e, ok := r.Apply(pos, ctx); ok {
			return e, true
		}
	}
	return block.Entry{}, false
}

// Nothing is a rule that never places a block.
type Nothing struct{}

func (Nothing) Bind(*block.Registry) error { return nil }

func (Nothing) Apply(world.BlockPos, *Context) (block.Entry, bool) { return block.Entry{}, false }
