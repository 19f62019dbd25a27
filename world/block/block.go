// Package block holds the block type definitions the terrain generator
// places, and the builtin block set.
package block

import (
	"image/color"

	"github.com/geovox/geovox/world"
)

// Entry identifies a placed voxel: a block id paired with variant metadata.
type Entry struct {
	ID       uint32
	Metadata uint16
}

// Definition describes a registered block type.
type Definition struct {
	// Color is the representative color of the block, used by map renderers.
	Color color.RGBA
	// Solid is true for blocks with a collision box.
	Solid bool
	// Drawable is false for fully invisible blocks such as air.
	Drawable bool
}

// Registry maps block names and ids to definitions.
type Registry = world.Registry[Definition]

// Names of the builtin blocks registered by RegisterBuiltins. EmptyName is
// the block every chunk is filled with before generation runs.
const (
	EmptyName      = "empty"
	StoneName      = "stone"
	DirtName       = "dirt"
	GrassName      = "grass"
	SnowyGrassName = "snowy_grass"
	WaterName      = "water"
	SandName       = "sand"
	LogName        = "log"
	LeavesName     = "leaves"
)

// RegisterBuiltins installs the base set of blocks into the registry passed.
func RegisterBuiltins(r *Registry) error {
	builtins := []struct {
		name string
		def  Definition
	}{
		{EmptyName, Definition{}},
		{StoneName, Definition{Color: color.RGBA{64, 64, 64, 255}, Solid: true, Drawable: true}},
		{DirtName, Definition{Color: color.RGBA{110, 81, 0, 255}, Solid: true, Drawable: true}},
		{GrassName, Definition{Color: color.RGBA{30, 230, 30, 255}, Solid: true, Drawable: true}},
		{SnowyGrassName, Definition{Color: color.RGBA{200, 200, 200, 255}, Solid: true, Drawable: true}},
		{WaterName, Definition{Color: color.RGBA{0, 0, 200, 100}, Drawable: true}},
		{SandName, Definition{Color: color.RGBA{224, 200, 130, 255}, Solid: true, Drawable: true}},
		{LogName, Definition{Color: color.RGBA{96, 72, 40, 255}, Solid: true, Drawable: true}},
		{LeavesName, Definition{Color: color.RGBA{40, 140, 40, 255}, Solid: true, Drawable: true}},
	}
	for _, b := range builtins {
		if _, err := r.Register(b.name, b.def); err != nil {
			return err
		}
	}
	return nil
}
