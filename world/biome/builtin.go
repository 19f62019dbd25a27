package biome

import (
	"image/color"

	"github.com/geovox/geovox/world/block"
)

// Names of the builtin biomes registered by RegisterBuiltins. VoidName is
// the default biome blended in where no cell claims a point; OceanName and
// BeachName are additionally forced onto cells flagged by hydrology passes.
const (
	VoidName      = "void"
	PlainsName    = "plains"
	HillsName     = "hills"
	MountainsName = "mountains"
	OceanName     = "ocean"
	BeachName     = "beach"
)

// grassyRule is the shared surface rule of the land biomes: grass at the
// surface (snowy above the snow line), a dirt layer under it, stone below.
func grassyRule() RuleSource {
	return Chain{
		Cond(NewBlock(block.SnowyGrassName), AtGround{}, AboveY{Y: SnowLine}),
		Cond(NewBlock(block.GrassName), AtGround{}),
		Cond(NewBlock(block.DirtName), WithinDepth{Depth: 5}),
		Cond(NewBlock(block.StoneName), BelowGround{}),
	}
}

// oceanRule fills everything under sea level: stone below the sea floor,
// water above it.
func oceanRule() RuleSource {
	return Chain{
		Cond(NewBlock(block.StoneName), BelowSeaLevel{}, BelowGround{}),
		Cond(NewBlock(block.WaterName), BelowSeaLevel{}),
	}
}

// beachRule is a sand strip over stone.
func beachRule() RuleSource {
	return Chain{
		Cond(NewBlock(block.SandName), WithinDepth{Depth: 3}),
		Cond(NewBlock(block.SandName), AtGround{}),
		Cond(NewBlock(block.StoneName), BelowGround{}),
	}
}

// RegisterBuiltins installs the base biome set into the registry passed.
// The void biome must be registered for the generator to use as the default
// blend target; the rest cover the reachable climate space unevenly on
// purpose (coverage gaps exercise the random-fallback path).
func RegisterBuiltins(r *Registry) error {
	builtins := []struct {
		name string
		def  Definition
	}{
		{VoidName, Definition{
			Color:          color.RGBA{0, 0, 0, 255},
			Rule:           Nothing{},
			Surface:        Flat{},
			BlendInfluence: 1,
			BlockInfluence: 0,
		}},
		{PlainsName, Definition{
			Color:       color.RGBA{20, 180, 10, 255},
			Elevation:   Span(1.0, 2.5),
			Temperature: Full(),
			Moisture:    Below(2.5),
			Rule:        grassyRule(),
			Surface: Layered{
				Scale:     2,
				Layers:    []Layer{{1, 0.75}, {2, 0.25}},
				Amplitude: 5,
			},
			BlendInfluence: 0.5,
			BlockInfluence: 1,
			CanGenerate:    true,
		}},
		{HillsName, Definition{
			Color:       color.RGBA{15, 110, 10, 255},
			Elevation:   Span(2.5, 3.5),
			Temperature: Full(),
			Moisture:    Below(2.5),
			Rule:        grassyRule(),
			Surface: Layered{
				Scale:     40,
				Layers:    []Layer{{1, 0.6}, {1.5, 0.25}, {3, 0.15}},
				Amplitude: 0.05,
			},
			BlendInfluence: 1,
			BlockInfluence: 1,
			CanGenerate:    true,
		}},
		{MountainsName, Definition{
			Color:          color.RGBA{220, 220, 220, 255},
			Elevation:      Above(3.5),
			Temperature:    Full(),
			Moisture:       Below(2.5),
			Rule:           grassyRule(),
			Surface:        Ridged{Scale: 16, Amplitude: 15},
			BlendInfluence: 1,
			BlockInfluence: 1,
			CanGenerate:    true,
		}},
		{OceanName, Definition{
			Color:       color.RGBA{10, 120, 180, 255},
			Elevation:   Below(1.0),
			Temperature: Full(),
			Moisture:    Above(2.5),
			Rule:        oceanRule(),
			Surface: Layered{
				Scale:     1,
				Layers:    []Layer{{1, -7.5}},
				Amplitude: 1,
				Offset:    1,
			},
			BlendInfluence: 1,
			BlockInfluence: 1,
			CanGenerate:    true,
		}},
		{BeachName, Definition{
			Color:          color.RGBA{224, 200, 130, 255},
			Rule:           beachRule(),
			Surface:        Layered{Scale: 1, Layers: []Layer{{1, 1}}, Amplitude: 1},
			BlendInfluence: 0.5,
			BlockInfluence: 0.8,
		}},
	}
	for _, b := range builtins {
		if _, err := r.Register(b.name, b.def); err != nil {
			return err
		}
	}
	return nil
}
