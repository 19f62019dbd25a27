package biome

import (
	"math"

	"github.com/geovox/geovox/world/generator/noise"
	"github.com/go-gl/mathgl/mgl64"
)

// SurfaceSource shapes a biome's terrain height. Sample evaluates the shape
// at a horizontal point (already divided by the global biome scale) against
// the generator's base terrain noise, returning a height contribution the
// column synthesizer normalizes to [0, 1] and blends.
type SurfaceSource interface {
	Sample(p mgl64.Vec2, base *noise.Fbm) float64
}

// Layer is one frequency band of a Layered surface.
type Layer struct {
	Frequency float64
	Weight    float64
}

// Layered sums weighted noise layers: Amplitude · (Σ base(p·Scale·fᵢ)·wᵢ) +
// Offset. It covers the plains, hills and ocean shapes of the builtin set.
type Layered struct {
	Scale     float64
	Layers    []Layer
	Amplitude float64
	Offset    float64
}

func (s Layered) Sample(p mgl64.Vec2, base *noise.Fbm) float64 {
	x := p.X() / ScaleMod * s.Scale
	y := p.Y() / ScaleMod * s.Scale
	value := 0.0
	for _, l := range s.Layers {
		value += base.Eval2(x*l.Frequency, y*l.Frequency) * l.Weight
	}
	return value*s.Amplitude + s.Offset
}

// Ridged is the mountain shape: two folded ridge bands layered over rolling
// base noise, amplified steeply.
type Ridged struct {
	Scale     float64
	Amplitude float64
}

func (s Ridged) Sample(p mgl64.Vec2, base *noise.Fbm) float64 {
	x := p.X() / ScaleMod * s.Scale
	y := p.Y() / ScaleMod * s.Scale

	ridge := (0.5 - math.Abs(0.5-base.Eval2(x*5, y*5))) * 2
	rolling := base.Eval2(x*2, y*2)*0.25 + base.Eval2(x, y)*0.5

	intermediate := rolling / 0.75
	value := intermediate * 0.15 * ridge
	value += rolling
	value += intermediate + 0.05*(0.5-math.Abs(0.5-base.Eval2(x*9, y*9)))*2
	return value * s.Amplitude
}

// Flat is a constant-height surface, used by the void biome.
type Flat struct{ Height float64 }

func (s Flat) Sample(mgl64.Vec2, *noise.Fbm) float64 { return s.Height }
