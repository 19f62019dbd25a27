// Package noise implements the fractal noise stack used for climate
// parameters, terrain height and per-biome surface shaping.
package noise

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Defaults and bounds for Fbm parameters.
const (
	DefaultFrequency   = 1.0
	DefaultLacunarity  = math.Pi * 2.0 / 3.0
	DefaultPersistence = 0.5
	// MaxOctaves bounds the octave count for determinism and performance.
	MaxOctaves = 32
)

// Fbm produces fractal Brownian motion noise: the sum of several noise
// sources of ever-increasing frequency and ever-decreasing amplitude. Unlike
// textbook fBm, each octave carries its own strength multiplier, so single
// octaves can be emphasised, muted or sign-flipped independently.
//
// An Fbm is immutable after construction apart from SetSeed and is safe for
// concurrent evaluation.
type Fbm struct {
	octaves     []float64
	frequency   float64
	lacunarity  float64
	persistence float64

	seed        uint32
	sources     []opensimplex.Noise
	scaleFactor float64
}

// NewFbm creates an fBm stack seeded with seed. Each value in octaves is the
// strength multiplier of one octave; passing none uses six unit-strength
// octaves. The octave count is clamped to MaxOctaves.
func NewFbm(seed uint32, octaves ...float64) *Fbm {
	if len(octaves) == 0 {
		octaves = []float64{1, 1, 1, 1, 1, 1}
	}
	if len(octaves) > MaxOctaves {
		octaves = octaves[:MaxOctaves]
	}
	f := &Fbm{
		octaves:     append([]float64(nil), octaves...),
		frequency:   DefaultFrequency,
		lacunarity:  DefaultLacunarity,
		persistence: DefaultPersistence,
		seed:        seed,
	}
	f.rebuild()
	return f
}

// SetFrequency sets the number of cycles per unit length and returns f.
func (f *Fbm) SetFrequency(frequency float64) *Fbm {
	f.frequency = frequency
	return f
}

// SetLacunarity sets the per-octave frequency multiplier and returns f.
func (f *Fbm) SetLacunarity(lacunarity float64) *Fbm {
	f.lacunarity = lacunarity
	return f
}

// SetPersistence sets the per-octave amplitude multiplier and returns f.
func (f *Fbm) SetPersistence(persistence float64) *Fbm {
	f.persistence = persistence
	return f
}

// SetSeed re-seeds the stack, rebuilding the per-octave sources. Passing the
// seed the stack already uses is a no-op.
func (f *Fbm) SetSeed(seed uint32) {
	if f.seed == seed {
		return
	}
	f.seed = seed
	f.rebuild()
}

// Seed returns the seed the stack was built with.
func (f *Fbm) Seed() uint32 { return f.seed }

func (f *Fbm) rebuild() {
	f.sources = make([]opensimplex.Noise, len(f.octaves))
	for i := range f.sources {
		// Each octave gets an independent source under a deterministic
		// permutation of the base seed.
		f.sources[i] = opensimplex.New(int64(f.seed) + int64(i))
	}
	f.scaleFactor = calcScaleFactor(f.octaves)
}

// calcScaleFactor precomputes the normalisation factor keeping the summed
// output in [-1, 1] for unit-strength octaves.
func calcScaleFactor(octaves []float64) float64 {
	n := float64(len(octaves))
	lowestFreqValueFactor := math.Pow(2, n-1) / (math.Pow(2, n) - 1)
	value := 0.0
	for _, o := range octaves {
		value += o * 2 * lowestFreqValueFactor
		lowestFreqValueFactor /= 2
	}
	return value
}

// Eval2 evaluates the stack at a 2-D point.
func (f *Fbm) Eval2(x, y float64) float64 {
	x *= f.frequency
	y *= f.frequency

	result := 0.0
	attenuation := f.persistence
	for i, o := range f.octaves {
		if o != 0 {
			result += f.sources[i].Eval2(x, y) * o * attenuation
		}
		attenuation *= f.persistence
		x *= f.lacunarity
		y *= f.lacunarity
	}
	return result * f.scaleFactor
}

// Eval3 evaluates the stack at a 3-D point.
func (f *Fbm) Eval3(x, y, z float64) float64 {
	x *= f.frequency
	y *= f.frequency
	z *= f.frequency

	result := 0.0
	attenuation := f.persistence
	for i, o := range f.octaves {
		if o != 0 {
			result += f.sources[i].Eval3(x, y, z) * o * attenuation
		}
		attenuation *= f.persistence
		x *= f.lacunarity
		y *= f.lacunarity
		z *= f.lacunarity
	}
	return result * f.scaleFactor
}

// Eval4 evaluates the stack at a 4-D point.
func (f *Fbm) Eval4(x, y, z, w float64) float64 {
	x *= f.frequency
	y *= f.frequency
	z *= f.frequency
	w *= f.frequency

	result := 0.0
	attenuation := f.persistence
	for i, o := range f.octaves {
		if o != 0 {
			result += f.sources[i].Eval4(x, y, z, w) * o * attenuation
		}
		attenuation *= f.persistence
		x *= f.lacunarity
		y *= f.lacunarity
		z *= f.lacunarity
		w *= f.lacunarity
	}
	return result * f.scaleFactor
}
