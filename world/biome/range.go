package biome

import "math"

// Range is a half-open climate interval [Min, Max). Construct ranges with
// Span, Below, Above or Full; the zero Range contains nothing.
type Range struct {
	Min, Max float64
}

// Span returns the range [min, max).
func Span(min, max float64) Range { return Range{Min: min, Max: max} }

// Below returns the range (-inf, max).
func Below(max float64) Range { return Range{Min: math.Inf(-1), Max: max} }

// Above returns the range [min, +inf).
func Above(min float64) Range { return Range{Min: min, Max: math.Inf(1)} }

// Full returns the range covering every value.
func Full() Range { return Range{Min: math.Inf(-1), Max: math.Inf(1)} }

// Contains reports whether v falls inside the range.
func (r Range) Contains(v float64) bool { return v >= r.Min && v < r.Max }
