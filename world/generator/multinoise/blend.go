package multinoise

import (
	"sort"

	"github.com/geovox/geovox/world/biome"
	"github.com/go-gl/mathgl/mgl64"
)

// blendRadius is the distance over which two cells' influence fades into
// each other.
const blendRadius = 32.0

// fade is the smoothstep 3t²-2t³.
func fade(t float64) float64 { return t * t * (3 - 2*t) }

func clampf(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// findBiomesAt computes the weighted biome list and interpolated climate for
// an arbitrary horizontal point. Cells within four blend radii of the point
// (plus the nearest-cell distance) each start with weight 1; every unordered
// pair of kept cells then splits a perpendicular-bisector fade weight between
// its two members, multiplying their running weights. Final weights are
// merged per biome id, so multiple cells of one biome form a single entry.
// Centers without an assigned biome contribute under def. The climate is the
// weight-average of the kept cells' climates: raw weights do not sum to 1,
// and an unnormalized sum would vary with the cell window around the point.
func (g *Generator) findBiomesAt(point mgl64.Vec2, def uint32, centers []center) ([]biome.Entry, climate) {
	nearby := make([]int, 0, len(centers))
	for i := range centers {
		nearby = append(nearby, i)
	}
	sort.Slice(nearby, func(a, b int) bool {
		return point.Sub(centers[nearby[a]].point).Len() < point.Sub(centers[nearby[b]].point).Len()
	})

	closestDistance := point.Sub(centers[nearby[0]].point).Len()
	cut := len(nearby)
	for i, ci := range nearby {
		if point.Sub(centers[ci].point).Len() > 4*blendRadius+closestDistance {
			cut = i
			break
		}
	}
	nearby = nearby[:cut]

	weights := make([]float64, len(nearby))
	for i := range weights {
		weights[i] = 1
	}
	// O(n²) pairwise accumulation; n is small because of the radius bound.
	for i := 0; i < len(nearby); i++ {
		for j := i + 1; j < len(nearby); j++ {
			first := centers[nearby[i]].point
			second := centers[nearby[j]].point
			mid := first.Add(second).Mul(0.5)
			dir := second.Sub(first)

			distanceFromMidpoint := point.Sub(mid).Dot(dir) / dir.Len()
			w := fade(clampf(distanceFromMidpoint/blendRadius, -1, 1)*0.5 + 0.5)

			weights[i] *= 1 - w
			weights[j] *= w
		}
	}

	var (
		blend []biome.Entry
		cl    climate
		total float64
	)
	for i, ci := range nearby {
		c := &centers[ci]
		w := weights[i]
		total += w

		cl.elevation += c.climate.elevation * w
		cl.temperature += c.climate.temperature * w
		cl.moisture += c.climate.moisture * w

		id := def
		if c.biome >= 0 {
			id = uint32(c.biome)
		}
		merged := false
		for k := range blend {
			if blend[k].ID == id {
				blend[k].Weight += w
				merged = true
				break
			}
		}
		if !merged {
			blend = append(blend, biome.Entry{ID: id, Weight: w})
		}
	}
	if total > 0 {
		cl.elevation /= total
		cl.temperature /= total
		cl.moisture /= total
	}
	return blend, cl
}
