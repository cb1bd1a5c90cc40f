package datagen

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Rand is the shared random context for one generation run. Every generator
// draws from the same instance in a fixed order, so a fixed seed reproduces
// the whole dataset bit for bit. It is passed explicitly, never global.
type Rand struct {
	src *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// IntBetween returns a uniform integer in [min, max], both inclusive.
func (r *Rand) IntBetween(min, max int) int {
	if max < min {
		panic(fmt.Sprintf("datagen: IntBetween called with max %d < min %d", max, min))
	}
	return min + r.src.Intn(max-min+1)
}

// FloatBetween returns a uniform float in [min, max).
func (r *Rand) FloatBetween(min, max float64) float64 {
	return min + r.src.Float64()*(max-min)
}

// Chance flips a coin that lands true with probability p.
func (r *Rand) Chance(p float64) bool {
	return r.src.Float64() < p
}

// Poisson draws from a Poisson distribution using Knuth's method.
// A non-positive mean is a degenerate distribution and a programming error,
// not a runtime condition, so it panics instead of clamping.
func (r *Rand) Poisson(mean float64) int {
	if mean <= 0 {
		panic(fmt.Sprintf("datagen: Poisson called with non-positive mean %v", mean))
	}
	limit := math.Exp(-mean)
	k := 0
	p := 1.0
	for {
		p *= r.src.Float64()
		if p <= limit {
			return k
		}
		k++
	}
}

// Choice picks one item uniformly.
func (r *Rand) Choice(items []string) string {
	return items[r.src.Intn(len(items))]
}

// WeightedChoice picks one item according to the given weights. The weights
// are the fixed constants of the dataset design (see constants.go), so a
// mismatch in length is a programming error.
func (r *Rand) WeightedChoice(items []string, weights []float64) string {
	if len(items) != len(weights) {
		panic(fmt.Sprintf("datagen: WeightedChoice got %d items but %d weights", len(items), len(weights)))
	}
	total := 0.0
	for _, w := range weights {
		total += w
	}
	target := r.src.Float64() * total
	for i, w := range weights {
		target -= w
		if target < 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}

// DateBetween returns a uniform whole-day date in [start, end], both inclusive.
func (r *Rand) DateBetween(start, end time.Time) time.Time {
	days := daysBetween(start, end)
	return start.AddDate(0, 0, r.IntBetween(0, days))
}
