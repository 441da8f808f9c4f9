// internal/generator/rng.go
package generator

import (
	"math/rand"

	"github.com/google/uuid"
)

// Rand wraps a single seeded source. Every probabilistic decision in the
// generator draws from it, and draws happen in a fixed sequential order, so
// a fixed seed yields byte-identical output across runs.
type Rand struct {
	src *rand.Rand
}

func NewRand(seed int64) *Rand {
	return &Rand{src: rand.New(rand.NewSource(seed))}
}

// Chance is the single injection decision: true with probability p. Negative
// p never fires but still consumes a draw, keeping the sequence stable.
func (r *Rand) Chance(p float64) bool {
	return r.src.Float64() < p
}

// Float returns a uniform value in [lo, hi).
func (r *Rand) Float(lo, hi float64) float64 {
	return lo + r.src.Float64()*(hi-lo)
}

// Int returns a uniform integer in [lo, hi], both ends inclusive.
func (r *Rand) Int(lo, hi int) int {
	return lo + r.src.Intn(hi-lo+1)
}

// Intn returns a uniform integer in [0, n).
func (r *Rand) Intn(n int) int {
	return r.src.Intn(n)
}

func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	r.src.Shuffle(n, swap)
}

// UUID draws identifier bytes from the seeded source. uuid.NewString would
// read crypto/rand and break reproducibility.
func (r *Rand) UUID() string {
	id, err := uuid.NewRandomFromReader(r.src)
	if err != nil {
		// The math/rand reader never fails.
		panic(err)
	}
	return id.String()
}

// Pick returns a uniformly chosen element of vals.
func Pick[T any](r *Rand, vals []T) T {
	return vals[r.src.Intn(len(vals))]
}

// Weighted pairs a candidate value with its sampling weight.
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// WeightedChoice samples one value from an explicit discrete distribution.
// Weights need not sum to 1; a non-positive total falls back to the last
// candidate so the draw count stays fixed.
func WeightedChoice[T any](r *Rand, items []Weighted[T]) T {
	var total float64
	for _, it := range items {
		if it.Weight > 0 {
			total += it.Weight
		}
	}

	x := r.src.Float64() * total
	for _, it := range items {
		if it.Weight <= 0 {
			continue
		}
		x -= it.Weight
		if x < 0 {
			return it.Value
		}
	}
	return items[len(items)-1].Value
}
