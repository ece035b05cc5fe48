package generator

import (
	"math"
	"math/rand/v2"
	"time"

	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// Random is the single source of randomness for a generation run. A non-zero
// seed makes every draw reproducible.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a Random seeded with seed, or with entropy when seed is 0.
func NewRandom(seed uint64) *Random {
	if seed == 0 {
		return &Random{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
	}
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// PickOne returns a uniformly random element of set.
func PickOne[T any](r *Random, set []T) (T, error) {
	var zero T
	if len(set) == 0 {
		return zero, apperrors.EmptyInput("cannot pick from an empty set")
	}
	return set[r.rng.IntN(len(set))], nil
}

// IntInRange returns a uniformly random integer in [min, max]. Any ordered
// pair is accepted, including the full int range.
func (r *Random) IntInRange(min, max int) (int, error) {
	if min > max {
		return 0, apperrors.InvalidRange("integer range [%d, %d] has min > max", min, max)
	}
	return int(uint64(min) + r.upTo(uint64(max)-uint64(min))), nil
}

// DateInRange returns a uniformly random instant in [start, end]. Spans too
// wide for a time.Duration are drawn at second resolution plus a nanosecond
// offset and clamped to the range.
func (r *Random) DateInRange(start, end time.Time) (time.Time, error) {
	if start.After(end) {
		return time.Time{}, apperrors.InvalidRange("date range [%s, %s] starts after it ends",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	if span := end.Sub(start); span < time.Duration(math.MaxInt64) {
		return start.Add(time.Duration(r.rng.Int64N(int64(span) + 1))), nil
	}

	seconds := r.upTo(uint64(end.Unix()) - uint64(start.Unix()))
	t := time.Unix(start.Unix()+int64(seconds), r.rng.Int64N(int64(time.Second))).In(start.Location())
	switch {
	case t.Before(start):
		return start, nil
	case t.After(end):
		return end, nil
	}
	return t, nil
}

// upTo returns a uniform value in [0, width].
func (r *Random) upTo(width uint64) uint64 {
	if width == math.MaxUint64 {
		return r.rng.Uint64()
	}
	return r.rng.Uint64N(width + 1)
}

// Chance returns true with probability p.
func (r *Random) Chance(p float64) bool {
	return r.rng.Float64() < p
}

// Float64 returns a number in [0, 1).
func (r *Random) Float64() float64 {
	return r.rng.Float64()
}

// Weighted pairs an option with its relative weight.
type Weighted[T any] struct {
	Value  T
	Weight int
}

// WeightedChoice draws one option with probability weight/sum(weights).
// Options are ordered so seeded runs stay reproducible.
func WeightedChoice[T any](r *Random, options []Weighted[T]) (T, error) {
	var zero T
	total := 0
	for _, o := range options {
		if o.Weight < 0 {
			return zero, apperrors.InvalidRange("negative weight %d", o.Weight)
		}
		total += o.Weight
	}
	if total == 0 {
		return zero, apperrors.EmptyInput("weighted choice has no options with positive weight")
	}
	n := r.rng.IntN(total)
	for _, o := range options {
		if n < o.Weight {
			return o.Value, nil
		}
		n -= o.Weight
	}
	return options[len(options)-1].Value, nil
}

// element picks from a package pool known to be non-empty.
func element[T any](r *Random, pool []T) T {
	return pool[r.rng.IntN(len(pool))]
}

// between draws from a constant range known to be ordered.
func (r *Random) between(min, max int) int {
	return min + r.rng.IntN(max-min+1)
}

