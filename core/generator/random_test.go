package generator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

func TestPickOne(t *testing.T) {
	r := NewRandom(7)

	_, err := PickOne(r, []string{})
	assert.True(t, apperrors.IsEmptyInput(err))

	set := []string{"a", "b", "c"}
	for range 100 {
		v, err := PickOne(r, set)
		require.NoError(t, err)
		assert.Contains(t, set, v)
	}
}

func TestIntInRange(t *testing.T) {
	r := NewRandom(7)

	_, err := r.IntInRange(5, 1)
	assert.True(t, apperrors.IsInvalidRange(err))

	v, err := r.IntInRange(4, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, v)

	seen := map[int]bool{}
	for range 500 {
		v, err := r.IntInRange(1, 5)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 5)
		seen[v] = true
	}
	assert.Len(t, seen, 5, "both bounds are inclusive")

	bounds := []struct{ min, max int }{
		{math.MinInt, math.MaxInt},
		{math.MinInt, 0},
		{-1, math.MaxInt},
		{math.MaxInt - 1, math.MaxInt},
		{math.MinInt, math.MinInt + 1},
	}
	for _, b := range bounds {
		for range 50 {
			v, err := r.IntInRange(b.min, b.max)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, b.min)
			assert.LessOrEqual(t, v, b.max)
		}
	}
}

func TestDateInRange(t *testing.T) {
	r := NewRandom(7)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(72 * time.Hour)

	_, err := r.DateInRange(end, start)
	assert.True(t, apperrors.IsInvalidRange(err))

	same, err := r.DateInRange(start, start)
	require.NoError(t, err)
	assert.True(t, same.Equal(start))

	for range 200 {
		d, err := r.DateInRange(start, end)
		require.NoError(t, err)
		assert.False(t, d.Before(start))
		assert.False(t, d.After(end))
	}
}

func TestDateInRange_WideSpans(t *testing.T) {
	r := NewRandom(7)
	tests := []struct {
		name       string
		start, end time.Time
	}{
		{"zero time to year 3000", time.Time{}, time.Date(3000, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"millennium", time.Date(1000, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"sub-second edges", time.Date(1500, 1, 1, 0, 0, 0, 999_999_999, time.UTC), time.Date(1900, 1, 1, 0, 0, 0, 1, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for range 200 {
				d, err := r.DateInRange(tt.start, tt.end)
				require.NoError(t, err)
				assert.False(t, d.Before(tt.start))
				assert.False(t, d.After(tt.end))
			}
		})
	}

	a, err := NewRandom(11).DateInRange(tests[0].start, tests[0].end)
	require.NoError(t, err)
	b, err := NewRandom(11).DateInRange(tests[0].start, tests[0].end)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestWeightedChoice(t *testing.T) {
	r := NewRandom(11)

	_, err := WeightedChoice(r, []Weighted[string]{})
	assert.True(t, apperrors.IsEmptyInput(err))

	_, err = WeightedChoice(r, []Weighted[string]{{"x", 0}})
	assert.True(t, apperrors.IsEmptyInput(err))

	_, err = WeightedChoice(r, []Weighted[string]{{"x", -1}, {"y", 2}})
	assert.True(t, apperrors.IsInvalidRange(err))

	counts := map[string]int{}
	const draws = 20000
	options := []Weighted[string]{{"customer", 80}, {"admin", 20}}
	for range draws {
		v, err := WeightedChoice(r, options)
		require.NoError(t, err)
		counts[v]++
	}
	assert.InDelta(t, 0.8, float64(counts["customer"])/draws, 0.02)
	assert.InDelta(t, 0.2, float64(counts["admin"])/draws, 0.02)
}

func TestNewRandom_SeedIsReproducible(t *testing.T) {
	a, b := NewRandom(42), NewRandom(42)
	for range 50 {
		x, _ := a.IntInRange(0, 1_000_000)
		y, _ := b.IntInRange(0, 1_000_000)
		assert.Equal(t, x, y)
	}
}
