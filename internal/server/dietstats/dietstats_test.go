package dietstats

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

var base = time.Date(2023, 7, 24, 12, 0, 0, 0, time.UTC)

// sequence builds meals an hour apart with the given statuses.
func sequence(statuses ...models.DietStatus) []*models.Meal {
	meals := make([]*models.Meal, len(statuses))
	for i, s := range statuses {
		meals[i] = &models.Meal{ID: string(rune('a' + i)), Status: s, Time: base.Add(time.Duration(i) * time.Hour)}
	}
	return meals
}

const (
	on  = models.WithinDiet
	off = models.OffDiet
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name  string
		meals []*models.Meal
		want  models.Metrics
	}{
		{
			name:  "empty",
			meals: nil,
			want:  models.Metrics{},
		},
		{
			name:  "all within diet",
			meals: sequence(on, on, on, on),
			want:  models.Metrics{TotalCount: 4, WithinDietCount: 4, LongestWithinDietStreak: 4},
		},
		{
			name:  "all off diet",
			meals: sequence(off, off),
			want:  models.Metrics{TotalCount: 2, OffDietCount: 2},
		},
		{
			name:  "alternating",
			meals: sequence(on, off, on, off, on, off, on),
			want:  models.Metrics{TotalCount: 7, WithinDietCount: 4, OffDietCount: 3, LongestWithinDietStreak: 1},
		},
		{
			name:  "off on on off on",
			meals: sequence(off, on, on, off, on),
			want:  models.Metrics{TotalCount: 5, WithinDietCount: 3, OffDietCount: 2, LongestWithinDietStreak: 2},
		},
		{
			name:  "longest run at the end",
			meals: sequence(on, off, on, on, on),
			want:  models.Metrics{TotalCount: 5, WithinDietCount: 4, OffDietCount: 1, LongestWithinDietStreak: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compute(tt.meals))
		})
	}
}

func TestCompute_OrdersByTimeNotInsertion(t *testing.T) {
	// Inserted as on, on, off, on but the off-diet meal happened between the
	// first two, so in time order the sequence is on, off, on, on.
	meals := []*models.Meal{
		{ID: "1", Status: on, Time: base},
		{ID: "2", Status: on, Time: base.Add(3 * time.Hour)},
		{ID: "3", Status: off, Time: base.Add(1 * time.Hour)},
		{ID: "4", Status: on, Time: base.Add(4 * time.Hour)},
	}

	got := Compute(meals)

	assert.Equal(t, 2, got.LongestWithinDietStreak)
	assert.Equal(t, "2", meals[1].ID, "input must not be reordered")
}

func TestCompute_EqualTimestampsKeepGivenOrder(t *testing.T) {
	meals := []*models.Meal{
		{ID: "1", Status: on, Time: base},
		{ID: "2", Status: off, Time: base},
		{ID: "3", Status: on, Time: base},
	}

	assert.Equal(t, 1, Compute(meals).LongestWithinDietStreak)
}

func TestCompute_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 500; i++ {
		n := r.IntN(30)
		statuses := make([]models.DietStatus, n)
		for j := range statuses {
			if r.IntN(3) == 0 {
				statuses[j] = off
			} else {
				statuses[j] = on
			}
		}
		meals := sequence(statuses...)
		r.Shuffle(len(meals), func(a, b int) { meals[a], meals[b] = meals[b], meals[a] })

		m := Compute(meals)

		require.Equal(t, m.TotalCount, m.WithinDietCount+m.OffDietCount)
		require.LessOrEqual(t, m.LongestWithinDietStreak, m.WithinDietCount)
		require.Equal(t, m.WithinDietCount == m.LongestWithinDietStreak, !offBetweenOnDiet(statuses), "statuses %v", statuses)
	}
}

// offBetweenOnDiet reports whether an off-diet meal lies between the first
// and last within-diet meal of a time-ordered status list.
func offBetweenOnDiet(statuses []models.DietStatus) bool {
	first, last := -1, -1
	for i, s := range statuses {
		if s == on {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	for i := first + 1; i < last; i++ {
		if statuses[i] == off {
			return true
		}
	}
	return false
}
