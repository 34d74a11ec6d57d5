// Package dietstats computes diet-adherence statistics over an account's meals.
package dietstats

import (
	"slices"

	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

// Compute counts meals by diet status and finds the longest run of
// consecutive within-diet meals in ascending time order.
//
// Meals already in ascending time order are used as given, so meals sharing a
// timestamp keep the order the store returned them in. Otherwise a stably
// sorted copy is walked; the input slice is never modified.
func Compute(meals []*models.Meal) models.Metrics {
	if !slices.IsSortedFunc(meals, byTime) {
		meals = slices.Clone(meals)
		slices.SortStableFunc(meals, byTime)
	}

	var m models.Metrics
	current := 0
	for _, meal := range meals {
		m.TotalCount++
		switch meal.Status {
		case models.WithinDiet:
			m.WithinDietCount++
			current++
			m.LongestWithinDietStreak = max(m.LongestWithinDietStreak, current)
		default:
			m.OffDietCount++
			current = 0
		}
	}
	return m
}

func byTime(a, b *models.Meal) int {
	return a.Time.Compare(b.Time)
}
