package models

import (
	"fmt"
	"time"
)

// DietStatus classifies a meal as within or outside the diet plan.
type DietStatus string

const (
	WithinDiet DietStatus = "on_diet"
	OffDiet    DietStatus = "off_diet"
)

// Valid reports whether s is one of the known statuses.
func (s DietStatus) Valid() bool {
	return s == WithinDiet || s == OffDiet
}

// ParseDietStatus converts the wire representation into a DietStatus.
func ParseDietStatus(s string) (DietStatus, error) {
	status := DietStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown diet status %q", s)
	}
	return status, nil
}

// Meal is a single recorded meal owned by exactly one account.
//
// Time is kept in UTC with microsecond precision, the resolution of a
// timestamptz column. Input with an offset or finer digits is read back as
// the same instant in that form.
type Meal struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"user_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Status      DietStatus `json:"type"`
	Time        time.Time  `json:"time"`
}

// MealPatch carries a partial meal update. Nil fields are left unchanged.
type MealPatch struct {
	Name        *string
	Description *string
	Status      *DietStatus
	Time        *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p MealPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Status == nil && p.Time == nil
}

// Apply copies the set fields of p onto m.
func (p MealPatch) Apply(m *Meal) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Time != nil {
		m.Time = *p.Time
	}
}

// Metrics summarises an account's diet adherence.
type Metrics struct {
	TotalCount              int
	WithinDietCount         int
	OffDietCount            int
	LongestWithinDietStreak int
}
