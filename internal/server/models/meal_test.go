package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDietStatus(t *testing.T) {
	s, err := ParseDietStatus("on_diet")
	require.NoError(t, err)
	assert.Equal(t, WithinDiet, s)

	s, err = ParseDietStatus("off_diet")
	require.NoError(t, err)
	assert.Equal(t, OffDiet, s)

	_, err = ParseDietStatus("cheat_day")
	assert.Error(t, err)
}

func TestMealPatch_EmptyLeavesMealUnchanged(t *testing.T) {
	m := Meal{ID: "m1", OwnerID: "u1", Name: "Salad", Description: "green", Status: WithinDiet, Time: time.Unix(100, 0)}
	before := m

	p := MealPatch{}
	assert.True(t, p.IsEmpty())
	p.Apply(&m)

	assert.Equal(t, before, m)
}

func TestMealPatch_ApplyOnlySetFields(t *testing.T) {
	m := Meal{ID: "m1", OwnerID: "u1", Name: "Salad", Description: "green", Status: WithinDiet, Time: time.Unix(100, 0)}

	name := "Burger"
	status := OffDiet
	p := MealPatch{Name: &name, Status: &status}
	assert.False(t, p.IsEmpty())
	p.Apply(&m)

	assert.Equal(t, "Burger", m.Name)
	assert.Equal(t, OffDiet, m.Status)
	assert.Equal(t, "green", m.Description)
	assert.True(t, m.Time.Equal(time.Unix(100, 0)))
	assert.Equal(t, "m1", m.ID)
	assert.Equal(t, "u1", m.OwnerID)
}
