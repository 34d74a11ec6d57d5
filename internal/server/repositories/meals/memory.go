package meals

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

// MemoryRepository keeps meals in process memory in insertion order. It is
// safe for concurrent use and hands out copies of its records.
type MemoryRepository struct {
	mu    sync.RWMutex
	meals []*models.Meal
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, meal *models.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(meal.ID) >= 0 {
		return common.ErrorAlreadyExists
	}
	m := *meal
	r.meals = append(r.meals, &m)
	return nil
}

// ListByOwner sorts stably by time, so equal timestamps keep insertion order.
func (r *MemoryRepository) ListByOwner(_ context.Context, ownerID string) ([]*models.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Meal, 0)
	for _, m := range r.meals {
		if m.OwnerID == ownerID {
			c := *m
			result = append(result, &c)
		}
	}
	slices.SortStableFunc(result, func(a, b *models.Meal) int { return a.Time.Compare(b.Time) })
	return result, nil
}

func (r *MemoryRepository) FindByOwner(_ context.Context, ownerID, id string) (*models.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.ownedIndex(ownerID, id)
	if i < 0 {
		return nil, common.ErrorNotFound
	}
	c := *r.meals[i]
	return &c, nil
}

func (r *MemoryRepository) Update(_ context.Context, ownerID, id string, patch models.MealPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.ownedIndex(ownerID, id)
	if i < 0 {
		return common.ErrorNotFound
	}
	patch.Apply(r.meals[i])
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.ownedIndex(ownerID, id)
	if i < 0 {
		return common.ErrorNotFound
	}
	r.meals = slices.Delete(r.meals, i, i+1)
	return nil
}

func (r *MemoryRepository) indexOf(id string) int {
	return slices.IndexFunc(r.meals, func(m *models.Meal) bool { return m.ID == id })
}

func (r *MemoryRepository) ownedIndex(ownerID, id string) int {
	return slices.IndexFunc(r.meals, func(m *models.Meal) bool { return m.ID == id && m.OwnerID == ownerID })
}
