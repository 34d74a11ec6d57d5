// Package meals declares the meal store contract and its PostgreSQL and
// in-memory implementations. Every operation is scoped by owner id.
package meals

import (
	"context"

	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

// Repository persists meals. A meal owned by another account is reported as
// common.ErrorNotFound, exactly like a meal that does not exist.
type Repository interface {
	Create(ctx context.Context, meal *models.Meal) error

	// ListByOwner returns the owner's meals in ascending time order.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Meal, error)

	FindByOwner(ctx context.Context, ownerID, id string) (*models.Meal, error)

	// Update applies the set fields of patch. An empty patch still verifies
	// that the meal exists for the owner.
	Update(ctx context.Context, ownerID, id string, patch models.MealPatch) error

	Delete(ctx context.Context, ownerID, id string) error
}
