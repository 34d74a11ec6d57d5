// Package accounts declares the account store contract and its PostgreSQL
// and in-memory implementations.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

// Repository persists accounts and their single session token.
type Repository interface {
	// Create inserts a new account. A duplicate email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, account *models.Account) error

	// FindByEmail returns the account registered under email, or common.ErrorNotFound.
	FindByEmail(ctx context.Context, email string) (*models.Account, error)

	// FindBySessionToken returns the account whose current session token equals
	// token, or common.ErrorNotFound.
	FindBySessionToken(ctx context.Context, token string) (*models.Account, error)

	// UpdateSessionToken replaces the account's session token; nil clears it.
	// An unknown id yields common.ErrorNotFound.
	UpdateSessionToken(ctx context.Context, id string, token *string) error
}
