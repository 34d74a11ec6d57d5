package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
)

// SessionResolver maps a raw session token to the account holding it.
type SessionResolver struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSessionResolver(db *sql.DB, m repomanager.RepositoryManager) *SessionResolver {
	return &SessionResolver{db: db, repomanager: m}
}

// Resolve returns common.ErrorUnauthorized for an empty or unknown token.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, common.ErrorUnauthorized
	}

	account, err := r.repomanager.Accounts(r.db).FindBySessionToken(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorStore, err)
	}

	return account, nil
}
