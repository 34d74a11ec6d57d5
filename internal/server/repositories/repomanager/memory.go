package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/meals"
)

// MemoryRepositoryManager hands out the same in-memory repositories whatever
// DBTX it is given. Transactions are not emulated.
type MemoryRepositoryManager struct {
	accounts *accounts.MemoryRepository
	meals    *meals.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		accounts: accounts.NewMemoryRepository(),
		meals:    meals.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *MemoryRepositoryManager) Accounts(dbx.DBTX) accounts.Repository {
	return m.accounts
}

func (m *MemoryRepositoryManager) Meals(dbx.DBTX) meals.Repository {
	return m.meals
}
