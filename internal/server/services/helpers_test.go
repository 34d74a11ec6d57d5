package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/config"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/meals"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// --- helpers ---

var errStoreDown = errors.New("store is down")

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:               "k",
		SessionValidityDuration: time.Hour,
		PasswordHashCost:        bcrypt.MinCost,
	}
}

func newAccountService(t *testing.T, db *sql.DB, rm repomanager.RepositoryManager) *AccountService {
	t.Helper()
	s, err := NewAccountService(db, rm, testConfig())
	require.NoError(t, err)
	return s
}

type fakeAccountsRepo struct {
	findOut   *models.Account
	findErr   error
	updateErr error
	createErr error

	updatedID    string
	updatedToken *string
}

func (f *fakeAccountsRepo) Create(context.Context, *models.Account) error { return f.createErr }
func (f *fakeAccountsRepo) FindByEmail(context.Context, string) (*models.Account, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeAccountsRepo) FindBySessionToken(context.Context, string) (*models.Account, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}
func (f *fakeAccountsRepo) UpdateSessionToken(_ context.Context, id string, token *string) error {
	f.updatedID, f.updatedToken = id, token
	return f.updateErr
}

type fakeMealsRepo struct {
	err error
}

func (f *fakeMealsRepo) Create(context.Context, *models.Meal) error { return f.err }
func (f *fakeMealsRepo) ListByOwner(context.Context, string) ([]*models.Meal, error) {
	return nil, f.err
}
func (f *fakeMealsRepo) FindByOwner(context.Context, string, string) (*models.Meal, error) {
	return nil, f.err
}
func (f *fakeMealsRepo) Update(context.Context, string, string, models.MealPatch) error { return f.err }
func (f *fakeMealsRepo) Delete(context.Context, string, string) error                   { return f.err }

type fakeRepoManager struct {
	a accounts.Repository
	m meals.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Accounts(dbx.DBTX) accounts.Repository      { return m.a }
func (m *fakeRepoManager) Meals(dbx.DBTX) meals.Repository            { return m.m }
