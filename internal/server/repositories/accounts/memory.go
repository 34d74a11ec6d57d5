package accounts

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

// MemoryRepository keeps accounts in process memory. It is safe for
// concurrent use and hands out copies, never its own records.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]*models.Account)}
}

func (r *MemoryRepository) Create(_ context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.accounts {
		if a.Email == account.Email {
			return common.ErrorAlreadyExists
		}
		if account.SessionToken != nil && a.SessionToken != nil && *a.SessionToken == *account.SessionToken {
			return common.ErrorAlreadyExists
		}
	}
	if _, ok := r.accounts[account.ID]; ok {
		return common.ErrorAlreadyExists
	}

	r.accounts[account.ID] = clone(account)
	return nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.Email == email })
}

func (r *MemoryRepository) FindBySessionToken(_ context.Context, token string) (*models.Account, error) {
	return r.find(func(a *models.Account) bool { return a.SessionToken != nil && *a.SessionToken == token })
}

func (r *MemoryRepository) UpdateSessionToken(_ context.Context, id string, token *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[id]
	if !ok {
		return common.ErrorNotFound
	}
	if token == nil {
		a.SessionToken = nil
		return nil
	}
	t := *token
	a.SessionToken = &t
	return nil
}

func (r *MemoryRepository) find(match func(*models.Account) bool) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if match(a) {
			return clone(a), nil
		}
	}
	return nil, common.ErrorNotFound
}

func clone(a *models.Account) *models.Account {
	c := *a
	c.PasswordHash = append([]byte(nil), a.PasswordHash...)
	if a.SessionToken != nil {
		t := *a.SessionToken
		c.SessionToken = &t
	}
	return &c
}
