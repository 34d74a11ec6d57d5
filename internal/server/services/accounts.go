// Package services contains server-side business logic. AccountService
// registers accounts and issues sessions; SessionResolver maps a session
// token back to its account; MealService manages an account's meals.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/config"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the bcrypt input limit.
const maxPasswordBytes = 72

// Session is a freshly issued session token and its cookie lifetime.
type Session struct {
	Token  string
	MaxAge time.Duration
}

type AccountService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	validate    *validator.Validate
	hashCost    int
	sessionTTL  time.Duration
	dummyHash   []byte
	newID       func() string
}

// NewAccountService builds the service. db may be nil when the repository
// manager does not need a connection (in-memory mode).
func NewAccountService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*AccountService, error) {
	cost := cfg.PasswordHashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), cost)
	if err != nil {
		return nil, fmt.Errorf("error preparing password hasher: %w", err)
	}
	ttl := cfg.SessionValidityDuration
	if ttl <= 0 {
		ttl = common.SessionCookieMaxAge
	}
	return &AccountService{
		db:          db,
		repomanager: m,
		validate:    validator.New(),
		hashCost:    cost,
		sessionTTL:  ttl,
		dummyHash:   dummy,
		newID:       uuid.NewString,
	}, nil
}

// Register validates the credentials, creates the account and issues its
// first session.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*Session, error) {
	if err := s.validateCredentials(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	token := s.newID()
	account := &models.Account{
		ID:           s.newID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		SessionToken: &token,
	}

	if err := s.repomanager.Accounts(s.db).Create(ctx, account); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, fmt.Errorf("%w: email %s is already registered", common.ErrorAlreadyExists, email)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorStore, err)
	}

	return &Session{Token: token, MaxAge: s.sessionTTL}, nil
}

// Authenticate checks the credentials and rotates the account's session
// token. The previous token stops working once the new one is stored.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	var token string

	err := s.withTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		account, err := repo.FindByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				// keep timing close to the known-email path
				_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
				return fmt.Errorf("%w: unknown email", common.ErrInvalidCredentials)
			}
			return fmt.Errorf("%w: %w", common.ErrorStore, err)
		}

		// bcrypt ignores bytes past the limit, so a longer candidate could
		// match a registered password it only starts with.
		if len(password) > maxPasswordBytes {
			_ = bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password[:maxPasswordBytes]))
			return fmt.Errorf("%w: password mismatch", common.ErrInvalidCredentials)
		}

		if err := bcrypt.CompareHashAndPassword(account.PasswordHash, []byte(password)); err != nil {
			return fmt.Errorf("%w: password mismatch", common.ErrInvalidCredentials)
		}

		candidate := s.newID()
		if err := repo.UpdateSessionToken(ctx, account.ID, &candidate); err != nil {
			return fmt.Errorf("%w: %w", common.ErrorStore, err)
		}
		token = candidate
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) || errors.Is(err, common.ErrorStore) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrorStore, err)
	}

	return &Session{Token: token, MaxAge: s.sessionTTL}, nil
}

// Logout clears the account's session token.
func (s *AccountService) Logout(ctx context.Context, account *models.Account) error {
	if err := s.repomanager.Accounts(s.db).UpdateSessionToken(ctx, account.ID, nil); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return fmt.Errorf("%w: %w", common.ErrorStore, err)
	}
	return nil
}

func (s *AccountService) validateCredentials(email, password string) error {
	if err := s.validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: invalid email", common.ErrorValidation)
	}
	if n := len([]rune(password)); n < common.MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, common.MinPasswordLength)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrorValidation, maxPasswordBytes)
	}
	return nil
}

// withTx runs fn inside a transaction when a database is configured, and
// directly against the repository otherwise.
func (s *AccountService) withTx(ctx context.Context, fn func(context.Context, accounts.Repository) error) error {
	if s.db == nil {
		return fn(ctx, s.repomanager.Accounts(nil))
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, s.repomanager.Accounts(tx))
	})
}
