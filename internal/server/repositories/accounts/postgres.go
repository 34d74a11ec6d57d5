package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) error {
	query :=
		`INSERT INTO accounts (id, session_id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		account.ID, nullable(account.SessionToken), account.Name, account.Email, account.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	query :=
		`SELECT id, session_id, name, email, password_hash FROM accounts
		 WHERE email = $1
		 `

	return r.findOne(ctx, query, email)
}

func (r *PostgresRepository) FindBySessionToken(ctx context.Context, token string) (*models.Account, error) {
	query :=
		`SELECT id, session_id, name, email, password_hash FROM accounts
		 WHERE session_id = $1
		 `

	return r.findOne(ctx, query, token)
}

func (r *PostgresRepository) UpdateSessionToken(ctx context.Context, id string, token *string) error {
	query :=
		`UPDATE accounts SET session_id = $2
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id, nullable(token))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) findOne(ctx context.Context, query string, arg any) (*models.Account, error) {
	account := &models.Account{}
	var session sql.NullString

	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&account.ID, &session, &account.Name, &account.Email, &account.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if session.Valid {
		account.SessionToken = &session.String
	}

	return account, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
