package meals

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/dbx"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
)

// PostgresRepository implements meal storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, meal *models.Meal) error {
	query := `
		INSERT INTO meals (id, user_id, name, description, type, time)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		meal.ID, meal.OwnerID, meal.Name, meal.Description, string(meal.Status), meal.Time); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOwner orders by time, then id, so equal timestamps come back in a
// stable order.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string) ([]*models.Meal, error) {
	query := `
		SELECT id, user_id, name, description, type, time FROM meals
		WHERE user_id = $1
		ORDER BY time, id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Meal, 0)
	for rows.Next() {
		meal, err := scanMeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, meal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindByOwner(ctx context.Context, ownerID, id string) (*models.Meal, error) {
	query := `
		SELECT id, user_id, name, description, type, time FROM meals
		WHERE user_id = $1 AND id = $2
	`
	meal, err := scanMeal(r.db.QueryRowContext(ctx, query, ownerID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return meal, nil
}

// Update relies on COALESCE so that absent patch fields keep their column
// value; an empty patch still matches (and counts) the row.
func (r *PostgresRepository) Update(ctx context.Context, ownerID, id string, patch models.MealPatch) error {
	query := `
		UPDATE meals SET
			name = COALESCE($3, name),
			description = COALESCE($4, description),
			type = COALESCE($5, type),
			time = COALESCE($6, time)
		WHERE user_id = $1 AND id = $2
	`
	var status, at any
	if patch.Status != nil {
		status = string(*patch.Status)
	}
	if patch.Time != nil {
		at = *patch.Time
	}

	res, err := r.db.ExecContext(ctx, query, ownerID, id, nullable(patch.Name), nullable(patch.Description), status, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, ownerID, id string) error {
	query := `
		DELETE FROM meals
		WHERE user_id = $1 AND id = $2
	`
	res, err := r.db.ExecContext(ctx, query, ownerID, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMeal(s scanner) (*models.Meal, error) {
	var (
		meal   models.Meal
		status string
	)
	if err := s.Scan(&meal.ID, &meal.OwnerID, &meal.Name, &meal.Description, &status, &meal.Time); err != nil {
		return nil, err
	}
	meal.Status = models.DietStatus(status)
	meal.Time = meal.Time.UTC()
	return &meal, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
