package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/dailydiet/internal/common"
	"github.com/dmitrijs2005/dailydiet/internal/server/dietstats"
	"github.com/dmitrijs2005/dailydiet/internal/server/models"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/meals"
	"github.com/dmitrijs2005/dailydiet/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NewMeal is the input for MealService.Create. A nil Time means "now".
type NewMeal struct {
	Name        string
	Description string
	Status      models.DietStatus
	Time        *time.Time
}

// MealService operates on the meals of an already resolved account. Every
// store call is scoped to that account.
type MealService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewMealService(db *sql.DB, m repomanager.RepositoryManager) *MealService {
	return &MealService{db: db, repomanager: m, now: time.Now}
}

func (s *MealService) repo() meals.Repository {
	return s.repomanager.Meals(s.db)
}

func (s *MealService) Create(ctx context.Context, account *models.Account, in NewMeal) (*models.Meal, error) {
	if !in.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown meal type %q", common.ErrorValidation, in.Status)
	}

	at := s.now()
	if in.Time != nil {
		at = *in.Time
	}

	meal := &models.Meal{
		ID:          uuid.NewString(),
		OwnerID:     account.ID,
		Name:        in.Name,
		Description: in.Description,
		Status:      in.Status,
		Time:        normalizeTime(at),
	}

	if err := s.repo().Create(ctx, meal); err != nil {
		return nil, storeError(err)
	}
	return meal, nil
}

// List returns the account's meals ordered by time.
func (s *MealService) List(ctx context.Context, account *models.Account) ([]*models.Meal, error) {
	list, err := s.repo().ListByOwner(ctx, account.ID)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *MealService) Get(ctx context.Context, account *models.Account, id string) (*models.Meal, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	meal, err := s.repo().FindByOwner(ctx, account.ID, id)
	if err != nil {
		return nil, storeError(err)
	}
	return meal, nil
}

func (s *MealService) Update(ctx context.Context, account *models.Account, id string, patch models.MealPatch) error {
	if err := validateID(id); err != nil {
		return err
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: unknown meal type %q", common.ErrorValidation, *patch.Status)
	}
	if patch.Time != nil {
		t := normalizeTime(*patch.Time)
		patch.Time = &t
	}

	if err := s.repo().Update(ctx, account.ID, id, patch); err != nil {
		return storeError(err)
	}
	return nil
}

func (s *MealService) Delete(ctx context.Context, account *models.Account, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	if err := s.repo().Delete(ctx, account.ID, id); err != nil {
		return storeError(err)
	}
	return nil
}

// Metrics summarises the account's meals in chronological order.
func (s *MealService) Metrics(ctx context.Context, account *models.Account) (*models.Metrics, error) {
	list, err := s.repo().ListByOwner(ctx, account.ID)
	if err != nil {
		return nil, storeError(err)
	}
	m := dietstats.Compute(list)
	return &m, nil
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformed meal id", common.ErrorValidation)
	}
	return nil
}

// normalizeTime matches what a timestamptz column round-trips.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

// storeError passes not-found through and marks anything else as a store failure.
func storeError(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrorStore, err)
}
