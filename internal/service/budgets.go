package service

import (
	"context"
	"time"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// BudgetRepository is the storage the budget service needs
type BudgetRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.Budget, error)
	Get(ctx context.Context, id uint) (*domain.Budget, error)
	Delete(ctx context.Context, id uint) error
	Upsert(ctx context.Context, b *domain.Budget) (created bool, err error)
}

// BudgetService implements owner-scoped budgets with one budget per
// (owner, category, month)
type BudgetService struct {
	repo     BudgetRepository
	rdb      *redis.Client
	cacheTTL time.Duration
}

// NewBudgetService creates a BudgetService. rdb may be nil to disable caching.
func NewBudgetService(repo BudgetRepository, rdb *redis.Client, cacheTTL time.Duration) *BudgetService {
	return &BudgetService{repo: repo, rdb: rdb, cacheTTL: cacheTTL}
}

// List returns the caller's budgets
func (s *BudgetService) List(ctx context.Context, caller uint) ([]domain.Budget, error) {
	base := utils.UserKey(utils.BudgetsKeyPrefix, caller)
	key, err := utils.VersionedKey(ctx, s.rdb, base)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": base, "error": err.Error()}).Warn("Budget cache version read failed")
		return s.repo.ListByOwner(ctx, caller) // Without a version the result cannot be cached safely
	}
	var cached []domain.Budget
	if found, err := utils.GetCache(ctx, s.rdb, key, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Budget cache read failed")
	}

	budgets, err := s.repo.ListByOwner(ctx, caller)
	if err != nil {
		return nil, err
	}
	_ = utils.SetCache(ctx, s.rdb, key, budgets, s.cacheTTL)
	return budgets, nil
}

// Upsert sets the caller's limit for (category, month). An existing budget
// keeps its id and creation time and gets the new amount; otherwise a new
// budget is created. created reports which happened.
func (s *BudgetService) Upsert(ctx context.Context, caller uint, in BudgetInput) (*domain.Budget, bool, error) {
	if err := in.normalize(); err != nil {
		return nil, false, err
	}
	b := &domain.Budget{
		UserID:   caller,
		Category: in.Category,
		Month:    in.Month,
		Amount:   in.Amount,
	}
	created, err := s.repo.Upsert(ctx, b)
	if err != nil {
		return nil, false, err
	}
	s.invalidate(ctx, caller)
	logrus.WithFields(logrus.Fields{
		"user_id":   caller,
		"budget_id": b.ID,
		"category":  b.Category,
		"month":     b.Month,
		"amount":    b.Amount.String(),
		"created":   created,
		"type":      "upsert_budget",
	}).Info("Budget set")
	return b, created, nil
}

// Delete removes the caller's budget id
func (s *BudgetService) Delete(ctx context.Context, caller, id uint) error {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(b, caller); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, caller)
	logrus.WithFields(logrus.Fields{
		"user_id":   caller,
		"budget_id": id,
		"type":      "delete_budget",
	}).Info("Budget deleted")
	return nil
}

func (s *BudgetService) invalidate(ctx context.Context, caller uint) {
	if err := utils.BumpVersion(ctx, s.rdb, utils.UserKey(utils.BudgetsKeyPrefix, caller)); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": caller, "error": err.Error()}).Warn("Budget cache invalidation failed")
	}
}
