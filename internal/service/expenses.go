package service

import (
	"context"
	"time"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/utils"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ExpenseRepository is the storage the expense service needs
type ExpenseRepository interface {
	ListByOwner(ctx context.Context, ownerID uint) ([]domain.Expense, error)
	Create(ctx context.Context, e *domain.Expense) error
	Get(ctx context.Context, id uint) (*domain.Expense, error)
	Save(ctx context.Context, e *domain.Expense) error
	Delete(ctx context.Context, id uint) error
}

// ExpenseService implements owner-scoped expense CRUD
type ExpenseService struct {
	repo     ExpenseRepository
	rdb      *redis.Client
	cacheTTL time.Duration
	now      func() time.Time
}

// NewExpenseService creates an ExpenseService. rdb may be nil to disable caching.
func NewExpenseService(repo ExpenseRepository, rdb *redis.Client, cacheTTL time.Duration) *ExpenseService {
	return &ExpenseService{repo: repo, rdb: rdb, cacheTTL: cacheTTL, now: time.Now}
}

// List returns the caller's expenses, newest first
func (s *ExpenseService) List(ctx context.Context, caller uint) ([]domain.Expense, error) {
	base := utils.UserKey(utils.ExpensesKeyPrefix, caller)
	key, err := utils.VersionedKey(ctx, s.rdb, base)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": base, "error": err.Error()}).Warn("Expense cache version read failed")
		return s.repo.ListByOwner(ctx, caller) // Without a version the result cannot be cached safely
	}
	var cached []domain.Expense
	if found, err := utils.GetCache(ctx, s.rdb, key, &cached); err == nil && found {
		return cached, nil
	} else if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Expense cache read failed")
	}

	expenses, err := s.repo.ListByOwner(ctx, caller)
	if err != nil {
		return nil, err
	}
	_ = utils.SetCache(ctx, s.rdb, key, expenses, s.cacheTTL)
	return expenses, nil
}

// Create stores a new expense owned by caller
func (s *ExpenseService) Create(ctx context.Context, caller uint, in ExpenseInput) (*domain.Expense, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	date := in.Date
	if date.IsZero() {
		date = s.now()
	}
	e := &domain.Expense{
		UserID:        caller,
		Description:   in.Description,
		Amount:        in.Amount,
		Category:      in.Category,
		PaymentMethod: in.PaymentMethod,
		Date:          date.UTC(),
		Notes:         in.Notes,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	s.invalidate(ctx, caller)
	logrus.WithFields(logrus.Fields{
		"user_id":    caller,
		"expense_id": e.ID,
		"category":   e.Category,
		"amount":     e.Amount.String(),
		"type":       "create_expense",
	}).Info("Expense created")
	return e, nil
}

// Update changes the supplied fields of the caller's expense id
func (s *ExpenseService) Update(ctx context.Context, caller, id uint, patch ExpensePatch) (*domain.Expense, error) {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(e, caller); err != nil {
		return nil, err
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}
	patch.apply(e)
	e.UserID = caller
	if err := s.repo.Save(ctx, e); err != nil {
		return nil, err
	}
	s.invalidate(ctx, caller)
	logrus.WithFields(logrus.Fields{
		"user_id":    caller,
		"expense_id": e.ID,
		"type":       "update_expense",
	}).Info("Expense updated")
	return e, nil
}

// Delete removes the caller's expense id
func (s *ExpenseService) Delete(ctx context.Context, caller, id uint) error {
	e, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := Authorize(e, caller); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, caller)
	logrus.WithFields(logrus.Fields{
		"user_id":    caller,
		"expense_id": id,
		"type":       "delete_expense",
	}).Info("Expense deleted")
	return nil
}

func (s *ExpenseService) invalidate(ctx context.Context, caller uint) {
	if err := utils.BumpVersion(ctx, s.rdb, utils.UserKey(utils.ExpensesKeyPrefix, caller)); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": caller, "error": err.Error()}).Warn("Expense cache invalidation failed")
	}
}
