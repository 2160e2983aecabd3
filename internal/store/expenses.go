package store

import (
	"context"
	"fmt"

	"expense_tracker/internal/domain"

	"gorm.io/gorm"
)

// ExpenseStore reads and writes expense rows
type ExpenseStore struct {
	db *gorm.DB
}

// NewExpenseStore creates an ExpenseStore over db
func NewExpenseStore(db *gorm.DB) *ExpenseStore {
	return &ExpenseStore{db: db}
}

// ListByOwner returns the owner's expenses, newest date first
func (s *ExpenseStore) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Expense, error) {
	expenses := []domain.Expense{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("date desc").
		Order("id desc").
		Find(&expenses).Error
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// Create inserts e and fills its id and timestamps
func (s *ExpenseStore) Create(ctx context.Context, e *domain.Expense) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

// Get loads one expense by id
func (s *ExpenseStore) Get(ctx context.Context, id uint) (*domain.Expense, error) {
	var e domain.Expense
	if err := s.db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, fmt.Errorf("get expense %d: %w", id, notFound(err))
	}
	return &e, nil
}

// Save writes every column of e back to its row
func (s *ExpenseStore) Save(ctx context.Context, e *domain.Expense) error {
	if err := s.db.WithContext(ctx).Save(e).Error; err != nil {
		return fmt.Errorf("save expense %d: %w", e.ID, err)
	}
	return nil
}

// Delete removes the expense with id
func (s *ExpenseStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Expense{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete expense %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete expense %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
