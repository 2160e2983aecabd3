package store

import (
	"context"
	"fmt"

	"expense_tracker/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetStore reads and writes budget rows
type BudgetStore struct {
	db *gorm.DB
}

// NewBudgetStore creates a BudgetStore over db
func NewBudgetStore(db *gorm.DB) *BudgetStore {
	return &BudgetStore{db: db}
}

// ListByOwner returns the owner's budgets, latest month first
func (s *BudgetStore) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Budget, error) {
	budgets := []domain.Budget{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("month desc").
		Order("category asc").
		Find(&budgets).Error
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// Get loads one budget by id
func (s *BudgetStore) Get(ctx context.Context, id uint) (*domain.Budget, error) {
	var b domain.Budget
	if err := s.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, fmt.Errorf("get budget %d: %w", id, notFound(err))
	}
	return &b, nil
}

// Delete removes the budget with id
func (s *BudgetStore) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Budget{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete budget %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete budget %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Upsert stores b under its (UserID, Category, Month) key. The insert is
// conditional on the unique index, so two racing calls for one key never
// produce two rows; the later amount wins. On return b holds the stored row
// and created reports whether a new row was inserted.
func (s *BudgetStore) Upsert(ctx context.Context, b *domain.Budget) (created bool, err error) {
	amount := b.Amount
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "category"}, {Name: "month"}},
			DoNothing: true,
		}).Create(b)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			created = true
			return nil
		}

		key := tx.Model(&domain.Budget{}).
			Where("user_id = ? AND category = ? AND month = ?", b.UserID, b.Category, b.Month)
		if err := key.Update("amount", amount).Error; err != nil {
			return err
		}
		var stored domain.Budget
		if err := tx.Where("user_id = ? AND category = ? AND month = ?", b.UserID, b.Category, b.Month).
			First(&stored).Error; err != nil {
			return notFound(err)
		}
		*b = stored
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("upsert budget %s/%s: %w", b.Category, b.Month, err)
	}
	return created, nil
}
