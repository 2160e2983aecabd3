// Package store persists users, expenses and budgets through GORM.
package store

import (
	"errors"

	"expense_tracker/internal/domain"

	"gorm.io/gorm"
)

// notFound maps GORM's missing-row error onto the domain sentinel
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}
