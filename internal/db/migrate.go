package db

import (
	"fmt" // Error formatting

	"expense_tracker/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate creates tables, missing columns and indexes, including the
	// unique (user_id, category, month) index on budgets
	if err := db.AutoMigrate(&domain.User{}, &domain.Expense{}, &domain.Budget{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
