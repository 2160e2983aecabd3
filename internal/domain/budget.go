package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget Model. At most one row exists per (UserID, Category, Month).
type Budget struct {
	ID        uint            `gorm:"primaryKey" json:"id"`                                                         // Primary key
	UserID    uint            `gorm:"not null;uniqueIndex:idx_budget_owner_category_month,priority:1" json:"user"` // Owner reference
	Category  string          `gorm:"size:64;not null;uniqueIndex:idx_budget_owner_category_month,priority:2" json:"category"`
	Month     string          `gorm:"size:7;not null;uniqueIndex:idx_budget_owner_category_month,priority:3" json:"month"` // YYYY-MM
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`                                           // Monthly limit
	CreatedAt time.Time       `json:"createdAt"`                                                                           // Creation time
	UpdatedAt time.Time       `json:"updatedAt"`                                                                           // Last update time
}

// OwnerID returns the id of the user owning the budget
func (b Budget) OwnerID() uint { return b.UserID }
