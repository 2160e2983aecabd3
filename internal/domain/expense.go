package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts travel as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Expense Model
type Expense struct {
	ID            uint            `gorm:"primaryKey" json:"id"`                     // Primary key
	UserID        uint            `gorm:"index;not null" json:"user"`               // Owner reference, immutable
	Description   string          `gorm:"size:255;not null" json:"description"`     // What was bought
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"` // Amount spent
	Category      string          `gorm:"size:64;not null" json:"category"`         // Category label
	PaymentMethod string          `gorm:"size:64;not null" json:"paymentMethod"`    // e.g. Cash, Credit Card
	Date          time.Time       `gorm:"index;not null" json:"date"`               // Calendar date of the expense
	Notes         string          `gorm:"type:text" json:"notes,omitempty"`         // Optional notes
	CreatedAt     time.Time       `json:"createdAt"`                                // Creation time
	UpdatedAt     time.Time       `json:"updatedAt"`                                // Last update time
}

// OwnerID returns the id of the user owning the expense
func (e Expense) OwnerID() uint { return e.UserID }
