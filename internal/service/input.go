package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"expense_tracker/internal/domain"

	"github.com/shopspring/decimal"
)

var monthRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Column sizes of the expense and budget tables, in characters
const (
	maxDescription = 255
	maxLabel       = 64 // category and payment method
)

// ExpenseInput carries the fields of a new expense
type ExpenseInput struct {
	Description   string
	Amount        decimal.Decimal
	Category      string
	PaymentMethod string
	Date          time.Time // zero means now
	Notes         string
}

// ExpensePatch carries the fields to change; nil fields keep their value
type ExpensePatch struct {
	Description   *string
	Amount        *decimal.Decimal
	Category      *string
	PaymentMethod *string
	Date          *time.Time
	Notes         *string
}

// BudgetInput carries the key and limit of a budget
type BudgetInput struct {
	Category string
	Amount   decimal.Decimal
	Month    string // YYYY-MM
}

// ValidMonth reports whether s is a YYYY-MM month
func ValidMonth(s string) bool { return monthRe.MatchString(s) }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrValidation)
}

func (in *ExpenseInput) normalize() error {
	in.Description = strings.TrimSpace(in.Description)
	in.Category = strings.TrimSpace(in.Category)
	in.PaymentMethod = strings.TrimSpace(in.PaymentMethod)
	switch {
	case in.Description == "":
		return invalid("description is required")
	case in.Category == "":
		return invalid("category is required")
	case in.PaymentMethod == "":
		return invalid("paymentMethod is required")
	}
	return checkLengths(in.Description, in.Category, in.PaymentMethod)
}

func checkLengths(description, category, paymentMethod string) error {
	switch {
	case utf8.RuneCountInString(description) > maxDescription:
		return invalid("description must be at most %d characters", maxDescription)
	case utf8.RuneCountInString(category) > maxLabel:
		return invalid("category must be at most %d characters", maxLabel)
	case utf8.RuneCountInString(paymentMethod) > maxLabel:
		return invalid("paymentMethod must be at most %d characters", maxLabel)
	}
	return nil
}

func (in *BudgetInput) normalize() error {
	in.Category = strings.TrimSpace(in.Category)
	in.Month = strings.TrimSpace(in.Month)
	if in.Category == "" {
		return invalid("category is required")
	}
	if utf8.RuneCountInString(in.Category) > maxLabel {
		return invalid("category must be at most %d characters", maxLabel)
	}
	if !monthRe.MatchString(in.Month) {
		return invalid("month %q must be YYYY-MM", in.Month)
	}
	return nil
}

// validate checks the supplied fields against the column sizes
func (p ExpensePatch) validate() error {
	val := func(s *string) string {
		if s == nil {
			return ""
		}
		return strings.TrimSpace(*s)
	}
	return checkLengths(val(p.Description), val(p.Category), val(p.PaymentMethod))
}

// apply copies the patch fields onto e. Empty strings and a zero amount
// count as absent, so a patch never blanks a stored value.
func (p ExpensePatch) apply(e *domain.Expense) {
	if p.Description != nil && strings.TrimSpace(*p.Description) != "" {
		e.Description = strings.TrimSpace(*p.Description)
	}
	if p.Amount != nil && !p.Amount.IsZero() {
		e.Amount = *p.Amount
	}
	if p.Category != nil && strings.TrimSpace(*p.Category) != "" {
		e.Category = strings.TrimSpace(*p.Category)
	}
	if p.PaymentMethod != nil && strings.TrimSpace(*p.PaymentMethod) != "" {
		e.PaymentMethod = strings.TrimSpace(*p.PaymentMethod)
	}
	if p.Date != nil && !p.Date.IsZero() {
		e.Date = p.Date.UTC()
	}
	if p.Notes != nil && *p.Notes != "" {
		e.Notes = *p.Notes
	}
}

// ParseDate accepts YYYY-MM-DD or RFC3339 timestamps
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, invalid("date %q must be YYYY-MM-DD or RFC3339", s)
}
