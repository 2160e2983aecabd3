package service

import (
	"fmt"

	"expense_tracker/internal/domain"
)

// Owned is a record scoped to a single user
type Owned interface {
	OwnerID() uint
}

// Authorize lets a mutation proceed only when caller owns rec. It is
// evaluated on every call against a freshly loaded record.
func Authorize(rec Owned, caller uint) error {
	if caller == 0 {
		return fmt.Errorf("no identity: %w", domain.ErrUnauthorized)
	}
	if rec.OwnerID() != caller {
		return domain.ErrUnauthorized
	}
	return nil
}
