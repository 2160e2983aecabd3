// Package clientstate holds the state a REST client keeps between calls.
// Reduce is pure: every action yields a new State and the old one stays valid.
package clientstate

import "expense_tracker/internal/domain"

// Status tracks the last request of one slice
type Status struct {
	Loading bool   `json:"loading"`
	Success bool   `json:"success"`
	Failed  bool   `json:"failed"`
	Message string `json:"message,omitempty"`
}

// Auth is the signed-in identity
type Auth struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// SignedIn reports whether a token is held
func (a Auth) SignedIn() bool { return a.Token != "" }

// ExpenseState is the expense slice
type ExpenseState struct {
	Items []domain.Expense `json:"items"`
	Status
}

// BudgetState is the budget slice
type BudgetState struct {
	Items []domain.Budget `json:"items"`
	Status
}

// State is the whole client state
type State struct {
	Auth     Auth         `json:"auth"`
	Expenses ExpenseState `json:"expenses"`
	Budgets  BudgetState  `json:"budgets"`
}

// Slice names a part of State for request lifecycle actions
type Slice string

const (
	SliceExpenses Slice = "expenses"
	SliceBudgets  Slice = "budgets"
)
