package clientstate

import "expense_tracker/internal/domain"

// Action is anything Reduce understands
type Action interface{ action() }

type (
	// LoggedIn stores the session returned by signup or login
	LoggedIn struct {
		Token string
		User  *domain.User
	}
	// LoggedOut clears the whole state
	LoggedOut struct{}
	// RequestStarted marks a slice as loading
	RequestStarted struct{ Slice Slice }
	// RequestFailed records the backend's error message on a slice
	RequestFailed struct {
		Slice   Slice
		Message string
	}
	// ExpensesLoaded replaces the expense list
	ExpensesLoaded struct{ Expenses []domain.Expense }
	// ExpenseCreated puts a new expense at the front
	ExpenseCreated struct{ Expense domain.Expense }
	// ExpenseDeleted drops an expense by id
	ExpenseDeleted struct{ ID uint }
	// BudgetsLoaded replaces the budget list
	BudgetsLoaded struct{ Budgets []domain.Budget }
	// BudgetSet replaces the budget with the same category and month, or appends it
	BudgetSet struct{ Budget domain.Budget }
	// BudgetDeleted drops a budget by id
	BudgetDeleted struct{ ID uint }
	// Reset clears request status on a slice, keeping its items
	Reset struct{ Slice Slice }
)

func (LoggedIn) action()       {}
func (LoggedOut) action()      {}
func (RequestStarted) action() {}
func (RequestFailed) action()  {}
func (ExpensesLoaded) action() {}
func (ExpenseCreated) action() {}
func (ExpenseDeleted) action() {}
func (BudgetsLoaded) action()  {}
func (BudgetSet) action()      {}
func (BudgetDeleted) action()  {}
func (Reset) action()          {}
