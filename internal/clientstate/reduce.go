package clientstate

import "expense_tracker/internal/domain"

var succeeded = Status{Success: true}

// Reduce applies a to s and returns the next state. Slices inside s are never written.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case LoggedIn:
		s.Auth = Auth{Token: a.Token, User: a.User}
	case LoggedOut:
		return State{}
	case RequestStarted:
		s = withStatus(s, a.Slice, func(st Status) Status {
			st.Loading = true
			return st
		})
	case RequestFailed:
		s = withStatus(s, a.Slice, func(Status) Status {
			return Status{Failed: true, Message: a.Message}
		})
	case Reset:
		s = withStatus(s, a.Slice, func(Status) Status { return Status{} })

	case ExpensesLoaded:
		s.Expenses = ExpenseState{Items: append([]domain.Expense{}, a.Expenses...), Status: succeeded}
	case ExpenseCreated:
		items := make([]domain.Expense, 0, len(s.Expenses.Items)+1)
		items = append(items, a.Expense)
		s.Expenses = ExpenseState{Items: append(items, s.Expenses.Items...), Status: succeeded}
	case ExpenseDeleted:
		items := make([]domain.Expense, 0, len(s.Expenses.Items))
		for _, e := range s.Expenses.Items {
			if e.ID != a.ID {
				items = append(items, e)
			}
		}
		s.Expenses = ExpenseState{Items: items, Status: succeeded}

	case BudgetsLoaded:
		s.Budgets = BudgetState{Items: append([]domain.Budget{}, a.Budgets...), Status: succeeded}
	case BudgetSet:
		items := append([]domain.Budget{}, s.Budgets.Items...)
		replaced := false
		for i, b := range items {
			if b.Category == a.Budget.Category && b.Month == a.Budget.Month {
				items[i] = a.Budget
				replaced = true
				break
			}
		}
		if !replaced {
			items = append(items, a.Budget)
		}
		s.Budgets = BudgetState{Items: items, Status: succeeded}
	case BudgetDeleted:
		items := make([]domain.Budget, 0, len(s.Budgets.Items))
		for _, b := range s.Budgets.Items {
			if b.ID != a.ID {
				items = append(items, b)
			}
		}
		s.Budgets = BudgetState{Items: items, Status: succeeded}
	}
	return s
}

func withStatus(s State, slice Slice, f func(Status) Status) State {
	switch slice {
	case SliceExpenses:
		s.Expenses.Status = f(s.Expenses.Status)
	case SliceBudgets:
		s.Budgets.Status = f(s.Budgets.Status)
	}
	return s
}
