package aggregate

import (
	"sort"
	"time"

	"expense_tracker/internal/domain"

	"github.com/shopspring/decimal"
)

// CategoryTotal is the summed spending of one category
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// DayTotal is the summed spending of one calendar day
type DayTotal struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Amount decimal.Decimal `json:"amount"`
}

// BudgetComparison pairs a category's budget with what was spent
type BudgetComparison struct {
	Category  string          `json:"category"`
	Budget    decimal.Decimal `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	OverBy    decimal.Decimal `json:"overBy"`
}

// Dashboard is the full derived view for one window
type Dashboard struct {
	Range          Range              `json:"range"`
	Month          string             `json:"month"`
	Count          int                `json:"count"`
	Total          decimal.Decimal    `json:"total"`
	CategoryTotals []CategoryTotal    `json:"categoryTotals"`
	Trend          []DayTotal         `json:"trend"`
	BudgetVsActual []BudgetComparison `json:"budgetVsActual"`
}

// Total sums the amounts of expenses
func Total(expenses []domain.Expense) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// CategoryTotals groups expenses by category in first-seen order. Categories
// without expenses do not appear.
func CategoryTotals(expenses []domain.Expense) []CategoryTotal {
	index := map[string]int{}
	out := []CategoryTotal{}
	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(out)
			index[e.Category] = i
			out = append(out, CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		out[i].Total = out[i].Total.Add(e.Amount)
		out[i].Count++
	}
	return out
}

// DailyTrend sums expenses per UTC calendar day of their stored date,
// ascending. Days without expenses are omitted.
func DailyTrend(expenses []domain.Expense) []DayTotal {
	sums := map[string]decimal.Decimal{}
	for _, e := range expenses {
		key := e.Date.UTC().Format("2006-01-02")
		sums[key] = sums[key].Add(e.Amount)
	}
	out := make([]DayTotal, 0, len(sums))
	for day, amount := range sums {
		out = append(out, DayTotal{Date: day, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// BudgetVsActual pairs every category found in budgets or totals with its
// budget and spent amount, zero when missing. Budget categories come first
// in input order, then spending-only categories. When budgets holds several
// entries for one category the first wins. Entries where both are zero are
// dropped.
func BudgetVsActual(budgets []domain.Budget, totals []CategoryTotal) []BudgetComparison {
	order := []string{}
	seen := map[string]bool{}
	limit := map[string]decimal.Decimal{}
	spent := map[string]decimal.Decimal{}
	add := func(c string) {
		if !seen[c] {
			seen[c] = true
			order = append(order, c)
		}
	}
	for _, b := range budgets {
		add(b.Category)
		if _, ok := limit[b.Category]; !ok {
			limit[b.Category] = b.Amount
		}
	}
	for _, t := range totals {
		add(t.Category)
		spent[t.Category] = spent[t.Category].Add(t.Total)
	}

	out := []BudgetComparison{}
	for _, c := range order {
		b, s := limit[c], spent[c]
		if b.IsZero() && s.IsZero() {
			continue
		}
		cmp := BudgetComparison{Category: c, Budget: b, Spent: s, Remaining: decimal.Zero, OverBy: decimal.Zero}
		if diff := b.Sub(s); diff.IsNegative() {
			cmp.OverBy = diff.Neg()
		} else {
			cmp.Remaining = diff
		}
		out = append(out, cmp)
	}
	return out
}

// BudgetsForMonth keeps the budgets set for month (YYYY-MM)
func BudgetsForMonth(budgets []domain.Budget, month string) []domain.Budget {
	out := []domain.Budget{}
	for _, b := range budgets {
		if b.Month == month {
			out = append(out, b)
		}
	}
	return out
}

// MonthOf formats t as YYYY-MM in UTC
func MonthOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}

// Build filters expenses to r and derives every dashboard view. Budgets are
// compared for month; an empty month means the month of the custom day, or
// the current month otherwise.
func Build(expenses []domain.Expense, budgets []domain.Budget, r Range, month string, now time.Time) Dashboard {
	if month == "" {
		month = MonthOf(now)
		if r.Kind == RangeCustom {
			month = MonthOf(r.Day)
		}
	}
	filtered := Filter(expenses, r, now)
	totals := CategoryTotals(filtered)
	return Dashboard{
		Range:          r,
		Month:          month,
		Count:          len(filtered),
		Total:          Total(filtered),
		CategoryTotals: totals,
		Trend:          DailyTrend(filtered),
		BudgetVsActual: BudgetVsActual(BudgetsForMonth(budgets, month), totals),
	}
}
