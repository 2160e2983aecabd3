package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"expense_tracker/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ExpenseLister loads the caller's expenses
type ExpenseLister interface {
	List(ctx context.Context, caller uint) ([]domain.Expense, error)
}

// BudgetLister loads the caller's budgets
type BudgetLister interface {
	List(ctx context.Context, caller uint) ([]domain.Budget, error)
}

const promptTemplate = `As a financial advisor AI, analyze the following expense and budget data for the user.

Expenses: %s
Budgets: %s

Please provide:
1. An analysis of spending patterns.
2. Identify any anomalies or unusual expenses.
3. Recommendations for monthly budgets based on history.
4. Alerts if any budget is exceeded or at risk.

Format the response in JSON with keys: "spending_analysis", "anomalies", "recommendations", "alerts".
Only return valid JSON, no markdown formatting.`

// Analyzer produces spending advice for one user
type Analyzer struct {
	expenses ExpenseLister
	budgets  BudgetLister
	gen      Generator
}

// NewAnalyzer creates an Analyzer
func NewAnalyzer(expenses ExpenseLister, budgets BudgetLister, gen Generator) *Analyzer {
	return &Analyzer{expenses: expenses, budgets: budgets, gen: gen}
}

// Analyze snapshots the caller's data and asks the generator once.
// Generator failures are wrapped in domain.ErrUpstream.
func (a *Analyzer) Analyze(ctx context.Context, caller uint) (*Analysis, error) {
	var (
		expenses []domain.Expense
		budgets  []domain.Budget
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		expenses, err = a.expenses.List(gctx, caller)
		return err
	})
	g.Go(func() (err error) {
		budgets, err = a.budgets.List(gctx, caller)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prompt, err := BuildPrompt(expenses, budgets)
	if err != nil {
		return nil, err
	}

	raw, err := a.gen.Generate(ctx, prompt)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": caller, "error": err.Error()}).Error("AI analysis failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	result := ParseAnalysis(raw)
	logrus.WithFields(logrus.Fields{
		"user_id":  caller,
		"expenses": len(expenses),
		"budgets":  len(budgets),
		"format":   result.Format,
		"type":     "ai_analysis",
	}).Info("AI analysis completed")
	return &result, nil
}

// BuildPrompt renders the advisor prompt with both collections embedded as JSON
func BuildPrompt(expenses []domain.Expense, budgets []domain.Budget) (string, error) {
	if expenses == nil {
		expenses = []domain.Expense{}
	}
	if budgets == nil {
		budgets = []domain.Budget{}
	}
	e, err := json.Marshal(expenses)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(budgets)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(promptTemplate, e, b), nil
}
