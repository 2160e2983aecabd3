package api

import (
	"net/http" // HTTP status codes
	"time"     // Reference time of the window

	"expense_tracker/internal/aggregate" // Derived views
	"expense_tracker/internal/domain"    // Records
	"expense_tracker/internal/service"   // Expense and budget services

	"github.com/gin-gonic/gin"    // Gin web framework
	"golang.org/x/sync/errgroup" // Concurrent loads
)

// DashboardHandler aggregates the caller's expenses and budgets.
// Query: range=all|today|week|month|year|custom, date=YYYY-MM-DD for custom, month=YYYY-MM.
func DashboardHandler(expenses *service.ExpenseService, budgets *service.BudgetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		r, err := aggregate.ParseRange(c.Query("range"), c.Query("date"))
		if err != nil {
			writeError(c, "Dashboard", err)
			return
		}
		month := c.Query("month")
		if month != "" && !service.ValidMonth(month) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
			return
		}

		var (
			exp []domain.Expense
			bud []domain.Budget
		)
		g, ctx := errgroup.WithContext(c.Request.Context())
		g.Go(func() (err error) {
			exp, err = expenses.List(ctx, uid)
			return err
		})
		g.Go(func() (err error) {
			bud, err = budgets.List(ctx, uid)
			return err
		})
		if err := g.Wait(); err != nil {
			writeError(c, "Dashboard", err)
			return
		}

		c.JSON(http.StatusOK, aggregate.Build(exp, bud, r, month, time.Now().UTC()))
	}
}
