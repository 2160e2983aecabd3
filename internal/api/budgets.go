package api

import (
	"net/http" // HTTP status codes

	"expense_tracker/internal/service" // Budget service

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact amounts
)

// BudgetRequest is the body of POST /api/budgets
type BudgetRequest struct {
	Category string           `json:"category" binding:"required"` // Category label
	Amount   *decimal.Decimal `json:"amount" binding:"required"`   // Monthly limit
	Month    string           `json:"month" binding:"required"`    // YYYY-MM
}

// ListBudgetsHandler returns the caller's budgets
func ListBudgetsHandler(budgets *service.BudgetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		list, err := budgets.List(c.Request.Context(), uid)
		if err != nil {
			writeError(c, "Budget", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// SetBudgetHandler creates or updates the caller's budget for a category and month
func SetBudgetHandler(budgets *service.BudgetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		var req BudgetRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please add category, amount and month"})
			return
		}
		b, created, err := budgets.Upsert(c.Request.Context(), uid, service.BudgetInput{
			Category: req.Category,
			Amount:   *req.Amount,
			Month:    req.Month,
		})
		if err != nil {
			writeError(c, "Budget", err)
			return
		}
		status := http.StatusOK // Existing budget updated
		if created {
			status = http.StatusCreated
		}
		c.JSON(status, b)
	}
}

// DeleteBudgetHandler removes one of the caller's budgets
func DeleteBudgetHandler(budgets *service.BudgetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Budget")
		if !ok {
			return
		}
		if err := budgets.Delete(c.Request.Context(), uid, id); err != nil {
			writeError(c, "Budget", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}
