package api

import (
	"net/http" // HTTP status codes
	"time"     // Parsed dates

	"expense_tracker/internal/service" // Expense service

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact amounts
)

// ExpenseRequest is the body of POST /api/expenses
type ExpenseRequest struct {
	Description   string           `json:"description" binding:"required"`   // What was bought
	Amount        *decimal.Decimal `json:"amount" binding:"required"`        // Number or numeric string
	Category      string           `json:"category" binding:"required"`      // Category label
	PaymentMethod string           `json:"paymentMethod" binding:"required"` // e.g. Cash
	Date          string           `json:"date"`                             // YYYY-MM-DD or RFC3339, default now
	Notes         string           `json:"notes"`                            // Optional
}

// ExpenseUpdateRequest is the body of PUT /api/expenses/:id; absent fields keep their value
type ExpenseUpdateRequest struct {
	Description   *string          `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	Category      *string          `json:"category"`
	PaymentMethod *string          `json:"paymentMethod"`
	Date          *string          `json:"date"`
	Notes         *string          `json:"notes"`
}

// ListExpensesHandler returns the caller's expenses, newest first
func ListExpensesHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		list, err := expenses.List(c.Request.Context(), uid)
		if err != nil {
			writeError(c, "Expense", err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// CreateExpenseHandler stores a new expense for the caller
func CreateExpenseHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		var req ExpenseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please add all required fields"})
			return
		}
		var date time.Time
		if req.Date != "" {
			d, err := service.ParseDate(req.Date)
			if err != nil {
				writeError(c, "Expense", err)
				return
			}
			date = d
		}
		e, err := expenses.Create(c.Request.Context(), uid, service.ExpenseInput{
			Description:   req.Description,
			Amount:        *req.Amount,
			Category:      req.Category,
			PaymentMethod: req.PaymentMethod,
			Date:          date,
			Notes:         req.Notes,
		})
		if err != nil {
			writeError(c, "Expense", err)
			return
		}
		c.JSON(http.StatusCreated, e)
	}
}

// UpdateExpenseHandler changes the supplied fields of one of the caller's expenses
func UpdateExpenseHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Expense")
		if !ok {
			return
		}
		var req ExpenseUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		patch := service.ExpensePatch{
			Description:   req.Description,
			Amount:        req.Amount,
			Category:      req.Category,
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
		}
		if req.Date != nil && *req.Date != "" {
			d, err := service.ParseDate(*req.Date)
			if err != nil {
				writeError(c, "Expense", err)
				return
			}
			patch.Date = &d
		}
		e, err := expenses.Update(c.Request.Context(), uid, id, patch)
		if err != nil {
			writeError(c, "Expense", err)
			return
		}
		c.JSON(http.StatusOK, e)
	}
}

// DeleteExpenseHandler removes one of the caller's expenses
func DeleteExpenseHandler(expenses *service.ExpenseService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "Expense")
		if !ok {
			return
		}
		if err := expenses.Delete(c.Request.Context(), uid, id); err != nil {
			writeError(c, "Expense", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Expense removed"})
	}
}
