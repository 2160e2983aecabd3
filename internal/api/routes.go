package api

import (
	"net/http" // HTTP status codes

	"expense_tracker/internal/ai"         // Spending advisor
	"expense_tracker/internal/middleware" // Auth and request logging
	"expense_tracker/internal/service"    // Services

	"github.com/gin-gonic/gin" // Gin web framework
)

// Services bundles what the handlers call
type Services struct {
	Auth     *service.AuthService
	Expenses *service.ExpenseService
	Budgets  *service.BudgetService
	Analyzer *ai.Analyzer
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(jwtSecret string, svc Services) (*gin.Engine, error) {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Auth routes
	auth := r.Group("/api/auth")
	auth.POST("/signup", SignupHandler(svc.Auth))                                 // Registration endpoint
	auth.POST("/login", LoginHandler(svc.Auth))                                   // Login endpoint
	auth.GET("/me", middleware.JWTAuthMiddleware(jwtSecret), MeHandler(svc.Auth)) // Profile endpoint

	// Everything below requires a bearer token
	protected := r.Group("/api", middleware.JWTAuthMiddleware(jwtSecret))

	protected.GET("/expenses", ListExpensesHandler(svc.Expenses))
	protected.POST("/expenses", CreateExpenseHandler(svc.Expenses))
	protected.PUT("/expenses/:id", UpdateExpenseHandler(svc.Expenses))
	protected.DELETE("/expenses/:id", DeleteExpenseHandler(svc.Expenses))

	protected.GET("/budgets", ListBudgetsHandler(svc.Budgets))
	protected.POST("/budgets", SetBudgetHandler(svc.Budgets)) // Upsert by category and month
	protected.DELETE("/budgets/:id", DeleteBudgetHandler(svc.Budgets))

	protected.GET("/dashboard", DashboardHandler(svc.Expenses, svc.Budgets))
	protected.POST("/ai/analyze", AnalyzeHandler(svc.Analyzer))

	return r, nil
}
