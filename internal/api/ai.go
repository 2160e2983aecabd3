package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes

	"expense_tracker/internal/ai"     // Spending advisor
	"expense_tracker/internal/domain" // Domain errors

	"github.com/gin-gonic/gin" // Gin web framework
)

// AnalyzeHandler asks the model for spending advice on the caller's data
func AnalyzeHandler(analyzer *ai.Analyzer) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		result, err := analyzer.Analyze(c.Request.Context(), uid)
		if errors.Is(err, domain.ErrUpstream) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "AI Analysis failed", "details": err.Error()})
			return
		} else if err != nil {
			writeError(c, "Analysis", err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
