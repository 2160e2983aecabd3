package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes

	"expense_tracker/internal/domain"  // Domain errors
	"expense_tracker/internal/service" // Auth service

	"github.com/gin-gonic/gin" // Gin web framework
)

// SignupRequest is the body of POST /api/auth/signup
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`     // Display name
	Email    string `json:"email" binding:"required"`    // Login email
	Password string `json:"password" binding:"required"` // Plain password, hashed by the service
	Currency string `json:"currency"`                    // Optional, defaults to USD
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Login email
	Password string `json:"password" binding:"required"` // Plain password
}

// SignupHandler registers a user and returns a session
func SignupHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please add all fields"})
			return
		}
		session, err := auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password, req.Currency)
		if err != nil {
			writeError(c, "User", err)
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// LoginHandler authenticates a user and returns a session
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		session, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		} else if err != nil {
			writeError(c, "User", err)
			return
		}
		c.JSON(http.StatusOK, session)
	}
}

// MeHandler returns the caller's profile
func MeHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := caller(c)
		if !ok {
			return
		}
		user, err := auth.Me(c.Request.Context(), uid)
		if err != nil {
			writeError(c, "User", err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
