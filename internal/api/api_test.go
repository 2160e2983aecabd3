package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"expense_tracker/internal/ai"
	"expense_tracker/internal/api"
	"expense_tracker/internal/db/dbtest"
	"expense_tracker/internal/domain"
	"expense_tracker/internal/service"
	"expense_tracker/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const jwtSecret = "test-secret"

type stubGenerator struct {
	reply string
	err   error
}

func (g *stubGenerator) Generate(context.Context, string) (string, error) { return g.reply, g.err }

// APITestSuite drives the full router over an in-memory database and miniredis
type APITestSuite struct {
	suite.Suite
	router *gin.Engine
	gen    *stubGenerator
	alice  string
	bob    string
}

func (suite *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	gdb := dbtest.New(suite.T())
	mr := miniredis.RunT(suite.T())
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	expenses := service.NewExpenseService(store.NewExpenseStore(gdb), rdb, time.Minute)
	budgets := service.NewBudgetService(store.NewBudgetStore(gdb), rdb, time.Minute)
	suite.gen = &stubGenerator{reply: "Spending looks fine"}

	r, err := api.NewRouter(jwtSecret, api.Services{
		Auth:     service.NewAuthService(store.NewUserStore(gdb), jwtSecret, time.Hour),
		Expenses: expenses,
		Budgets:  budgets,
		Analyzer: ai.NewAnalyzer(expenses, budgets, suite.gen),
	})
	require.NoError(suite.T(), err)
	suite.router = r

	suite.alice = suite.signup("Alice", "alice@example.com")
	suite.bob = suite.signup("Bob", "bob@example.com")
}

func (suite *APITestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(suite.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) signup(name, email string) string {
	w := suite.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": name, "email": email, "password": "secret123"})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())
	var session service.Session
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &session))
	require.NotEmpty(suite.T(), session.Token)
	return session.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (suite *APITestSuite) createExpense(token, category string, amount float64, date string) domain.Expense {
	w := suite.do(http.MethodPost, "/api/expenses", token, gin.H{
		"description": category + " item", "amount": amount, "category": category,
		"paymentMethod": "Cash", "date": date,
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())
	return decode[domain.Expense](suite.T(), w)
}

func (suite *APITestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"status":"ok"}`, w.Body.String())
}

func (suite *APITestSuite) TestSignupLoginMe() {
	w := suite.do(http.MethodPost, "/api/auth/signup", "", gin.H{"name": "Dup", "email": "ALICE@example.com", "password": "secret123"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.JSONEq(suite.T(), `{"error":"User already exists"}`, w.Body.String())

	w = suite.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "alice@example.com", "password": "wrong-pass"})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "Alice@Example.com", "password": "secret123"})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	session := decode[service.Session](suite.T(), w)
	assert.Equal(suite.T(), "USD", session.User.Currency)

	w = suite.do(http.MethodGet, "/api/auth/me", session.Token, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	me := decode[map[string]any](suite.T(), w)
	assert.Equal(suite.T(), "alice@example.com", me["email"])
	assert.NotContains(suite.T(), me, "password")
}

func (suite *APITestSuite) TestProtectedRoutesNeedToken() {
	for _, path := range []string{"/api/expenses", "/api/budgets", "/api/dashboard", "/api/auth/me"} {
		w := suite.do(http.MethodGet, path, "", nil)
		assert.Equal(suite.T(), http.StatusUnauthorized, w.Code, path)
	}
	w := suite.do(http.MethodPost, "/api/ai/analyze", "bogus", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestExpenseLifecycle() {
	older := suite.createExpense(suite.alice, "Food", 12.5, "2024-05-01")
	newer := suite.createExpense(suite.alice, "Transport", 3, "2024-05-03")
	suite.createExpense(suite.bob, "Food", 99, "2024-05-02")

	w := suite.do(http.MethodGet, "/api/expenses", suite.alice, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	list := decode[[]domain.Expense](suite.T(), w)
	require.Len(suite.T(), list, 2)
	assert.Equal(suite.T(), newer.ID, list[0].ID, "date desc")
	assert.Equal(suite.T(), older.ID, list[1].ID)

	w = suite.do(http.MethodPut, "/api/expenses/"+strconv.Itoa(int(older.ID)), suite.alice, gin.H{"amount": "20.00", "notes": "receipt"})
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	updated := decode[domain.Expense](suite.T(), w)
	assert.True(suite.T(), decimal.NewFromInt(20).Equal(updated.Amount))
	assert.Equal(suite.T(), "receipt", updated.Notes)
	assert.Equal(suite.T(), "Food", updated.Category)

	w = suite.do(http.MethodDelete, "/api/expenses/"+strconv.Itoa(int(older.ID)), suite.alice, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"message":"Expense removed"}`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/expenses", suite.alice, nil)
	assert.Len(suite.T(), decode[[]domain.Expense](suite.T(), w), 1)
}

func (suite *APITestSuite) TestExpenseValidation() {
	w := suite.do(http.MethodPost, "/api/expenses", suite.alice, gin.H{"description": "x", "category": "Food", "paymentMethod": "Cash"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code, "amount is required")

	w = suite.do(http.MethodPost, "/api/expenses", suite.alice, gin.H{
		"description": "x", "amount": 1, "category": "Food", "paymentMethod": "Cash", "date": "05/01/2024",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/expenses", suite.alice, gin.H{
		"description": "x", "amount": 1, "category": strings.Repeat("c", 65), "paymentMethod": "Cash",
	})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code, "oversized labels are rejected before reaching the database")
}

func (suite *APITestSuite) TestOwnershipGuard() {
	e := suite.createExpense(suite.alice, "Food", 30, "2024-05-01")
	path := "/api/expenses/" + strconv.Itoa(int(e.ID))

	w := suite.do(http.MethodPut, path, suite.bob, gin.H{"amount": 1})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.JSONEq(suite.T(), `{"error":"User not authorized"}`, w.Body.String())

	w = suite.do(http.MethodDelete, path, suite.bob, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/expenses", suite.alice, nil)
	list := decode[[]domain.Expense](suite.T(), w)
	require.Len(suite.T(), list, 1)
	assert.True(suite.T(), decimal.NewFromInt(30).Equal(list[0].Amount), "record unmodified")

	for _, missing := range []string{"/api/expenses/9999", "/api/expenses/abc"} {
		w = suite.do(http.MethodDelete, missing, suite.alice, nil)
		assert.Equal(suite.T(), http.StatusNotFound, w.Code, missing)
		assert.JSONEq(suite.T(), `{"error":"Expense not found"}`, w.Body.String())
	}
}

func (suite *APITestSuite) TestBudgetUpsertStatusCodes() {
	w := suite.do(http.MethodPost, "/api/budgets", suite.alice, gin.H{"category": "Food", "amount": 200, "month": "2024-05"})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())
	first := decode[domain.Budget](suite.T(), w)

	w = suite.do(http.MethodPost, "/api/budgets", suite.alice, gin.H{"category": "Food", "amount": 250, "month": "2024-05"})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	second := decode[domain.Budget](suite.T(), w)
	assert.Equal(suite.T(), first.ID, second.ID)
	assert.True(suite.T(), decimal.NewFromInt(250).Equal(second.Amount))

	w = suite.do(http.MethodPost, "/api/budgets", suite.alice, gin.H{"category": "Food", "amount": 100, "month": "2024-06"})
	require.Equal(suite.T(), http.StatusCreated, w.Code)

	w = suite.do(http.MethodGet, "/api/budgets", suite.alice, nil)
	assert.Len(suite.T(), decode[[]domain.Budget](suite.T(), w), 2)

	w = suite.do(http.MethodPost, "/api/budgets", suite.alice, gin.H{"category": "Food", "amount": 1, "month": "2024-13"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestBudgetDelete() {
	w := suite.do(http.MethodPost, "/api/budgets", suite.alice, gin.H{"category": "Food", "amount": 200, "month": "2024-05"})
	b := decode[domain.Budget](suite.T(), w)
	path := "/api/budgets/" + strconv.Itoa(int(b.ID))

	w = suite.do(http.MethodDelete, path, suite.bob, nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodDelete, path, suite.alice, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), `{"id":`+strconv.Itoa(int(b.ID))+`}`, w.Body.String())

	w = suite.do(http.MethodDelete, path, suite.alice, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *APITestSuite) TestDashboard() {
	today := time.Now().UTC()
	suite.createExpense(suite.alice, "Food", 30, today.Format("2006-01-02"))
	suite.createExpense(suite.alice, "Food", 20, today.AddDate(0, 0, -7).Format("2006-01-02"))
	suite.createExpense(suite.alice, "Transport", 15, today.AddDate(0, 0, -8).Format("2006-01-02"))
	suite.do(http.MethodPost, "/api/budgets", suite.alice, gin.H{"category": "Food", "amount": 40, "month": today.Format("2006-01")})

	w := suite.do(http.MethodGet, "/api/dashboard?range=week", suite.alice, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code, w.Body.String())
	var d struct {
		Count          int `json:"count"`
		CategoryTotals []struct {
			Category string          `json:"category"`
			Total    decimal.Decimal `json:"total"`
		} `json:"categoryTotals"`
	}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(suite.T(), 2, d.Count, "7 days back included, 8 excluded")
	require.Len(suite.T(), d.CategoryTotals, 1)
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(d.CategoryTotals[0].Total))

	w = suite.do(http.MethodGet, "/api/dashboard?range=custom", suite.alice, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	w = suite.do(http.MethodGet, "/api/dashboard?month=May", suite.alice, nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestAnalyzeTextFallback() {
	w := suite.do(http.MethodPost, "/api/ai/analyze", suite.alice, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(),
		`{"format":"text","spending_analysis":"Spending looks fine","anomalies":[],"recommendations":[],"alerts":[]}`,
		w.Body.String())
}

func (suite *APITestSuite) TestAnalyzeUpstreamFailure() {
	suite.gen.err = errors.New("quota exceeded")
	w := suite.do(http.MethodPost, "/api/ai/analyze", suite.alice, nil)
	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	body := decode[map[string]string](suite.T(), w)
	assert.Equal(suite.T(), "AI Analysis failed", body["error"])
	assert.Contains(suite.T(), body["details"], "quota exceeded")
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
