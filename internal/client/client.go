// Package client is a typed HTTP client for the expense tracker API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"expense_tracker/internal/aggregate"
	"expense_tracker/internal/ai"
	"expense_tracker/internal/domain"
	"expense_tracker/internal/service"

	"github.com/shopspring/decimal"
)

// APIError is a non-2xx answer from the server
type APIError struct {
	Status  int    // HTTP status code
	Message string // the "error" field of the body, or the raw body
	Details string // the "details" field, when present
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Message, e.Details)
	}
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// NewExpense is the payload of CreateExpense
type NewExpense struct {
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	PaymentMethod string          `json:"paymentMethod"`
	Date          string          `json:"date,omitempty"` // YYYY-MM-DD, empty means today
	Notes         string          `json:"notes,omitempty"`
}

// ExpenseChanges is the payload of UpdateExpense; nil fields are left alone
type ExpenseChanges struct {
	Description   *string          `json:"description,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Category      *string          `json:"category,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	Date          *string          `json:"date,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// Client talks to one server. It is safe for sequential use; SetToken must not
// race with requests.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a Client for baseURL. A nil httpClient uses a 90s timeout client.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 90 * time.Second} // AI analysis may take a while
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// SetToken sets the bearer token sent with every request
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token
func (c *Client) Token() string { return c.token }

// Signup registers a user and keeps the returned token
func (c *Client) Signup(ctx context.Context, name, email, password, currency string) (*service.Session, error) {
	body := map[string]string{"name": name, "email": email, "password": password, "currency": currency}
	var s service.Session
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/signup", body, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

// Login authenticates and keeps the returned token
func (c *Client) Login(ctx context.Context, email, password string) (*service.Session, error) {
	var s service.Session
	if _, err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, &s); err != nil {
		return nil, err
	}
	c.token = s.Token
	return &s, nil
}

// Me returns the signed-in user
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var u domain.User
	if _, err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListExpenses returns the user's expenses, newest first
func (c *Client) ListExpenses(ctx context.Context) ([]domain.Expense, error) {
	var list []domain.Expense
	_, err := c.do(ctx, http.MethodGet, "/api/expenses", nil, &list)
	return list, err
}

// CreateExpense stores a new expense
func (c *Client) CreateExpense(ctx context.Context, e NewExpense) (*domain.Expense, error) {
	var out domain.Expense
	if _, err := c.do(ctx, http.MethodPost, "/api/expenses", e, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateExpense changes the given fields of expense id
func (c *Client) UpdateExpense(ctx context.Context, id uint, changes ExpenseChanges) (*domain.Expense, error) {
	var out domain.Expense
	if _, err := c.do(ctx, http.MethodPut, "/api/expenses/"+idPath(id), changes, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteExpense removes expense id
func (c *Client) DeleteExpense(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/expenses/"+idPath(id), nil, nil)
	return err
}

// ListBudgets returns the user's budgets
func (c *Client) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	var list []domain.Budget
	_, err := c.do(ctx, http.MethodGet, "/api/budgets", nil, &list)
	return list, err
}

// SetBudget upserts the budget of category in month. created is true when no budget existed.
func (c *Client) SetBudget(ctx context.Context, category string, amount decimal.Decimal, month string) (b *domain.Budget, created bool, err error) {
	body := map[string]any{"category": category, "amount": amount, "month": month}
	var out domain.Budget
	status, err := c.do(ctx, http.MethodPost, "/api/budgets", body, &out)
	if err != nil {
		return nil, false, err
	}
	return &out, status == http.StatusCreated, nil
}

// DeleteBudget removes budget id
func (c *Client) DeleteBudget(ctx context.Context, id uint) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/budgets/"+idPath(id), nil, nil)
	return err
}

// Dashboard fetches the server-side aggregation. Empty arguments are omitted.
func (c *Client) Dashboard(ctx context.Context, rangeName, date, month string) (*aggregate.Dashboard, error) {
	q := url.Values{}
	for k, v := range map[string]string{"range": rangeName, "date": date, "month": month} {
		if v != "" {
			q.Set(k, v)
		}
	}
	path := "/api/dashboard"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var d aggregate.Dashboard
	if _, err := c.do(ctx, http.MethodGet, path, nil, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Analyze requests AI spending advice
func (c *Client) Analyze(ctx context.Context) (*ai.Analysis, error) {
	var a ai.Analysis
	if _, err := c.do(ctx, http.MethodPost, "/api/ai/analyze", nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) (int, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		rd = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, newAPIError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

func newAPIError(status int, raw []byte) *APIError {
	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		return &APIError{Status: status, Message: body.Error, Details: body.Details}
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Status: status, Message: msg}
}

func idPath(id uint) string { return strconv.FormatUint(uint64(id), 10) }
