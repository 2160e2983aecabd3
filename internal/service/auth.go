package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"expense_tracker/internal/domain"
	"expense_tracker/internal/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserRepository is the storage the auth service needs
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Get(ctx context.Context, id uint) (*domain.User, error)
}

// Session is the result of a successful signup or login
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// AuthService registers users and issues bearer tokens
type AuthService struct {
	users  UserRepository
	secret string
	ttl    time.Duration
}

// NewAuthService creates an AuthService signing tokens with secret
func NewAuthService(users UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: secret, ttl: ttl}
}

// Signup registers a new user and returns a session for it
func (s *AuthService) Signup(ctx context.Context, name, email, password, currency string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = "USD"
	}
	switch {
	case name == "":
		return nil, invalid("name is required")
	case !emailRe.MatchString(email):
		return nil, invalid("invalid email format")
	case len(password) < 6 || len(password) > 72:
		return nil, invalid("password must be 6-72 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Name: name, Email: email, Password: string(hash), Currency: currency}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "type": "signup"}).Info("User registered")
	return s.session(user)
}

// Login checks credentials and returns a fresh session
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	} else if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return s.session(user)
}

// Me returns the profile of caller
func (s *AuthService) Me(ctx context.Context, caller uint) (*domain.User, error) {
	return s.users.Get(ctx, caller)
}

func (s *AuthService) session(u *domain.User) (*Session, error) {
	token, err := utils.GenerateJWT(u.ID, u.Email, s.secret, s.ttl)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: *u}, nil
}
