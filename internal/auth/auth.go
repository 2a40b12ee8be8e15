// Package auth signs users up and in with email and password and issues the
// session tokens the web layer stores in a cookie.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vbonduro/stock2profit/internal/domain"
	"github.com/vbonduro/stock2profit/internal/store"
)

const (
	minNameLen     = 2
	minPasswordLen = 6
)

var (
	ErrNameTooShort       = errors.New("please enter your full name")
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters long")
	ErrEmailTaken         = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// userRepository is the subset of store.UserStore that Service requires.
type userRepository interface {
	Create(ctx context.Context, name, email, passwordHash string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type Service struct {
	users userRepository
	cost  int
}

func NewService(users userRepository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// ValidateSignup checks the signup form in the order it is displayed:
// name, then email, then password.
func ValidateSignup(name, email, password string) error {
	if len(strings.TrimSpace(name)) < minNameLen {
		return ErrNameTooShort
	}
	return ValidateLogin(email, password)
}

// ValidateLogin checks the shape of login credentials before any lookup.
func ValidateLogin(email, password string) error {
	if !emailPattern.MatchString(strings.ToLower(email)) {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return ErrPasswordTooShort
	}
	return nil
}

func (s *Service) Signup(ctx context.Context, name, email, password string) (*domain.User, error) {
	if err := ValidateSignup(name, email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.users.Create(ctx, strings.TrimSpace(name), strings.TrimSpace(email), string(hash))
	if errors.Is(err, store.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if err := ValidateLogin(email, password); err != nil {
		return nil, err
	}

	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) User(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
