package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/haniscreator/mediclue/internal/repository"
)

// UserRepoMinimal is the subset of repository.UserRepo used by AuthService.
type UserRepoMinimal interface {
	Create(ctx context.Context, u *repository.User) error
	GetByEmail(ctx context.Context, email string) (*repository.User, error)
}

// AuthService handles account registration and authentication.
type AuthService interface {
	// Register creates a new account (hashes password) and stores it.
	Register(ctx context.Context, email, password, firstName, lastName string) (*repository.User, error)

	// Authenticate verifies credentials and returns a signed JWT token string.
	Authenticate(ctx context.Context, email, password, jwtSecret string, expiresIn time.Duration) (string, error)
}

type authServiceImpl struct {
	repo UserRepoMinimal
}

// NewAuthService constructs a new AuthService.
func NewAuthService(repo UserRepoMinimal) AuthService {
	return &authServiceImpl{repo: repo}
}

var (
	ErrUserExists      = errors.New("user already exists")
	ErrInvalidCreds    = errors.New("invalid credentials")
	ErrUserNotFound    = errors.New("user not found")
	ErrWeakPassword    = errors.New("password too weak")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrMissingName     = errors.New("first and last name are required")
	ErrTokenGeneration = errors.New("token generation failed")
)

// MinPasswordLength is the shortest password Register accepts.
const MinPasswordLength = 6

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user record. Password is hashed with bcrypt before saving.
func (s *authServiceImpl) Register(ctx context.Context, email, password, firstName, lastName string) (*repository.User, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	firstName, lastName = strings.TrimSpace(firstName), strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return nil, ErrMissingName
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &repository.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashed),
		FirstName:    firstName,
		LastName:     lastName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	u.PasswordHash = ""
	return u, nil
}

// Authenticate verifies email/password, returns signed JWT.
func (s *authServiceImpl) Authenticate(ctx context.Context, email, password, jwtSecret string, expiresIn time.Duration) (string, error) {
	u, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCreds
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":        u.ID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"iat":        now.Unix(),
		"exp":        now.Add(expiresIn).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", ErrTokenGeneration
	}
	return signed, nil
}
