package users

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

const (
	minPasswordLength = 8
	// bcrypt rejects anything longer
	maxPasswordLength = 72
)

type userService struct {
	userRepo   UserRepository
	tokens     TokenIssuer
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(userRepo UserRepository, tokens TokenIssuer) UserService {
	return &userService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// CreateUser registers a new account with a bcrypt-hashed password
func (s *userService) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	email := normalizeEmail(req.Email)
	if err := validateCredentials(email, req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Repository will handle duplicate constraint errors
	user, err := s.userRepo.Create(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID)
	return user, nil
}

// GetUser retrieves a user by id
func (s *userService) GetUser(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	return s.userRepo.GetByID(ctx, id)
}

// Login checks the password against the stored hash and issues an access token
func (s *userService) Login(ctx context.Context, req LoginRequest) (*Token, error) {
	email := normalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	creds, err := s.userRepo.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(req.Password)); err != nil {
		slog.Debug("login rejected: password mismatch", "user_id", creds.ID)
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(creds.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	return &Token{
		AccessToken: accessToken,
		TokenType:   "bearer",
	}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func validateCredentials(email, password string) error {
	if email == "" {
		return NewValidationError("email", "email is required")
	}
	if !emailRegex.MatchString(email) {
		return NewValidationError("email", "invalid email address")
	}
	if len(password) < minPasswordLength {
		return NewValidationError("password", fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordLength {
		return NewValidationError("password", fmt.Sprintf("password must be at most %d bytes", maxPasswordLength))
	}
	return nil
}
