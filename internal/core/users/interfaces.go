package users

import "context"

// UserRepository defines the interface for user data persistence
type UserRepository interface {
	// Create inserts a user with an already-hashed password.
	// Returns ErrEmailTaken on a unique violation.
	Create(ctx context.Context, email, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetCredentialsByEmail returns the user together with the stored password hash.
	GetCredentialsByEmail(ctx context.Context, email string) (*Credentials, error)
}

// TokenIssuer signs access tokens for authenticated users
type TokenIssuer interface {
	IssueAccessToken(userID int64) (string, error)
}

// UserService defines the interface for user business logic
type UserService interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	GetUser(ctx context.Context, id int64) (*User, error)

	// Login verifies credentials and returns a bearer token.
	// Unknown email and wrong password both return ErrInvalidCredentials.
	Login(ctx context.Context, req LoginRequest) (*Token, error)
}
