package users

import (
	"time"
)

// Caller is the authenticated identity making a request.
// Resolved by the auth middleware and passed explicitly into every service call.
type Caller struct {
	ID int64
}

// Authenticated reports whether the caller carries a real user id
func (c Caller) Authenticated() bool {
	return c.ID > 0
}

// User represents a registered account
type User struct {
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Email     string    `json:"email" db:"email"`
	ID        int64     `json:"id" db:"id"`
}

// Credentials is a user row including the password hash.
// Only the login flow reads it; it is never serialized.
type Credentials struct {
	PasswordHash string `db:"password"`
	User
}

// CreateUserRequest represents the input for registering a new user
type CreateUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the input for exchanging credentials for an access token
type LoginRequest struct {
	Email    string `json:"username"`
	Password string `json:"password"`
}

// Token is the login response
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
