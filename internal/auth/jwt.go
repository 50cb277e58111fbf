package auth

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Algorithm constants for JWT signing methods
const (
	AlgorithmHS256 = "HS256"
	AlgorithmES256 = "ES256"
)

// DefaultTokenTTL matches the access token lifetime clients expect
const DefaultTokenTTL = 30 * time.Minute

var (
	// ErrInvalidToken covers bad signatures, wrong algorithms and malformed tokens
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingUserID is returned for a well-signed token without a user id
	ErrMissingUserID = errors.New("missing user_id claim")
)

// Claims represents the JWT claims carried by access tokens
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// TokenIssuer signs and verifies access tokens.
// HS256 with a shared secret, or ES256 when a private key is configured.
type TokenIssuer struct {
	now        func() time.Time
	ecKey      *ecdsa.PrivateKey
	issuer     string
	keyID      string
	hmacSecret []byte
	ttl        time.Duration
}

// Option configures a TokenIssuer
type Option func(*TokenIssuer)

// WithTTL overrides the access token lifetime
func WithTTL(ttl time.Duration) Option {
	return func(t *TokenIssuer) {
		if ttl > 0 {
			t.ttl = ttl
		}
	}
}

// WithIssuer sets the iss claim
func WithIssuer(issuer string) Option {
	return func(t *TokenIssuer) { t.issuer = issuer }
}

// WithES256Key switches signing to ES256 with the given key
func WithES256Key(key *ecdsa.PrivateKey, keyID string) Option {
	return func(t *TokenIssuer) {
		t.ecKey = key
		t.keyID = keyID
	}
}

// withClock is for tests
func withClock(now func() time.Time) Option {
	return func(t *TokenIssuer) { t.now = now }
}

// NewTokenIssuer creates a token issuer signing with secret unless an ES256 key option is given
func NewTokenIssuer(secret []byte, opts ...Option) (*TokenIssuer, error) {
	t := &TokenIssuer{
		hmacSecret: secret,
		ttl:        DefaultTokenTTL,
		issuer:     "votocon",
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}

	if t.ecKey == nil && len(t.hmacSecret) == 0 {
		return nil, fmt.Errorf("token issuer needs either a signing secret or an ES256 key")
	}
	return t, nil
}

// Algorithm returns the signing algorithm in use
func (t *TokenIssuer) Algorithm() string {
	if t.ecKey != nil {
		return AlgorithmES256
	}
	return AlgorithmHS256
}

// IssueAccessToken signs a token for userID
func (t *TokenIssuer) IssueAccessToken(userID int64) (string, error) {
	if userID <= 0 {
		return "", ErrMissingUserID
	}

	now := t.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			ID:        uuid.NewString(),
		},
	}

	if t.ecKey != nil {
		token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
		if t.keyID != "" {
			token.Header["kid"] = t.keyID
		}
		return token.SignedString(t.ecKey)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.hmacSecret)
}

// Verify checks the token signature and claims and returns them.
// The algorithm is fixed by the issuer's configuration, never by the token header.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	tokenString = stripBearerPrefix(tokenString)

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{t.Algorithm()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)

	claims := &Claims{}
	_, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if t.ecKey != nil {
			return &t.ecKey.PublicKey, nil
		}
		return t.hmacSecret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.UserID <= 0 {
		return nil, ErrMissingUserID
	}
	return claims, nil
}

// stripBearerPrefix removes the "Bearer " prefix from a token string
func stripBearerPrefix(tokenString string) string {
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	return strings.TrimSpace(tokenString)
}
