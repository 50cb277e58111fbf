package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"Votocon/internal/api/handlers"
	"Votocon/internal/auth"
	"Votocon/internal/core/users"
)

// Context keys for storing caller information
type contextKey string

const (
	CallerKey    contextKey = "caller"
	JWTClaimsKey contextKey = "jwt_claims"
)

// TokenVerifier checks an access token and returns its claims
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// AuthMiddleware resolves bearer tokens into a users.Caller
type AuthMiddleware struct {
	verifier TokenVerifier
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(verifier TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth middleware ensures the request carries a valid access token.
// If not, returns 401; otherwise injects the caller and JWT claims into the context.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		// Scheme is case-insensitive per RFC 7235
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			writeAuthError(w, "Invalid Authorization header format. Expected: Bearer <token>")
			return
		}

		claims, err := m.verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			log.Printf("[AUTH_FAILURE] type=verification_failed ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, "Could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), CallerKey, users.Caller{ID: claims.UserID})
		ctx = context.WithValue(ctx, JWTClaimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCaller extracts the caller from the request context.
// Returns the zero Caller if the request is not authenticated.
func GetCaller(r *http.Request) users.Caller {
	caller, _ := r.Context().Value(CallerKey).(users.Caller)
	return caller
}

// GetJWTClaims extracts the JWT claims from the request context
// Returns nil if not authenticated
func GetJWTClaims(r *http.Request) *auth.Claims {
	claims, _ := r.Context().Value(JWTClaimsKey).(*auth.Claims)
	return claims
}

// SetTestCaller sets the caller in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestCaller(ctx context.Context, caller users.Caller) context.Context {
	return context.WithValue(ctx, CallerKey, caller)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	handlers.WriteError(w, http.StatusUnauthorized, "AuthenticationRequired", message)
}
