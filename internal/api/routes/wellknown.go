package routes

import (
	"github.com/go-chi/chi/v5"

	"Votocon/internal/api/handlers/wellknown"
)

// RegisterWellKnownRoutes registers RFC 8615 well-known URI endpoints
//
// Spec: https://www.rfc-editor.org/rfc/rfc8615.html
func RegisterWellKnownRoutes(r chi.Router, keys wellknown.JWKSProvider) {
	// Public half of the ES256 token signing key, for services that verify tokens themselves
	r.Get("/.well-known/jwks.json", wellknown.NewJWKSHandler(keys).HandleJWKS)
}
