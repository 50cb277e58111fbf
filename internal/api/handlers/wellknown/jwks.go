package wellknown

import (
	"net/http"

	"github.com/lestrrat-go/jwx/v2/jwk"

	"Votocon/internal/api/handlers"
)

// JWKSProvider exposes the public keys access tokens are signed with
type JWKSProvider interface {
	JWKS() (jwk.Set, error)
}

// JWKSHandler serves the token verification keys
type JWKSHandler struct {
	keys JWKSProvider
}

// NewJWKSHandler creates a new JWKS handler
func NewJWKSHandler(keys JWKSProvider) *JWKSHandler {
	return &JWKSHandler{keys: keys}
}

// HandleJWKS serves the JSON Web Key Set containing the public signing key
// GET /.well-known/jwks.json
// Returns 404 when tokens are signed with a shared secret.
func (h *JWKSHandler) HandleJWKS(w http.ResponseWriter, r *http.Request) {
	set, err := h.keys.JWKS()
	if err != nil {
		handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", "Failed to build JWKS")
		return
	}
	if set == nil {
		handlers.WriteError(w, http.StatusNotFound, "NotFound", "Token signing keys are not published")
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	handlers.WriteJSON(w, http.StatusOK, set)
}
