package auth

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwk"
)

// ParseES256PrivateJWK parses a private JWK (as printed by cmd/genjwks)
// and returns the raw key and its kid
func ParseES256PrivateJWK(data []byte) (*ecdsa.PrivateKey, string, error) {
	key, err := jwk.ParseKey(data)
	if err != nil {
		return nil, "", fmt.Errorf("failed to parse JWK: %w", err)
	}

	if key.KeyType() != jwa.EC {
		return nil, "", fmt.Errorf("expected EC key, got %s", key.KeyType())
	}
	if alg := key.Algorithm(); alg != nil && alg.String() != "" && alg.String() != AlgorithmES256 {
		return nil, "", fmt.Errorf("expected %s key, got %s", AlgorithmES256, alg)
	}

	var raw ecdsa.PrivateKey
	if err := key.Raw(&raw); err != nil {
		return nil, "", fmt.Errorf("JWK is not an EC private key: %w", err)
	}

	return &raw, key.KeyID(), nil
}

// PublicJWKS returns the public half of key as a JWK set, for clients that verify tokens themselves
func PublicJWKS(key *ecdsa.PrivateKey, keyID string) (jwk.Set, error) {
	pub, err := jwk.FromRaw(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWK from public key: %w", err)
	}
	if err := pub.Set(jwk.KeyIDKey, keyID); err != nil {
		return nil, fmt.Errorf("failed to set kid: %w", err)
	}
	if err := pub.Set(jwk.AlgorithmKey, jwa.ES256); err != nil {
		return nil, fmt.Errorf("failed to set alg: %w", err)
	}
	if err := pub.Set(jwk.KeyUsageKey, "sig"); err != nil {
		return nil, fmt.Errorf("failed to set use: %w", err)
	}

	set := jwk.NewSet()
	if err := set.AddKey(pub); err != nil {
		return nil, fmt.Errorf("failed to add key to set: %w", err)
	}
	return set, nil
}

// JWKS returns the issuer's public verification key set, or nil for HS256 issuers
// whose secret must never be published
func (t *TokenIssuer) JWKS() (jwk.Set, error) {
	if t.ecKey == nil {
		return nil, nil
	}
	return PublicJWKS(t.ecKey, t.keyID)
}
