package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_HS256RoundTrip(t *testing.T) {
	issuer, err := NewTokenIssuer([]byte("test-secret"))
	require.NoError(t, err)
	assert.Equal(t, AlgorithmHS256, issuer.Algorithm())

	token, err := issuer.IssueAccessToken(42)
	require.NoError(t, err)

	claims, err := issuer.Verify("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID, "tokens carry a unique jti")
}

func TestTokenIssuer_ES256RoundTrip(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	issuer, err := NewTokenIssuer(nil, WithES256Key(key, "signing-key"))
	require.NoError(t, err)
	assert.Equal(t, AlgorithmES256, issuer.Algorithm())

	token, err := issuer.IssueAccessToken(7)
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &Claims{})
	require.NoError(t, err)
	assert.Equal(t, "signing-key", parsed.Header["kid"])

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestTokenIssuer_RequiresKeyMaterial(t *testing.T) {
	_, err := NewTokenIssuer(nil)
	assert.Error(t, err)
}

func TestTokenIssuer_RejectsUnknownUser(t *testing.T) {
	issuer, err := NewTokenIssuer([]byte("test-secret"))
	require.NoError(t, err)

	_, err = issuer.IssueAccessToken(0)
	assert.ErrorIs(t, err, ErrMissingUserID)
}

func TestTokenIssuer_Verify_Rejections(t *testing.T) {
	issuer, err := NewTokenIssuer([]byte("test-secret"))
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer([]byte("other-secret"))
		require.NoError(t, err)
		token, err := other.IssueAccessToken(1)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		old, err := NewTokenIssuer([]byte("test-secret"), withClock(func() time.Time { return past }))
		require.NoError(t, err)
		token, err := old.IssueAccessToken(1)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.Contains(t, err.Error(), "expired")
	})

	t.Run("alg none", func(t *testing.T) {
		claims := jwt.MapClaims{
			"user_id": 1,
			"iss":     "votocon",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
		tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Verify(tokenString)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("foreign issuer", func(t *testing.T) {
		other, err := NewTokenIssuer([]byte("test-secret"), WithIssuer("someone-else"))
		require.NoError(t, err)
		token, err := other.IssueAccessToken(1)
		require.NoError(t, err)

		_, err = issuer.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		claims := jwt.MapClaims{
			"iss": "votocon",
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		tokenString, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = issuer.Verify(tokenString)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Verify("not-a-valid-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestParseES256PrivateJWK(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	jwkKey, err := jwk.FromRaw(key)
	require.NoError(t, err)
	require.NoError(t, jwkKey.Set(jwk.KeyIDKey, "token-key"))
	require.NoError(t, jwkKey.Set(jwk.AlgorithmKey, "ES256"))

	data, err := json.Marshal(jwkKey)
	require.NoError(t, err)

	parsed, kid, err := ParseES256PrivateJWK(data)
	require.NoError(t, err)
	assert.Equal(t, "token-key", kid)
	assert.True(t, key.Equal(parsed))

	t.Run("public key is rejected", func(t *testing.T) {
		pub, err := jwk.FromRaw(&key.PublicKey)
		require.NoError(t, err)
		data, err := json.Marshal(pub)
		require.NoError(t, err)

		_, _, err = ParseES256PrivateJWK(data)
		assert.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, _, err := ParseES256PrivateJWK([]byte("{"))
		assert.Error(t, err)
	})
}

func TestPublicJWKS(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	set, err := PublicJWKS(key, "token-key")
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	pub, ok := set.LookupKeyID("token-key")
	require.True(t, ok)

	var raw ecdsa.PublicKey
	require.NoError(t, pub.Raw(&raw))
	assert.True(t, key.PublicKey.Equal(&raw))
}

func TestTokenIssuer_JWKS(t *testing.T) {
	hs, err := NewTokenIssuer([]byte("secret"))
	require.NoError(t, err)
	set, err := hs.JWKS()
	require.NoError(t, err)
	assert.Nil(t, set, "shared secrets are never published")

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	es, err := NewTokenIssuer(nil, WithES256Key(key, "kid-1"))
	require.NoError(t, err)

	set, err = es.JWKS()
	require.NoError(t, err)
	require.NotNil(t, set)
	_, ok := set.LookupKeyID("kid-1")
	assert.True(t, ok)
}
