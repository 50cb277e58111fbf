package main

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/lestrrat-go/jwx/v2/jwk"

	"Votocon/internal/auth"
)

// genjwks generates an ES256 keypair for signing access tokens
// The private key goes in JWT_PRIVATE_JWK; the public key is served at /.well-known/jwks.json
//
// Usage:
//
//	go run ./cmd/genjwks [-kid token-signing-key] [-save path]
func main() {
	keyID := flag.String("kid", "token-signing-key", "key id written into the JWK and token headers")
	savePath := flag.String("save", "", "also write the private JWK to this file (mode 0600)")
	flag.Parse()

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		log.Fatalf("Failed to generate private key: %v", err)
	}

	jwkKey, err := jwk.FromRaw(privateKey)
	if err != nil {
		log.Fatalf("Failed to create JWK from private key: %v", err)
	}

	if err := jwkKey.Set(jwk.KeyIDKey, *keyID); err != nil {
		log.Fatalf("Failed to set kid: %v", err)
	}
	if err := jwkKey.Set(jwk.AlgorithmKey, auth.AlgorithmES256); err != nil {
		log.Fatalf("Failed to set alg: %v", err)
	}
	if err := jwkKey.Set(jwk.KeyUsageKey, "sig"); err != nil {
		log.Fatalf("Failed to set use: %v", err)
	}

	jsonData, err := json.Marshal(jwkKey)
	if err != nil {
		log.Fatalf("Failed to marshal JWK: %v", err)
	}

	// Round-trip through the server's parser so a bad key fails here, not at startup
	if _, _, err := auth.ParseES256PrivateJWK(jsonData); err != nil {
		log.Fatalf("Generated key does not parse: %v", err)
	}

	fmt.Println("Add this to your .env file (keep it secret, never commit it):")
	fmt.Println()
	fmt.Println("JWT_PRIVATE_JWK='" + string(jsonData) + "'")

	if *savePath != "" {
		if err := os.WriteFile(*savePath, jsonData, 0o600); err != nil {
			log.Fatalf("Failed to write key file: %v", err)
		}
		fmt.Printf("\nPrivate key saved to %s\n", *savePath)
	}
}
