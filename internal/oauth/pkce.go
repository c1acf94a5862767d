package oauth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// pkcePair holds the verifier and challenge for one authorization flow.
type pkcePair struct {
	Verifier  string
	Challenge string
}

// newPKCEPair generates a PKCE verifier/challenge pair per RFC 7636:
// 32 random bytes base64url-encoded (43 chars, within the 43-128 range),
// challenged with S256.
func newPKCEPair() (*pkcePair, error) {
	verifier, err := randomToken()
	if err != nil {
		return nil, err
	}

	hash := sha256.Sum256([]byte(verifier))
	return &pkcePair{
		Verifier:  verifier,
		Challenge: base64.RawURLEncoding.EncodeToString(hash[:]),
	}, nil
}

// randomToken returns a high-entropy base64url string, also used for the
// CSRF state parameter.
func randomToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
