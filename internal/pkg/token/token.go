package token

import (
	"crypto/rand"
	"encoding/base64"
)

// DefaultLength is the number of random bytes in a session token (256 bits).
const DefaultLength = 32

// Generate returns an opaque bearer token: random bytes from crypto/rand,
// base64url-encoded. The value carries no user identity and no structure.
func Generate() (string, error) {
	bytes := make([]byte, DefaultLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
