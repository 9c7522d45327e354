package invitations

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// tokenEntropyBytes is the raw entropy behind an invitation token.
// 32 bytes keeps tokens unguessable; they are never derived from the
// email, the clock, or any other predictable input.
const tokenEntropyBytes = 32

// GenerateToken returns an opaque, URL-safe invitation token.
func GenerateToken() (string, error) {
	buf := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating invitation token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
