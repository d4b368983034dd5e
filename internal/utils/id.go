package utils

import (
	"crypto/rand"
	"encoding/base64"
	"regexp"
)

var safeIdentifier = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// GenerateSecureToken returns length random bytes, base64url encoded without padding.
func GenerateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// IsSafeIdentifier reports whether s can be embedded in an object key as a single path segment.
func IsSafeIdentifier(s string) bool {
	return safeIdentifier.MatchString(s)
}
