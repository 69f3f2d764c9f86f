// Package id generates short random identifiers for provider-facing references.
package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// base36 keeps generated ids lowercase and URL-safe.
const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const DefaultLength = 8

// Generate returns a cryptographically random base36 string of the given length.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	max := big.NewInt(int64(len(alphabet)))
	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		b.WriteByte(alphabet[n.Int64()])
	}
	return b.String(), nil
}

// Join builds an underscore-separated id such as "mock_1700000000000_k3j9x0qa".
func Join(parts ...string) string {
	return strings.Join(parts, "_")
}

// HasPrefix reports whether id was built by Join with prefix as its first part.
func HasPrefix(id, prefix string) bool {
	return strings.HasPrefix(id, prefix+"_")
}
