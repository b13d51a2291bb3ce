// Package token issues opaque share-review tokens. Only the SHA-256 hash of
// a token is ever persisted.
package token

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	ReviewPrefix = "rv_"

	tokenRandomBytes = 32
)

type ReviewTokenGenerator struct{}

func NewReviewTokenGenerator() *ReviewTokenGenerator {
	return &ReviewTokenGenerator{}
}

// Generate returns rv_ followed by 64 hex characters from crypto/rand.
func (g *ReviewTokenGenerator) Generate() (string, string, error) {
	randomBytes := make([]byte, tokenRandomBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	plainToken := ReviewPrefix + hex.EncodeToString(randomBytes)
	return plainToken, g.Hash(plainToken), nil
}

func (g *ReviewTokenGenerator) Hash(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}

func (g *ReviewTokenGenerator) Verify(plainToken, hash string) bool {
	return subtle.ConstantTimeCompare([]byte(g.Hash(plainToken)), []byte(hash)) == 1
}

// LooksValid is a cheap shape check used to reject garbage before a lookup.
func LooksValid(plainToken string) bool {
	if !strings.HasPrefix(plainToken, ReviewPrefix) {
		return false
	}
	body := plainToken[len(ReviewPrefix):]
	if len(body) != tokenRandomBytes*2 {
		return false
	}
	_, err := hex.DecodeString(body)
	return err == nil
}
