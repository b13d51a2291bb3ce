package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/assetflow/assetflow/internal/shared/biztime"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	DefaultLength = 12

	// PrefixAllocationList prefixes generated allocation list names.
	PrefixAllocationList = "AL"
	allocationSuffixLen  = 6
)

// Generate creates a random short ID with the specified length using Base62 encoding.
// The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// NewAllocationListName returns a human-readable list name such as
// "AL-20260117-x9K2pQ", dated in the business timezone.
func NewAllocationListName(at time.Time) (string, error) {
	suffix, err := Generate(allocationSuffixLen)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", PrefixAllocationList, biztime.FormatDateCompact(at), suffix), nil
}
