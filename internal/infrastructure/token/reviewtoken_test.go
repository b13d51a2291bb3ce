package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReviewTokenGenerator_Generate(t *testing.T) {
	g := NewReviewTokenGenerator()

	plain, hash, err := g.Generate()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(plain, ReviewPrefix))
	assert.Len(t, plain, len(ReviewPrefix)+64)
	assert.Len(t, hash, 64)
	assert.NotEqual(t, plain, hash)
	assert.Equal(t, hash, g.Hash(plain))
	assert.True(t, LooksValid(plain))
}

func TestReviewTokenGenerator_Unique(t *testing.T) {
	g := NewReviewTokenGenerator()
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		plain, _, err := g.Generate()
		require.NoError(t, err)
		assert.False(t, seen[plain], "duplicate token generated")
		seen[plain] = true
	}
}

func TestReviewTokenGenerator_Verify(t *testing.T) {
	g := NewReviewTokenGenerator()
	plain, hash, err := g.Generate()
	require.NoError(t, err)

	assert.True(t, g.Verify(plain, hash))
	assert.False(t, g.Verify(plain+"0", hash))
	assert.False(t, g.Verify(plain, strings.Repeat("0", 64)))
}

func TestLooksValid(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid", ReviewPrefix + strings.Repeat("ab", 32), true},
		{"missing prefix", strings.Repeat("ab", 32), false},
		{"wrong prefix", "sk_" + strings.Repeat("ab", 32), false},
		{"too short", ReviewPrefix + "abcd", false},
		{"not hex", ReviewPrefix + strings.Repeat("zz", 32), false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksValid(tt.token))
		})
	}
}
