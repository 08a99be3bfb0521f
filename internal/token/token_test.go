package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"testimonial-portal-backend/internal/token"
)

func TestNew_ProducesValidTokens(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := token.New()
		assert.True(t, token.IsValid(id), "generated token must satisfy the pattern: %q", id)
		assert.False(t, seen[id], "token collision: %q", id)
		seen[id] = true
	}
}

func TestIsValid(t *testing.T) {
	valid := []string{
		"abc123",
		"ABC",
		"a.b.c",
		"9",
		"0123456789abcdef",
	}
	for _, id := range valid {
		assert.True(t, token.IsValid(id), "expected %q to be valid", id)
	}

	invalid := []string{
		"",
		"../../etc/passwd",
		"a/b",
		"a\\b",
		"a b",
		"a-b",
		"id\x00",
		"ид",
	}
	for _, id := range invalid {
		assert.False(t, token.IsValid(id), "expected %q to be invalid", id)
	}
}
