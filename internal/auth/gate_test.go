package auth_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testimonial-portal-backend/internal/auth"
)

const testSecret = "test-secret-key"

func signToken(t *testing.T, secret, role string, expires time.Time) string {
	t.Helper()

	claims := auth.AdminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestGate_MarkerFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "letmein"), []byte{}, 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "uploads"), 0o755))

	gate := auth.NewGate(dir, "")

	tests := []struct {
		name  string
		value string
		admin bool
	}{
		{"existing marker grants admin", "letmein", true},
		{"missing marker denied", "nosuchfile", false},
		{"empty value denied", "", false},
		{"directory does not count", "uploads", false},
		{"record filename is not a marker", "profile-abc123.json", false},
		{"traversal shape denied", "../letmein", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := gate.Check(tt.value)
			assert.Equal(t, tt.admin, ctx.Admin)
			if tt.admin {
				assert.Equal(t, "marker", ctx.Method)
			}
		})
	}
}

func TestGate_Token(t *testing.T) {
	gate := auth.NewGate(t.TempDir(), testSecret)

	t.Run("valid moderator token grants admin", func(t *testing.T) {
		ctx := gate.Check(signToken(t, testSecret, auth.RoleModerator, time.Now().Add(time.Hour)))
		assert.True(t, ctx.Admin)
		assert.Equal(t, "token", ctx.Method)
	})

	t.Run("wrong secret denied", func(t *testing.T) {
		ctx := gate.Check(signToken(t, "other-secret", auth.RoleModerator, time.Now().Add(time.Hour)))
		assert.False(t, ctx.Admin)
	})

	t.Run("wrong role denied", func(t *testing.T) {
		ctx := gate.Check(signToken(t, testSecret, "viewer", time.Now().Add(time.Hour)))
		assert.False(t, ctx.Admin)
	})

	t.Run("expired token denied", func(t *testing.T) {
		ctx := gate.Check(signToken(t, testSecret, auth.RoleModerator, time.Now().Add(-time.Hour)))
		assert.False(t, ctx.Admin)
	})

	t.Run("garbage dotted value denied", func(t *testing.T) {
		ctx := gate.Check("aaaa.bbbb.cccc")
		assert.False(t, ctx.Admin)
	})
}

func TestGate_TokenModeDisabledWithoutSecret(t *testing.T) {
	gate := auth.NewGate(t.TempDir(), "")
	ctx := gate.Check(signToken(t, testSecret, auth.RoleModerator, time.Now().Add(time.Hour)))
	assert.False(t, ctx.Admin)
}
