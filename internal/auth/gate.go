// Package auth implements the moderation admin gate. The gate value arrives
// in the request parameter "p" and grants admin either through the legacy
// marker-file check or, when a secret is configured, through a signed token
// carried in the same parameter.
package auth

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"testimonial-portal-backend/internal/logger"
)

// AdminClaims are the claims an admin credential token must carry.
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// RoleModerator is the role an admin token must claim.
const RoleModerator = "moderator"

// AdminContext carries the per-request result of the gate check. It is
// derived once at dispatch and threaded into admin-only operations, never
// stored globally.
type AdminContext struct {
	Admin  bool
	Method string // "marker" or "token", empty when not admin
}

// markerName restricts the legacy gate value to a bare alphabetic token so
// it can never name anything outside the store directory.
var markerName = regexp.MustCompile(`^[A-Za-z]+$`)

// Gate checks admin credentials. The legacy behavior is preserved exactly:
// a gate value naming a file that exists in the store directory is an admin.
// A configured JWT secret additionally enables a real credential check
// behind the same parameter.
type Gate struct {
	dir    string
	secret string
	log    *logger.Logger
}

// NewGate creates a gate over the record-store directory. An empty secret
// disables the token mode.
func NewGate(dir, secret string) *Gate {
	return &Gate{
		dir:    dir,
		secret: secret,
		log:    logger.New(),
	}
}

// Check derives the AdminContext for one request from the raw gate value.
// Failures only downgrade to non-admin; they are logged but never surfaced,
// so the public response cannot distinguish a bad gate from no gate.
func (g *Gate) Check(value string) AdminContext {
	if value == "" {
		return AdminContext{}
	}

	if strings.Contains(value, ".") {
		// Marker names are bare alphabetic tokens; a dotted value can only
		// be a credential token.
		if g.checkToken(value) {
			return AdminContext{Admin: true, Method: "token"}
		}
		return AdminContext{}
	}

	if g.checkMarker(value) {
		return AdminContext{Admin: true, Method: "marker"}
	}
	if g.checkToken(value) {
		return AdminContext{Admin: true, Method: "token"}
	}
	return AdminContext{}
}

func (g *Gate) checkMarker(value string) bool {
	if !markerName.MatchString(value) {
		return false
	}
	info, err := os.Stat(filepath.Join(g.dir, value))
	if err != nil || info.IsDir() {
		return false
	}
	return true
}

func (g *Gate) checkToken(value string) bool {
	if g.secret == "" {
		return false
	}

	parsed, err := jwt.ParseWithClaims(value, &AdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(g.secret), nil
	})
	if err != nil {
		g.log.WithField("reason", err.Error()).Debug("admin token rejected")
		return false
	}

	claims, ok := parsed.Claims.(*AdminClaims)
	if !ok || !parsed.Valid {
		return false
	}
	return claims.Role == RoleModerator
}
