// Package token produces the opaque identifiers that double as public record
// ids and storage keys, and validates ids supplied back by clients so that a
// crafted id can never be turned into a path outside the store directory.
package token

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Pattern is the full shape a record id may take. Anything else is rejected
// before storage is touched.
var Pattern = regexp.MustCompile(`^[A-Za-z0-9.]+$`)

// New produces a collision-resistant opaque token. The token is hex, so it
// always satisfies Pattern.
func New() string {
	sum := sha256.Sum256([]byte(uuid.NewString() + time.Now().UTC().Format(time.RFC3339Nano)))
	return hex.EncodeToString(sum[:])
}

// IsValid reports whether a client-supplied id is safe to use as a storage
// key. Callers must check this before building any filesystem path.
func IsValid(s string) bool {
	return s != "" && Pattern.MatchString(s)
}
