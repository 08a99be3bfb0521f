// Package store persists testimonial records behind a small interface so the
// backing technology stays swappable. Two backends exist: one file per record
// in a directory, and a relational table through GORM.
package store

import (
	"testimonial-portal-backend/internal/models"
)

// Filter selects which records List enumerates.
type Filter int

const (
	// FilterPublic lists only records approved for public display.
	FilterPublic Filter = iota
	// FilterAll lists every record still enumerable, hidden ones included.
	FilterAll
	// FilterWaiting lists records still pending moderation.
	FilterWaiting
)

// MaxPageSize caps the limit of a single List call.
const MaxPageSize = 100

// DefaultPageSize applies when the caller supplies no usable limit.
const DefaultPageSize = 20

// Store is the record-store contract. Create assigns the id; Update is a
// full overwrite and the caller owns the read-modify-write cycle; SoftDelete
// marks a record excluded from enumeration without erasing it and is
// idempotent. Every method rejects ids that fail the token pattern before
// touching storage.
type Store interface {
	Create(rec *models.Testimonial) (string, error)
	Get(id string) (*models.Testimonial, error)
	Update(id string, rec *models.Testimonial) error
	SoftDelete(id string) error
	List(filter Filter, offset, limit int) ([]models.Testimonial, bool, error)
}

// Matches reports whether a record passes the filter.
func (f Filter) Matches(rec *models.Testimonial) bool {
	switch f {
	case FilterPublic:
		return rec.Visible
	case FilterWaiting:
		return !rec.Visible
	default:
		return true
	}
}

// clampPage normalizes offset/limit to the contract bounds.
func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return offset, limit
}
