package store

import (
	"errors"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apperrors "testimonial-portal-backend/internal/errors"
	"testimonial-portal-backend/internal/models"
	"testimonial-portal-backend/internal/token"
)

// SQLStore persists records in an embedded SQLite table through GORM. It is
// the relational counterpart of FileStore behind the same contract, and the
// natural landing zone for the SQL export produced by the Exporter.
type SQLStore struct {
	db *gorm.DB
}

var _ Store = (*SQLStore)(nil)

// NewSQLStore opens (or creates) the database file and migrates the schema.
func NewSQLStore(path string) (*SQLStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Error),
	})
	if err != nil {
		return nil, apperrors.NewStorageError("open database", err)
	}
	if err := db.AutoMigrate(&models.Testimonial{}); err != nil {
		return nil, apperrors.NewStorageError("migrate", err)
	}
	return &SQLStore{db: db}, nil
}

// Create assigns a fresh id and inserts the record.
func (s *SQLStore) Create(rec *models.Testimonial) (string, error) {
	rec.ID = token.New()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.Removed = false

	if err := s.db.Create(rec).Error; err != nil {
		return "", apperrors.NewStorageError("create", err)
	}
	return rec.ID, nil
}

// Get loads a record by id; removed records read as not-found. Ids failing
// the token pattern short-circuit before any query runs.
func (s *SQLStore) Get(id string) (*models.Testimonial, error) {
	if !token.IsValid(id) {
		return nil, apperrors.ErrTestimonialNotFound
	}

	var rec models.Testimonial
	err := s.db.First(&rec, "id = ? AND removed = ?", id, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTestimonialNotFound
		}
		return nil, apperrors.NewStorageError("read", err)
	}
	return &rec, nil
}

// Update overwrites the stored record in place.
func (s *SQLStore) Update(id string, rec *models.Testimonial) error {
	if !token.IsValid(id) {
		return apperrors.ErrTestimonialNotFound
	}
	if _, err := s.Get(id); err != nil {
		return err
	}

	rec.ID = id
	rec.Removed = false
	if err := s.db.Save(rec).Error; err != nil {
		return apperrors.NewStorageError("update", err)
	}
	return nil
}

// SoftDelete flags the record as removed; repeated calls are no-ops.
func (s *SQLStore) SoftDelete(id string) error {
	if !token.IsValid(id) {
		return apperrors.ErrTestimonialNotFound
	}

	var rec models.Testimonial
	err := s.db.First(&rec, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrTestimonialNotFound
		}
		return apperrors.NewStorageError("soft delete", err)
	}
	if rec.Removed {
		return nil
	}

	err = s.db.Model(&models.Testimonial{}).Where("id = ?", id).Update("removed", true).Error
	if err != nil {
		return apperrors.NewStorageError("soft delete", err)
	}
	return nil
}

// List returns a page of non-removed records matching the filter, newest
// first, and reports whether more exist beyond the page.
func (s *SQLStore) List(filter Filter, offset, limit int) ([]models.Testimonial, bool, error) {
	offset, limit = clampPage(offset, limit)

	query := s.db.Model(&models.Testimonial{}).Where("removed = ?", false)
	switch filter {
	case FilterPublic:
		query = query.Where("visible = ?", true)
	case FilterWaiting:
		query = query.Where("visible = ?", false)
	}

	var recs []models.Testimonial
	// Fetch one extra row to learn whether another page exists.
	err := query.Order("created_at DESC, id ASC").Offset(offset).Limit(limit + 1).Find(&recs).Error
	if err != nil {
		return nil, false, apperrors.NewStorageError("list", err)
	}

	hasMore := len(recs) > limit
	if hasMore {
		recs = recs[:limit]
	}
	return recs, hasMore, nil
}
