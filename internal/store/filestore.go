package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "testimonial-portal-backend/internal/errors"
	"testimonial-portal-backend/internal/models"
	"testimonial-portal-backend/internal/token"
)

const (
	recordPrefix  = "profile-"
	recordExt     = ".json"
	removedSuffix = "-removed"

	// Record files beyond this size are treated as malformed.
	maxRecordSize = 10 << 20
)

// FileStore keeps one JSON file per record in a single directory. Writers on
// the same id are serialized by a per-key mutex and every write lands through
// a temp-file rename, so readers never observe a partial record and racing
// writers resolve to at-most-one-effective-writer (last writer wins).
type FileStore struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError("init", err)
	}
	return &FileStore{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the backing directory. The admin marker-file gate checks for
// file presence here.
func (s *FileStore) Dir() string {
	return s.dir
}

// Create assigns a fresh id, serializes the record and writes it under the
// derived key. A key collision is a storage error, not a retry.
func (s *FileStore) Create(rec *models.Testimonial) (string, error) {
	id := token.New()
	rec.ID = id
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	lock := s.keyLock(id)
	lock.Lock()
	defer lock.Unlock()

	path := s.recordPath(id)
	if _, err := os.Stat(path); err == nil {
		return "", apperrors.ErrTestimonialExists
	}
	if _, err := os.Stat(path + removedSuffix); err == nil {
		return "", apperrors.ErrTestimonialExists
	}

	if err := s.writeRecord(path, rec); err != nil {
		return "", err
	}
	return id, nil
}

// Get loads a record by id. Ids failing the token pattern short-circuit to
// not-found without touching the filesystem; absent, empty, oversized or
// malformed files all read as not-found so no storage detail leaks.
func (s *FileStore) Get(id string) (*models.Testimonial, error) {
	if !token.IsValid(id) {
		return nil, apperrors.ErrTestimonialNotFound
	}

	path := s.recordPath(id)
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.ErrTestimonialNotFound
	}
	if info.Size() == 0 || info.Size() > maxRecordSize {
		return nil, apperrors.ErrTestimonialNotFound
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ErrTestimonialNotFound
	}

	var rec models.Testimonial
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, apperrors.ErrTestimonialNotFound
	}
	if rec.ID != id {
		// A well-formed record always carries its own key.
		return nil, apperrors.ErrTestimonialNotFound
	}
	return &rec, nil
}

// Update overwrites the stored record. The caller owns read-modify-write.
func (s *FileStore) Update(id string, rec *models.Testimonial) error {
	if !token.IsValid(id) {
		return apperrors.ErrTestimonialNotFound
	}

	lock := s.keyLock(id)
	lock.Lock()
	defer lock.Unlock()

	path := s.recordPath(id)
	if _, err := os.Stat(path); err != nil {
		return apperrors.ErrTestimonialNotFound
	}

	rec.ID = id
	return s.writeRecord(path, rec)
}

// SoftDelete renames the record file so enumeration skips it. Calling it
// again after the rename is a no-op.
func (s *FileStore) SoftDelete(id string) error {
	if !token.IsValid(id) {
		return apperrors.ErrTestimonialNotFound
	}

	lock := s.keyLock(id)
	lock.Lock()
	defer lock.Unlock()

	path := s.recordPath(id)
	if _, err := os.Stat(path); err != nil {
		if _, removedErr := os.Stat(path + removedSuffix); removedErr == nil {
			return nil
		}
		return apperrors.ErrTestimonialNotFound
	}

	if err := os.Rename(path, path+removedSuffix); err != nil {
		return apperrors.NewStorageError("soft delete", err)
	}
	return nil
}

// List enumerates record files by naming pattern, applies the filter and the
// page window, and reports whether more results exist beyond the page.
// Results are ordered newest first.
func (s *FileStore) List(filter Filter, offset, limit int) ([]models.Testimonial, bool, error) {
	offset, limit = clampPage(offset, limit)

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, false, apperrors.NewStorageError("list", err)
	}

	var matched []models.Testimonial
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		id, ok := recordID(entry.Name())
		if !ok {
			continue
		}
		rec, err := s.Get(id)
		if err != nil {
			// Unreadable or malformed files are skipped, not fatal.
			continue
		}
		if filter.Matches(rec) {
			matched = append(matched, *rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	if offset >= len(matched) {
		return []models.Testimonial{}, false, nil
	}
	end := offset + limit
	hasMore := end < len(matched)
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], hasMore, nil
}

// writeRecord serializes through a temp file in the same directory and
// renames it into place, so a crash mid-write never leaves a readable key.
func (s *FileStore) writeRecord(path string, rec *models.Testimonial) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("serialize", err)
	}

	tmp := filepath.Join(s.dir, ".tmp-"+uuid.NewString())
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.NewStorageError("write", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return apperrors.NewStorageError("write", err)
	}
	return nil
}

func (s *FileStore) recordPath(id string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%s%s", recordPrefix, id, recordExt))
}

// recordID extracts the id from a live record filename. Removed files and
// anything else in the directory (marker files, temp files) do not match.
func recordID(name string) (string, bool) {
	if !strings.HasPrefix(name, recordPrefix) || !strings.HasSuffix(name, recordExt) {
		return "", false
	}
	id := strings.TrimSuffix(strings.TrimPrefix(name, recordPrefix), recordExt)
	if !token.IsValid(id) {
		return "", false
	}
	return id, true
}

func (s *FileStore) keyLock(id string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	return lock
}
