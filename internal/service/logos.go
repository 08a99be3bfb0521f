package service

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	apperrors "testimonial-portal-backend/internal/errors"
	"testimonial-portal-backend/internal/logger"
	"testimonial-portal-backend/internal/token"
)

// LogoStore keeps accepted logo uploads under token-based filenames. Writes
// go through a temp file and a rename, so an interrupted upload never leaves
// a half-written asset under a visible name.
type LogoStore struct {
	dir string
	log *logger.Logger
}

// NewLogoStore creates the upload directory if needed.
func NewLogoStore(dir string) (*LogoStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apperrors.NewStorageError("init uploads", err)
	}
	return &LogoStore{dir: dir, log: logger.New()}, nil
}

// Save stores an upload under a freshly generated token-based name and
// returns the relative filename. The caller has already checked the
// extension whitelist.
func (l *LogoStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", apperrors.NewStorageError("open upload", err)
	}
	defer src.Close()

	tmpPath := filepath.Join(l.dir, ".tmp-"+uuid.NewString())
	tmp, err := os.Create(tmpPath)
	if err != nil {
		return "", apperrors.NewStorageError("write upload", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", apperrors.NewStorageError("write upload", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", apperrors.NewStorageError("write upload", err)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	name := "logo-" + token.New() + ext
	if err := os.Rename(tmpPath, filepath.Join(l.dir, name)); err != nil {
		os.Remove(tmpPath)
		return "", apperrors.NewStorageError("store upload", err)
	}
	return name, nil
}

// Remove marks a stored logo as removed. Best effort: a record delete must
// not fail because its asset could not be renamed.
func (l *LogoStore) Remove(name string) {
	if name == "" || name != filepath.Base(name) {
		return
	}
	path := filepath.Join(l.dir, name)
	if err := os.Rename(path, path+"-removed"); err != nil {
		l.log.WithField("logo", name).Debugf("logo removal skipped: %v", err)
	}
}
