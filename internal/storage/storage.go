// Package storage handles uploaded files on disk: staging them for
// extraction and optionally archiving the originals.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	gonanoid "github.com/matoous/go-nanoid/v2"

	apperrors "github.com/akozlova/studycards/internal/errors"
	"github.com/akozlova/studycards/internal/logger"
)

// Store writes uploads under a base directory. Staged files are temporary
// and removed after extraction; archived files persist.
type Store struct {
	baseDir string
	archive bool
}

func NewStore(baseDir string, archive bool) *Store {
	return &Store{baseDir: baseDir, archive: archive}
}

// Stage writes the upload to a uniquely named temp file and returns its path
// together with a cleanup func. The caller always runs cleanup; Archive
// decides whether the bytes outlive it.
func (s *Store) Stage(ctx context.Context, r io.Reader, originalName string) (string, func(), error) {
	log := logger.FromContext(ctx).WithPrefix("storage")

	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		log.Error("failed to create upload dir %s: %v", s.baseDir, err)
		return "", nil, apperrors.NewInternalError(err)
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", nil, apperrors.NewInternalError(err)
	}
	path := filepath.Join(s.baseDir, fmt.Sprintf("upload-%s.pdf", id))

	f, err := os.Create(path)
	if err != nil {
		log.Error("failed to create staged file: %v", err)
		return "", nil, apperrors.NewInternalError(err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		log.Error("failed to write staged file: %v", err)
		return "", nil, apperrors.NewInternalError(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", nil, apperrors.NewInternalError(err)
	}

	log.Debug("staged upload %s as %s", originalName, path)

	cleanup := func() {
		if s.archive {
			s.archiveFile(path, originalName)
			return
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			logger.Default().WithPrefix("storage").Warn("failed to remove staged file %s: %v", path, err)
		}
	}
	return path, cleanup, nil
}

// archiveFile moves a staged file into the archive subdirectory. Best
// effort: a failed archive never fails the upload that produced it.
func (s *Store) archiveFile(path, originalName string) {
	log := logger.Default().WithPrefix("storage")

	dir := filepath.Join(s.baseDir, "archive")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("failed to create archive dir: %v", err)
		return
	}

	id, err := gonanoid.New()
	if err != nil {
		log.Warn("failed to generate archive name: %v", err)
		return
	}
	base := filepath.Base(originalName)
	dest := filepath.Join(dir, fmt.Sprintf("%s-%s", id, base))

	if err := os.Rename(path, dest); err != nil {
		log.Warn("failed to archive %s: %v", base, err)
		return
	}
	log.Debug("archived %s as %s", base, dest)
}
