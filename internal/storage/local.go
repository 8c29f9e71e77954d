package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// LocalStorage writes uploads into a single directory on disk.
type LocalStorage struct {
	baseDir string
	now     func() time.Time
}

// NewLocalStorage returns a LocalStorage rooted at baseDir (e.g. "./uploads").
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{baseDir: baseDir, now: time.Now}
}

// Dir returns the directory uploads are written to.
func (s *LocalStorage) Dir() string {
	return s.baseDir
}

func (s *LocalStorage) Save(ctx context.Context, originalName string, data io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("storage: mkdir: %w", err)
	}

	name := s.fileName(originalName)
	dest := filepath.Join(s.baseDir, name)
	f, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: create: %w", err)
	}
	if _, err := io.Copy(f, data); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("storage: write: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("storage: close: %w", err)
	}
	return name, nil
}

// fileName builds "<unix-millis>-<random>-<slug><.ext>". The slug keeps the
// original name recognisable without letting it escape baseDir.
func (s *LocalStorage) fileName(originalName string) string {
	base := filepath.Base(originalName)
	ext := filepath.Ext(base)
	stem := slug.Make(strings.TrimSuffix(base, ext))
	if stem == "" {
		stem = "upload"
	}
	if ext = slug.Make(strings.TrimPrefix(ext, ".")); ext != "" {
		ext = "." + ext
	}
	random := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d-%s-%s%s", s.now().UnixMilli(), random, stem, ext)
}
