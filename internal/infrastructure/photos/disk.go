// Package photos stores walk photos on the local filesystem.
package photos

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"dogwalk/internal/domain"
	"dogwalk/internal/ports/output"
)

var _ output.PhotoStore = (*DiskStore)(nil)

var allowedExt = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".heic": true,
}

// DiskStore writes photos under Dir and serves them below URLPrefix.
type DiskStore struct {
	Dir       string
	URLPrefix string
	mu        sync.Mutex
	now       func() time.Time
}

// NewDiskStore ensures dir exists.
func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{
		Dir:       dir,
		URLPrefix: strings.TrimSuffix(urlPrefix, "/"),
		now:       time.Now,
	}, nil
}

// Save writes data atomically (temp file + rename) and returns its URL.
func (s *DiskStore) Save(ctx context.Context, participantID, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExt[ext] {
		ext = ".jpg"
	}
	name := fmt.Sprintf("walk-%d-%s%s", s.now().UnixMilli(), uuid.NewString()[:8], ext)
	path := filepath.Join(s.Dir, name)
	tmp := path + ".tmp"

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("write photo for %s: %w: %v", participantID, domain.ErrPersistence, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write photo for %s: %w: %v", participantID, domain.ErrPersistence, err)
	}
	return s.URLPrefix + "/" + name, nil
}

// Delete removes the photo behind url. Only names under URLPrefix are
// accepted.
func (s *DiskStore) Delete(_ context.Context, url string) error {
	name, ok := strings.CutPrefix(url, s.URLPrefix+"/")
	if !ok || name == "" || name != filepath.Base(name) {
		return fmt.Errorf("%w: not a stored photo: %q", domain.ErrValidation, url)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(filepath.Join(s.Dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete photo %s: %w: %v", name, domain.ErrPersistence, err)
	}
	return nil
}
