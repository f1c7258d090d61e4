package local

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"paggo-backend/internal/shared/storage/object"
	"paggo-backend/internal/shared/util"
)

// Store implements FileStore on the local filesystem. Every upload gets a
// unique name of the form <unix-ms>-<random><ext> so concurrent uploads of
// the same file never collide.
type Store struct {
	baseDir string
}

// New creates a local file store rooted at baseDir, creating it if needed.
func New(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save writes the reader to disk under a generated unique filename.
func (s *Store) Save(ctx context.Context, originalName string, r io.Reader) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	sanitized, err := util.SanitizeFileName(originalName)
	if err != nil {
		return "", "", fmt.Errorf("sanitize file name: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(sanitized))
	storedName := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), randomSuffix(), ext)

	fullPath := filepath.Join(s.baseDir, storedName)
	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", "", fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", "", fmt.Errorf("write body: %w", err)
	}

	return storedName, fullPath, nil
}

// Open opens a stored file for reading.
func (s *Store) Open(ctx context.Context, storedName string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	clean := filepath.Clean(storedName)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("invalid stored name")
	}

	return os.Open(filepath.Join(s.baseDir, clean))
}

func randomSuffix() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

var _ object.FileStore = (*Store)(nil)
