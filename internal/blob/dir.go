package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Dir stores blobs as a flat folder of randomly named files. The directory
// listing is the only record of which files exist; nothing removes files,
// so deleting a document orphans its blob.
type Dir struct {
	root string
}

// NewDir creates the directory if needed and returns the store.
func NewDir(root string) (*Dir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, err
	}
	return &Dir{root: abs}, nil
}

// Root returns the absolute path of the backing directory.
func (d *Dir) Root() string { return d.root }

// Save writes r to a fresh uuid-named file preserving the extension of
// originalName and returns the relative "uploads/..." path. The partially
// written file is removed on copy failure.
func (d *Dir) Save(ctx context.Context, originalName string, r io.Reader) (string, error) {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	dst := filepath.Join(d.root, name)

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(dst)
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return URLPrefix + name, nil
}

// path maps a stored relative URL back to a file under the directory.
// Only the base name is used, so records cannot reach outside the folder.
func (d *Dir) path(rel string) string {
	name := filepath.Base(strings.TrimPrefix(rel, URLPrefix))
	return filepath.Join(d.root, name)
}
