// Package store reads collection snapshots from JSON files on disk.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	e "github.com/gartstein/catalog/internal/catalog/errors"
	"github.com/gartstein/catalog/internal/catalog/models"
)

// FileSource loads <dir>/<collection>.json on every call, so external edits to the
// files are visible to the next request.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Load returns the raw bytes of the collection file.
func (s *FileSource) Load(ctx context.Context, collection models.Collection) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(collection))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", e.ErrUnavailable, collection.FileName(), err)
	}
	return data, nil
}

// Path is the file backing collection.
func (s *FileSource) Path(collection models.Collection) string {
	return filepath.Join(s.dir, collection.FileName())
}
