// Package fs is a filesystem implementation of media.Store.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/plumenet/plume/internal/media"
)

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
}

type store struct {
	dir string
}

// New creates a media store which keeps files in dir.
func New(dir string) (media.Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create media dir: %w", err)
	}

	return store{dir: dir}, nil
}

func (s store) Save(_ context.Context, r io.Reader, contentType string) (string, error) {
	ext, ok := extensions[contentType]
	if !ok {
		return "", fmt.Errorf("unknown content type %s", contentType)
	}

	handle := fmt.Sprintf("%s.%s", uuid.New(), ext)

	f, err := os.Create(filepath.Join(s.dir, handle))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return handle, nil
}

func (s store) Delete(_ context.Context, handle string) error {
	if err := os.Remove(filepath.Join(s.dir, filepath.Base(handle))); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}
