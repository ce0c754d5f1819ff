package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Image is a stored picture: its public URL and the id needed to delete it.
type Image struct {
	URL string
	ID  string
}

// Local stores images on disk and serves them under BaseURL.
type Local struct {
	Dir     string
	BaseURL string
}

// NewLocal creates a local image store rooted at dir.
func NewLocal(dir, baseURL string) *Local {
	return &Local{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}
}

// Upload writes data under a fresh name keeping the extension of filename.
func (l *Local) Upload(_ context.Context, data []byte, filename string) (Image, error) {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return Image{}, errors.Wrap(err, "create image dir")
	}
	name := uuid.NewString() + strings.ToLower(filepath.Ext(filename))
	if err := os.WriteFile(filepath.Join(l.Dir, name), data, 0o644); err != nil {
		return Image{}, errors.Wrap(err, "write image")
	}
	return Image{URL: l.BaseURL + "/images/" + name, ID: name}, nil
}

// Delete removes a previously uploaded image. Missing files are ignored.
func (l *Local) Delete(_ context.Context, id string) error {
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil
	}
	err := os.Remove(filepath.Join(l.Dir, id))
	if os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(err, "delete image")
}
