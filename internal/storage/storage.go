// Package storage persists uploaded movie images and removes them again when
// the owning movie is deleted.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidReference is returned for references that do not point inside the
// storage area.
var ErrInvalidReference = errors.New("storage: invalid reference")

// File is a single uploaded payload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Reader      io.Reader
}

type FileStorage interface {
	// Save stores the file under a newly generated name and returns the
	// reference clients use to fetch it.
	Save(ctx context.Context, file File) (string, error)
	// Remove deletes the file behind reference. Missing files are not an error.
	Remove(ctx context.Context, reference string) error
}

// GenerateName returns a collision-resistant file name that keeps the
// original extension.
func GenerateName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}
