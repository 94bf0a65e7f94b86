package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type localStorage struct {
	dir        string
	publicPath string
	logger     *logrus.Logger
}

// NewLocalStorage stores files in dir and references them as
// publicPath/<name>, the prefix the directory is served under.
func NewLocalStorage(dir, publicPath string, logger *logrus.Logger) (FileStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory required")
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve upload directory: %w", err)
	}

	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	logger.WithField("dir", absDir).Info("Local file storage initialized")

	return &localStorage{
		dir:        absDir,
		publicPath: "/" + strings.Trim(publicPath, "/"),
		logger:     logger,
	}, nil
}

func (s *localStorage) Save(ctx context.Context, file File) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := GenerateName(file.Name)
	target := filepath.Join(s.dir, name)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, file.Reader); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("rename temp file: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"original": file.Name,
		"stored":   name,
		"size":     file.Size,
	}).Debug("Stored uploaded file")

	return path.Join(s.publicPath, name), nil
}

func (s *localStorage) Remove(ctx context.Context, reference string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target, err := s.resolve(reference)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove file: %w", err)
	}

	s.logger.WithField("reference", reference).Info("File deleted successfully")
	return nil
}

// resolve maps a reference such as /uploads/name.png to its path on disk.
func (s *localStorage) resolve(reference string) (string, error) {
	name := strings.TrimPrefix(reference, s.publicPath+"/")
	if name == "" || (name == reference && strings.Contains(reference, "/")) {
		return "", ErrInvalidReference
	}

	cleaned := filepath.Clean(name)
	if cleaned != filepath.Base(cleaned) || cleaned == "." || cleaned == ".." {
		return "", ErrInvalidReference
	}

	return filepath.Join(s.dir, cleaned), nil
}
