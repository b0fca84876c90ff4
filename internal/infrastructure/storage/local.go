// Package storage persists uploaded images. The local implementation
// writes under a configured directory and returns the public path the
// router serves as static files.
package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore saves uploads on the local filesystem.
type LocalStore struct {
	dir        string
	publicPath string
}

// NewLocalStore creates the upload directory if needed. publicPath is
// the URL prefix the files are served under (e.g. "/uploads").
func NewLocalStore(dir, publicPath string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{dir: dir, publicPath: strings.TrimSuffix(publicPath, "/")}, nil
}

// Dir returns the directory uploads are written to.
func (s *LocalStore) Dir() string { return s.dir }

// Save writes the uploaded file under a random name, keeping only the
// original extension, and returns its public URL path.
func (s *LocalStore) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}
	return s.publicPath + "/" + name, nil
}
