package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename strips path separators and unsafe characters from a
// client-supplied filename, keeping only the base name.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}

// LocalStore saves uploaded files to a directory on disk
type LocalStore struct {
	dir string
}

// NewLocalStore creates a local file store rooted at dir
func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Dir returns the store's root directory
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes an uploaded file under its sanitized name and returns that name.
// Same-named uploads overwrite each other; the name is not made unique.
func (s *LocalStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	name := SanitizeFilename(fileHeader.Filename)
	if name == "" {
		return "", fmt.Errorf("invalid filename %q", fileHeader.Filename)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// Resolve returns the absolute path for a stored file name, or ok=false if
// the file does not exist on disk.
func (s *LocalStore) Resolve(name string) (string, bool) {
	path := filepath.Join(s.dir, filepath.Base(name))
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
