package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/RealSujal/community-app/internal/infrastructure/config"
)

// URLPrefix is the public path under which uploads are served
const URLPrefix = "uploads"

// ErrUnsupportedType is returned for a file extension outside the allowed set
var ErrUnsupportedType = errors.New("unsupported file type")

// Extension sets accepted by the upload endpoints
var (
	ImageExtensions = map[string]bool{".jpeg": true, ".jpg": true, ".png": true, ".gif": true}
	VideoExtensions = map[string]bool{".mp4": true, ".webm": true}
)

// IsImage reports whether filename has an image extension
func IsImage(filename string) bool {
	return ImageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// IsVideo reports whether filename has a video extension
func IsVideo(filename string) bool {
	return VideoExtensions[strings.ToLower(filepath.Ext(filename))]
}

// FileStore writes uploads below a local directory
type FileStore struct {
	Root    string
	BaseURL string
}

// NewFileStore creates a store rooted at cfg.UploadDir
func NewFileStore(cfg *config.Config) *FileStore {
	return &FileStore{
		Root:    cfg.UploadDir,
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Save copies the upload into subdir under a random name. It returns the
// public relative path, e.g. "uploads/posts/<uuid>.jpg".
func (s *FileStore) Save(file *multipart.FileHeader, subdir string, allowed ...map[string]bool) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(allowed) > 0 && !anyAllows(allowed, ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	dir := filepath.Join(s.Root, subdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.New().String() + ext
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := writeFile(filepath.Join(dir, name), src); err != nil {
		return "", err
	}
	return path.Join(URLPrefix, subdir, name), nil
}

// writeFile copies r into a new file at dst. On any failure the partial file
// is removed.
func writeFile(dst string, r io.Reader) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close upload: %w", cerr)
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("write upload: %w", err)
	}
	return nil
}

// Remove deletes a file previously returned by Save. Missing files are ignored.
func (s *FileStore) Remove(relPath string) error {
	rel := strings.TrimPrefix(strings.TrimPrefix(relPath, "/"), URLPrefix+"/")
	if rel == "" || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// URL expands a stored relative path to an absolute URL. Empty stays empty,
// absolute URLs are returned unchanged.
func (s *FileStore) URL(relPath string) string {
	if relPath == "" {
		return ""
	}
	if strings.HasPrefix(relPath, "http://") || strings.HasPrefix(relPath, "https://") {
		return relPath
	}
	p := strings.TrimLeft(strings.ReplaceAll(relPath, "\\", "/"), "/")
	return s.BaseURL + "/" + p
}

func anyAllows(sets []map[string]bool, ext string) bool {
	for _, set := range sets {
		if set[ext] {
			return true
		}
	}
	return false
}
