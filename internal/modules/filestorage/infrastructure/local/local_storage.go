package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/celebnet/backend/internal/modules/filestorage/domain"
)

// LocalStorage implements domain.FileStorage on the local filesystem. Files
// are expected to be served by the gateway under baseURL.
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// BasePath is the directory served under the base URL.
func (l *LocalStorage) BasePath() string {
	return l.basePath
}

// UploadFile implements domain.FileStorage
func (l *LocalStorage) UploadFile(ctx context.Context, key string, file io.Reader, contentType string) (string, error) {
	fullPath, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return l.baseURL + "/" + key, nil
}

// DeleteFile implements domain.FileStorage. Missing files are not an error.
func (l *LocalStorage) DeleteFile(ctx context.Context, key string) error {
	fullPath, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// GetKeyFromURL implements domain.FileStorage
func (l *LocalStorage) GetKeyFromURL(url string) (string, error) {
	if key, ok := strings.CutPrefix(url, l.baseURL+"/"); ok && key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%w: %s", domain.ErrForeignURL, url)
}

// resolve maps a key to a path and rejects keys escaping basePath.
func (l *LocalStorage) resolve(key string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(key)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return filepath.Join(l.basePath, filepath.FromSlash(key)), nil
}
