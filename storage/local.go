package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"docvault/config"
)

// LocalClient implements BlobStore on the local file system
type LocalClient struct {
	basePath string
	baseURL  string
}

// NewLocalClient creates a new local storage client
func NewLocalClient(cfg *config.Config) (*LocalClient, error) {
	basePath := cfg.UploadPath
	if basePath == "" {
		basePath = "./uploads"
	}

	// Ensure directory exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %v", err)
	}

	return &LocalClient{
		basePath: basePath,
		baseURL:  cfg.AppURL,
	}, nil
}

// Upload saves data to the local file system
func (lc *LocalClient) Upload(key string, data []byte) error {
	fullPath := filepath.Join(lc.basePath, key)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewStorageError("local", "MKDIR_FAILED", err.Error(), key)
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		return NewStorageError("local", "UPLOAD_FAILED", err.Error(), key)
	}

	return nil
}

// UploadStream saves data from a stream to the local file system
func (lc *LocalClient) UploadStream(key string, reader io.Reader, size int64) error {
	fullPath := filepath.Join(lc.basePath, key)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return NewStorageError("local", "MKDIR_FAILED", err.Error(), key)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return NewStorageError("local", "CREATE_FAILED", err.Error(), key)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return NewStorageError("local", "UPLOAD_STREAM_FAILED", err.Error(), key)
	}

	return nil
}

// Download reads data from the local file system
func (lc *LocalClient) Download(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(lc.basePath, key))
	if err != nil {
		return nil, NewStorageError("local", "DOWNLOAD_FAILED", err.Error(), key)
	}
	return data, nil
}

// DownloadStream returns a reader for the file
func (lc *LocalClient) DownloadStream(key string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(lc.basePath, key))
	if err != nil {
		return nil, NewStorageError("local", "DOWNLOAD_STREAM_FAILED", err.Error(), key)
	}
	return file, nil
}

// Delete removes a file from the local file system
func (lc *LocalClient) Delete(key string) error {
	err := os.Remove(filepath.Join(lc.basePath, key))
	if err != nil && !os.IsNotExist(err) {
		return NewStorageError("local", "DELETE_FAILED", err.Error(), key)
	}
	return nil
}

// Exists checks if a file exists
func (lc *LocalClient) Exists(key string) (bool, error) {
	_, err := os.Stat(filepath.Join(lc.basePath, key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, NewStorageError("local", "STAT_FAILED", err.Error(), key)
	}
	return true, nil
}

// GetSize returns the file size
func (lc *LocalClient) GetSize(key string) (int64, error) {
	info, err := os.Stat(filepath.Join(lc.basePath, key))
	if err != nil {
		return 0, NewStorageError("local", "STAT_FAILED", err.Error(), key)
	}
	return info.Size(), nil
}

// GetPresignedURL returns a plain download URL; local storage has no
// signing, the handler streams the file itself.
func (lc *LocalClient) GetPresignedURL(key string, expiry time.Duration) (string, error) {
	return fmt.Sprintf("%s/uploads/%s", lc.baseURL, key), nil
}
