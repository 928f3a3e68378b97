package storage

import (
	"io"
	"time"
)

// BlobStore is the narrow interface to the external object store holding
// raw file bytes. The core never interprets blob contents; it only keeps
// the key.
type BlobStore interface {
	Upload(key string, data []byte) error
	UploadStream(key string, reader io.Reader, size int64) error
	Download(key string) ([]byte, error)
	DownloadStream(key string) (io.ReadCloser, error)
	Delete(key string) error
	Exists(key string) (bool, error)
	GetSize(key string) (int64, error)
	GetPresignedURL(key string, expiry time.Duration) (string, error)
}

// StorageError represents storage-specific errors
type StorageError struct {
	Provider string `json:"provider"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Key      string `json:"key,omitempty"`
}

func (e *StorageError) Error() string {
	return e.Message
}

// NewStorageError creates a new storage error
func NewStorageError(provider, code, message, key string) *StorageError {
	return &StorageError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Key:      key,
	}
}
