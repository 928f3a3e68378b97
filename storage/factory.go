package storage

import (
	"fmt"

	"docvault/config"
)

// NewBlobStore creates the blob store backend selected by configuration.
func NewBlobStore(cfg *config.Config) (BlobStore, error) {
	switch cfg.StorageProvider {
	case "s3":
		if err := validateS3Config(cfg); err != nil {
			return nil, err
		}
		return NewS3Client(cfg)
	case "local":
		return NewLocalClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider type: %s", cfg.StorageProvider)
	}
}

func validateS3Config(cfg *config.Config) error {
	if cfg.S3Bucket == "" {
		return fmt.Errorf("bucket name is required")
	}
	if cfg.S3Region == "" {
		return fmt.Errorf("AWS region is required")
	}
	return nil
}
