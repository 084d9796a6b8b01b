package storage

import (
	"context"
	"fmt"

	"github.com/coregenion/holo-gateway/internal/application/holo"
	infraconfig "github.com/coregenion/holo-gateway/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewArtifactStore creates the artifact store selected by the storage driver
func NewArtifactStore(ctx context.Context, cfg *infraconfig.StorageConfig, logger *zap.Logger) (holo.ArtifactStore, error) {
	switch cfg.Driver {
	case "s3":
		store, err := NewS3ArtifactStore(cfg, WithLogger(logger))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("Using S3 artifact store", zap.String("bucket", cfg.Bucket))
		return store, nil
	case "filesystem":
		store, err := NewFilesystemArtifactStore(cfg.LocalPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Using filesystem artifact store", zap.String("path", cfg.LocalPath))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
