package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coregenion/holo-gateway/internal/application/holo"
)

// Ensure FilesystemArtifactStore implements holo.ArtifactStore
var _ holo.ArtifactStore = (*FilesystemArtifactStore)(nil)

// FilesystemArtifactStore stores label artifacts under a local directory,
// mirroring the object key layout on disk. Intended for development and
// single-node deployments without an S3 backend.
type FilesystemArtifactStore struct {
	root string
}

// NewFilesystemArtifactStore creates a store rooted at the given directory
func NewFilesystemArtifactStore(root string) (*FilesystemArtifactStore, error) {
	if root == "" {
		return nil, errors.New("storage root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &FilesystemArtifactStore{root: root}, nil
}

// Put writes an artifact under the given key, overwriting any previous one.
// The content type is carried by the key's extension on disk.
func (s *FilesystemArtifactStore) Put(_ context.Context, key string, content []byte, _ string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	if strings.Contains(key, "..") {
		return fmt.Errorf("invalid storage key %q", key)
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}
