package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesystemArtifactStore_Put(t *testing.T) {
	root := t.TempDir()
	store, err := NewFilesystemArtifactStore(root)
	require.NoError(t, err)

	key := "shippinglabel/myaroma/dhl/abc.pdf"
	content := []byte("%PDF-1.4")
	require.NoError(t, store.Put(context.Background(), key, content, "application/pdf"))

	got, err := os.ReadFile(filepath.Join(root, "shippinglabel", "myaroma", "dhl", "abc.pdf"))
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestFilesystemArtifactStore_Put_Overwrites(t *testing.T) {
	store, err := NewFilesystemArtifactStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	key := "shippinglabel/myaroma/dhl/abc.pdf"
	require.NoError(t, store.Put(ctx, key, []byte("old"), "application/pdf"))
	require.NoError(t, store.Put(ctx, key, []byte("new"), "application/pdf"))

	got, err := os.ReadFile(filepath.Join(store.root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestFilesystemArtifactStore_Put_RejectsTraversal(t *testing.T) {
	store, err := NewFilesystemArtifactStore(t.TempDir())
	require.NoError(t, err)

	err = store.Put(context.Background(), "../escape.pdf", []byte("x"), "application/pdf")
	assert.Error(t, err)
}

func TestFilesystemArtifactStore_RequiresRoot(t *testing.T) {
	_, err := NewFilesystemArtifactStore("")
	assert.Error(t, err)
}

func TestNewS3ArtifactStore_Validation(t *testing.T) {
	_, err := NewS3ArtifactStore(nil)
	assert.Error(t, err)
}
