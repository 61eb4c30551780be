package views

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.json")
	ctx := context.Background()

	_, err := NewFileStore(path).Increment(ctx, "frontend/post-a")
	require.NoError(t, err)

	n, err := NewFileStore(path).Get(ctx, "frontend/post-a")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"frontend/post-a": 1}`, string(raw))
}

func TestFileStore_ReadsExistingObject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"x/y": 41}`), 0o644))

	n, err := NewFileStore(path).Increment(context.Background(), "x/y")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
}

func TestFileStore_CorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o644))

	store := NewFileStore(path)
	_, err := store.Get(context.Background(), "x/y")
	assert.Error(t, err)
	_, err = store.Increment(context.Background(), "x/y")
	assert.Error(t, err)
}

func TestFileStore_EmptyFileReadsAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "views.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	all, err := NewFileStore(path).All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
