package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStorage(t *testing.T) *LocalStorage {
	t.Helper()
	st, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	return st
}

func TestLocalStorageSaveAndGet(t *testing.T) {
	st := newTestLocalStorage(t)
	ctx := context.Background()

	err := st.Save(ctx, "cases/photo.jpg", strings.NewReader("image-bytes"), "image/jpeg")
	require.NoError(t, err)

	exists, err := st.Exists(ctx, "cases/photo.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := st.Get(ctx, "cases/photo.jpg")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(data))
}

func TestLocalStorageDelete(t *testing.T) {
	st := newTestLocalStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "cases/photo.jpg", strings.NewReader("x"), "image/jpeg"))
	require.NoError(t, st.Delete(ctx, "cases/photo.jpg"))

	exists, err := st.Exists(ctx, "cases/photo.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, st.Delete(ctx, "cases/photo.jpg"))
}

func TestLocalStorageGetURL(t *testing.T) {
	ctx := context.Background()

	st, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	url, err := st.GetURL(ctx, "cases/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "/files/cases/photo.jpg", url)

	st, err = NewLocalStorage(Config{BasePath: t.TempDir(), BaseURL: "https://cdn.example.com/files"})
	require.NoError(t, err)
	url, err = st.GetURL(ctx, "cases/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/files/cases/photo.jpg", url)
}
