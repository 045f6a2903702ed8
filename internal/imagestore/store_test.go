package imagestore_test

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ymori/labnote/internal/imagestore"
)

func TestStore_RoundTrip(t *testing.T) {
	store, err := imagestore.New(t.TempDir(), nil)
	require.NoError(t, err)

	payload := []byte("fake image bytes")
	name, err := store.Store(payload, "photo.png")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(name, ".png"))
	require.NotEqual(t, "photo.png", name)

	path, ok := store.Resolve(name)
	require.True(t, ok)
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, payload, onDisk)

	encoded, ok := store.ReadInline(name)
	require.True(t, ok)
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)
	require.Equal(t, payload, decoded)
}

func TestStore_GeneratedNamesDiffer(t *testing.T) {
	store, err := imagestore.New(t.TempDir(), nil)
	require.NoError(t, err)

	a, err := store.Store([]byte("one"), "same.jpg")
	require.NoError(t, err)
	b, err := store.Store([]byte("one"), "same.jpg")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestStore_ResolveEmptyName(t *testing.T) {
	store, err := imagestore.New(t.TempDir(), nil)
	require.NoError(t, err)

	_, ok := store.Resolve("")
	require.False(t, ok)
}

func TestStore_ReadInlineMissingFile(t *testing.T) {
	store, err := imagestore.New(t.TempDir(), nil)
	require.NoError(t, err)

	_, ok := store.ReadInline("nope.png")
	require.False(t, ok)
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")
	_, err := imagestore.New(dir, nil)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	require.True(t, info.IsDir())
}
