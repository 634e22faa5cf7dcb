package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "http://localhost:8080/uploads/")
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "campaigns/abc.png", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/campaigns/abc.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "campaigns", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)
}

func TestFileStore_RejectsEscapingKeys(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	for _, key := range []string{"", "  ", "..", "../secret", "a/../../b", "/etc/passwd", `..\up.png`} {
		_, err := store.Save(context.Background(), key, []byte("x"))
		assert.Error(t, err, "key %q", key)
	}
}

func TestFileStore_CancelledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Save(ctx, "campaigns/x.png", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewFileStore_RequiresPath(t *testing.T) {
	_, err := NewFileStore(" ", "http://localhost")
	assert.Error(t, err)
}

func TestCleanKey(t *testing.T) {
	cases := map[string]string{
		"campaigns/a.png":     "campaigns/a.png",
		" campaigns/./a.png ": "campaigns/a.png",
		`campaigns\a.png`:     "campaigns/a.png",
		"a/../b.png":          "b.png",
	}
	for in, want := range cases {
		got, err := cleanKey(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}
