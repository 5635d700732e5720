package shaders

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherSignalsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.shader")
	require.NoError(t, os.WriteFile(path, []byte("#shader vertex\n"), 0o644))

	w, err := Watch(path)
	if err != nil {
		t.Skipf("inotify unavailable: %s", err)
	}
	defer func() { _ = w.Close() }()
	assert.Equal(t, path, w.Path())

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.shader"), []byte("x"), 0o644))
	select {
	case <-w.Changed():
		t.Fatal("notified for an unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("#shader fragment\n"), 0o644))
	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no notification after write")
	}
}

func TestWatcherSignalsRenames(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.shader")
	require.NoError(t, os.WriteFile(path, []byte("#shader vertex\n"), 0o644))

	w, err := Watch(path)
	if err != nil {
		t.Skipf("inotify unavailable: %s", err)
	}
	defer func() { _ = w.Close() }()

	tmp := filepath.Join(dir, ".quad.shader.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("#shader fragment\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-w.Changed():
	case <-time.After(5 * time.Second):
		t.Fatal("no notification after rename")
	}
}
