// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watch

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rug/pkg/types"
)

// startWatcher runs a watcher over root and returns the channel receiving
// handler batches.
func startWatcher(t *testing.T, root string) <-chan []string {
	t.Helper()
	batches := make(chan []string, 16)
	cfg := types.BuildConfig{SourceDir: root, Debounce: 20 * time.Millisecond}
	w, err := New(cfg, &bytes.Buffer{}, func(_ context.Context, paths []string) {
		batches <- paths
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
	return batches
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func TestWatcher_ReportsChangedSources(t *testing.T) {
	root := t.TempDir()
	batches := startWatcher(t, root)

	path := filepath.Join(root, "index.rug")
	require.NoError(t, os.WriteFile(path, []byte(".a"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644))

	assert.Equal(t, []string{path}, waitBatch(t, batches))
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	batches := startWatcher(t, root)

	dir := filepath.Join(root, "pages")
	require.NoError(t, os.Mkdir(dir, 0o755))
	path := filepath.Join(dir, "about.rug")
	require.NoError(t, os.WriteFile(path, []byte(".about"), 0o644))

	assert.Contains(t, waitBatch(t, batches), path)
}

func TestNew_MissingRoot(t *testing.T) {
	cfg := types.BuildConfig{SourceDir: filepath.Join(t.TempDir(), "missing")}
	_, err := New(cfg, &bytes.Buffer{}, func(context.Context, []string) {})
	assert.Error(t, err)
}
