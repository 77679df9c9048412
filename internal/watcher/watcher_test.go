package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()

	w, err := New(testLogger(), Options{SettleDelay: 50 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx) //nolint:errcheck // Returns nil on cancel

	t.Cleanup(func() {
		cancel()
		w.Stop() //nolint:errcheck // Best-effort cleanup
	})

	return w
}

func waitForEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case event := <-w.Events():
		return event
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestWatcher_SettledWrite(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	path := filepath.Join(dir, "specs.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ducati\n"), 0644))

	event := waitForEvent(t, w)
	assert.Equal(t, path, event.Path)
	assert.False(t, event.Removed)
}

func TestWatcher_WriteBurstCollapses(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	path := filepath.Join(dir, "specs.txt")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("Ducati\nSportive\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	event := waitForEvent(t, w)
	assert.Equal(t, path, event.Path)

	// The burst settles into one event, not five.
	select {
	case extra := <-w.Events():
		t.Fatalf("unexpected extra event: %+v", extra)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Remove(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "specs.txt")
	require.NoError(t, os.WriteFile(path, []byte("Ducati\n"), 0644))

	w := startWatcher(t, dir)
	require.NoError(t, os.Remove(path))

	event := waitForEvent(t, w)
	assert.Equal(t, path, event.Path)
	assert.True(t, event.Removed)
}

func TestWatcher_NewSubdirectoryIsWatched(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	sub := filepath.Join(dir, "ducati")
	require.NoError(t, os.Mkdir(sub, 0755))

	// Give the watcher a moment to pick up the new directory.
	time.Sleep(200 * time.Millisecond)

	path := filepath.Join(sub, "panigale-v4.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0644))

	event := waitForEvent(t, w)
	assert.Equal(t, path, event.Path)
}

func TestWatcher_IgnoresTempFiles(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.tmp"), []byte("x"), 0644))

	select {
	case event := <-w.Events():
		t.Fatalf("unexpected event for ignored file: %+v", event)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_MissingPathFails(t *testing.T) {
	w, err := New(testLogger(), Options{})
	require.NoError(t, err)
	defer w.Stop() //nolint:errcheck // Best-effort cleanup

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "nope")))
}
