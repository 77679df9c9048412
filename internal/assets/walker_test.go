package assets

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/antigravitymoto/catalog-gen/internal/errors"
)

func newTestWalker() *Walker {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewWalker(logger)
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("img"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_List_EmptyDirectory(t *testing.T) {
	tmpDir := t.TempDir()

	paths, err := newTestWalker().List(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("expected 0 paths, got %d", len(paths))
	}
}

func TestWalker_List_RecursesAndSkipsDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "ducati", "panigale-v4.png"))
	writeFile(t, filepath.Join(tmpDir, "ducati", "monster.jpg"))
	writeFile(t, filepath.Join(tmpDir, "yamaha", "deep", "mt07.webp"))
	writeFile(t, filepath.Join(tmpDir, "readme.txt"))

	paths, err := newTestWalker().List(context.Background(), tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every regular file, regardless of extension; no directory entries.
	if len(paths) != 4 {
		t.Fatalf("expected 4 paths, got %d: %v", len(paths), paths)
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("stat %s: %v", p, err)
		}
		if info.IsDir() {
			t.Errorf("directory leaked into results: %s", p)
		}
	}
}

func TestWalker_List_DeterministicOrder(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "b", "two.png"))
	writeFile(t, filepath.Join(tmpDir, "a", "one.png"))

	first, err := newTestWalker().List(context.Background(), tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := newTestWalker().List(context.Background(), tmpDir)
	if err != nil {
		t.Fatal(err)
	}

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected 2 paths, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("orders diverge at %d: %s vs %s", i, first[i], second[i])
		}
	}
	// Lexical order: a/ before b/.
	if filepath.Base(first[0]) != "one.png" {
		t.Errorf("expected a/one.png first, got %s", first[0])
	}
}

func TestWalker_List_MissingRootIsFatal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := newTestWalker().List(context.Background(), missing)
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !errors.Is(err, errors.ErrInput) {
		t.Errorf("expected input error, got %v", err)
	}
}

func TestWalker_Walk_CanceledContext(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.png"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Closed channel, no hang.
	count := 0
	for range newTestWalker().Walk(ctx, tmpDir) {
		count++
	}
	if count > 1 {
		t.Errorf("expected at most 1 result after cancel, got %d", count)
	}
}
