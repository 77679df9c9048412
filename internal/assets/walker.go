// Package assets indexes the image asset tree. The walker produces candidate
// file paths; all filtering and matching is the matcher's job.
package assets

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/antigravitymoto/catalog-gen/internal/errors"
)

// Walker traverses the asset tree and discovers candidate files.
type Walker struct {
	logger *slog.Logger
}

// NewWalker creates a new walker.
func NewWalker(logger *slog.Logger) *Walker {
	return &Walker{
		logger: logger,
	}
}

// WalkResult represents a file discovered during walking.
type WalkResult struct {
	Error   error
	Path    string
	RelPath string
	Size    int64
}

// Walk traverses the asset root and streams discovered regular files in
// lexical order. Directories are descended into, never emitted. The channel
// closes when the walk completes or the context is canceled.
func (w *Walker) Walk(ctx context.Context, rootPath string) <-chan WalkResult {
	results := make(chan WalkResult, 100)

	go func() {
		defer close(results)

		err := filepath.WalkDir(rootPath, func(path string, d os.DirEntry, err error) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			if err != nil {
				w.logger.Error("walk error", "path", path, "error", err)
				// Continue walking despite errors.
				return nil
			}

			if d.IsDir() {
				return nil
			}

			info, err := d.Info()
			if err != nil {
				w.logger.Error("failed to get file info", "path", path, "error", err)
				return nil
			}

			relPath, err := filepath.Rel(rootPath, path)
			if err != nil {
				w.logger.Error("failed to compute relative path", "path", path, "error", err)
				relPath = path
			}

			result := WalkResult{
				Path:    path,
				RelPath: relPath,
				Size:    info.Size(),
			}

			select {
			case results <- result:
			case <-ctx.Done():
				return ctx.Err()
			}

			return nil
		})

		if err != nil && !stderrors.Is(err, context.Canceled) {
			w.logger.Error("walk failed", "root", rootPath, "error", err)
		}
	}()

	return results
}

// List collects every candidate file under rootPath into a flat ordered
// slice. An inaccessible root is fatal: the pipeline cannot match images
// without its asset tree.
func (w *Walker) List(ctx context.Context, rootPath string) ([]string, error) {
	if _, err := os.Stat(rootPath); err != nil {
		return nil, errors.Inputf("asset root not accessible: %s", rootPath).WithCause(err)
	}

	var paths []string
	for result := range w.Walk(ctx, rootPath) {
		if result.Error != nil {
			continue
		}
		paths = append(paths, result.Path)
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Input("asset walk canceled").WithCause(err)
	}

	return paths, nil
}
