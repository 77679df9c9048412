// Package main provides the entry point for the catalog generator.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/antigravitymoto/catalog-gen/internal/config"
	"github.com/antigravitymoto/catalog-gen/internal/di"
	"github.com/antigravitymoto/catalog-gen/internal/errors"
	"github.com/antigravitymoto/catalog-gen/internal/logger"
	"github.com/antigravitymoto/catalog-gen/internal/pipeline"
	"github.com/antigravitymoto/catalog-gen/internal/watcher"
)

func main() {
	injector := di.NewContainer()

	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	gen, err := do.Invoke[*pipeline.Generator](injector)
	if err != nil {
		log.Error("Failed to build pipeline", "error", err)
		os.Exit(errors.ExitCode(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := gen.Run(ctx)
	if err != nil {
		log.Error("Generation failed", "error", err)
		os.Exit(errors.ExitCode(err))
	}
	report(result)

	if !cfg.Watch.Enabled {
		return
	}

	if err := watchLoop(ctx, injector, cfg, log, gen); err != nil {
		log.Error("Watch mode failed", "error", err)
		os.Exit(errors.ExitCode(err))
	}
}

// watchLoop regenerates the catalog whenever the spec file or asset tree
// changes, until the context is canceled by a shutdown signal.
func watchLoop(ctx context.Context, injector do.Injector, cfg *config.Config, log *logger.Logger, gen *pipeline.Generator) error {
	w, err := do.Invoke[*watcher.Watcher](injector)
	if err != nil {
		return err
	}
	defer w.Stop() //nolint:errcheck // Shutting down anyway

	for _, path := range []string{cfg.Input.SpecPath, cfg.Input.AssetsPath} {
		if err := w.Watch(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	go func() {
		if err := w.Start(ctx); err != nil {
			log.Error("Watcher stopped", "error", err)
		}
	}()

	log.Info("Watching for changes",
		"spec", cfg.Input.SpecPath,
		"assets", cfg.Input.AssetsPath,
	)

	for {
		select {
		case <-ctx.Done():
			log.Info("Shutting down watch mode")
			return nil
		case err := <-w.Errors():
			log.Error("Watch error", "error", err)
		case event := <-w.Events():
			log.Info("Input changed, regenerating", "path", event.Path)
			result, err := gen.Run(ctx)
			if err != nil {
				// Keep watching: a transient parse error should not end
				// the session.
				log.Error("Regeneration failed", "error", err)
				continue
			}
			report(result)
		}
	}
}

// report prints the operator-facing run summary.
func report(result *pipeline.Result) {
	fmt.Printf("Image Matching Complete. Found: %d, Missing: %d\n",
		result.Matched, result.Missing)
	if result.ArtifactPath != "" {
		fmt.Printf("Successfully generated %s with %d bikes!\n",
			result.ArtifactPath, result.Parsed)
	}
}
