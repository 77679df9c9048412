// Package providers contains dependency injection providers for the catalog
// generator.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/antigravitymoto/catalog-gen/internal/config"
	"github.com/antigravitymoto/catalog-gen/internal/emit"
	"github.com/antigravitymoto/catalog-gen/internal/logger"
	"github.com/antigravitymoto/catalog-gen/internal/pipeline"
	"github.com/antigravitymoto/catalog-gen/internal/watcher"
)

// ProvideConfig provides the generator configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	log.Info("Starting catalog generator",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"spec", cfg.Input.SpecPath,
		"assets", cfg.Input.AssetsPath,
	)

	return log, nil
}

// ProvideGenerator provides the generation pipeline.
func ProvideGenerator(i do.Injector) (*pipeline.Generator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	format, err := emit.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	return pipeline.NewGenerator(pipeline.Options{
		SpecPath:     cfg.Input.SpecPath,
		AssetsPath:   cfg.Input.AssetsPath,
		OutputPath:   cfg.Output.Path,
		Format:       format,
		PublicPrefix: cfg.Output.PublicPrefix,
		Seed:         cfg.Output.Seed,
		BlurHash:     cfg.Output.BlurHash,
		DryRun:       cfg.Output.DryRun,
	}, log.Logger), nil
}

// ProvideWatcher provides the input watcher for --watch mode.
func ProvideWatcher(i do.Injector) (*watcher.Watcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return watcher.New(log.Logger, watcher.Options{
		SettleDelay: cfg.Watch.SettleDelay,
	})
}
