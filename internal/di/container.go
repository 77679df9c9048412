// Package di provides dependency injection configuration for the catalog
// generator.
package di

import (
	"github.com/samber/do/v2"

	"github.com/antigravitymoto/catalog-gen/internal/di/providers"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Pipeline
	do.Provide(injector, providers.ProvideGenerator)

	// Watch mode
	do.Provide(injector, providers.ProvideWatcher)

	return injector
}
