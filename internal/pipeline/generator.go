// Package pipeline orchestrates the catalog generation phases: parse the spec
// text, synthesize weights, index the asset tree, match images, and emit the
// artifact. One run is a single-threaded, run-to-completion batch job.
package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/antigravitymoto/catalog-gen/internal/assets"
	"github.com/antigravitymoto/catalog-gen/internal/catalog"
	"github.com/antigravitymoto/catalog-gen/internal/emit"
	"github.com/antigravitymoto/catalog-gen/internal/id"
	"github.com/antigravitymoto/catalog-gen/internal/match"
	"github.com/antigravitymoto/catalog-gen/internal/media/images"
	"github.com/antigravitymoto/catalog-gen/internal/specfile"
	"github.com/antigravitymoto/catalog-gen/internal/weight"
)

// Options configures a generator.
type Options struct {
	// SpecPath is the flat spec text file.
	SpecPath string
	// AssetsPath is the root of the image asset tree.
	AssetsPath string
	// OutputPath is the artifact location, fully overwritten each run.
	OutputPath string
	// Format selects the artifact serialization.
	Format emit.Format
	// PublicPrefix is the URL prefix matched image paths are rewritten under.
	PublicPrefix string
	// Seed for the weight synthesizer; 0 seeds from the clock.
	Seed uint64
	// BlurHash enables placeholder hash computation for matched images.
	BlurHash bool
	// DryRun skips writing the artifact.
	DryRun bool
}

// Generator runs the full generation pipeline.
type Generator struct {
	opts    Options
	parser  *specfile.Parser
	walker  *assets.Walker
	matcher *match.Matcher
	emitter *emit.Emitter
	logger  *slog.Logger
}

// NewGenerator wires the pipeline components for the given options.
func NewGenerator(opts Options, logger *slog.Logger) *Generator {
	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return &Generator{
		opts:    opts,
		parser:  specfile.NewParser(weight.NewSynthesizer(seed), logger),
		walker:  assets.NewWalker(logger),
		matcher: match.NewMatcher(opts.AssetsPath, opts.PublicPrefix, logger),
		emitter: emit.NewEmitter(logger),
		logger:  logger,
	}
}

// Result is the outcome of one generation run.
type Result struct {
	StartedAt    time.Time
	CompletedAt  time.Time
	RunID        string
	ArtifactPath string
	Parsed       int
	Discarded    int
	Matched      int
	Missing      int
}

// Run executes one full generation pass.
// Unmatched images degrade to placeholders and never abort the run; an
// unreadable input or a failed artifact write is fatal.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	runID := id.MustGenerate("run")
	logger := g.logger.With("run", runID)

	result := &Result{
		RunID:     runID,
		StartedAt: time.Now(),
	}

	logger.Info("parsing spec", "path", g.opts.SpecPath)
	parsed, err := g.parser.ParseFile(g.opts.SpecPath)
	if err != nil {
		return nil, err
	}
	result.Parsed = len(parsed.Bikes)
	result.Discarded = parsed.Discarded

	logger.Info("indexing assets", "path", g.opts.AssetsPath)
	candidates, err := g.walker.List(ctx, g.opts.AssetsPath)
	if err != nil {
		return nil, err
	}

	outcomes, report := g.matcher.Resolve(parsed.Bikes, candidates)
	result.Matched = report.Matched
	result.Missing = report.Missing
	logger.Info("image matching complete",
		"found", report.Matched,
		"missing", report.Missing,
	)

	if g.opts.BlurHash {
		g.computeBlurHashes(parsed.Bikes, outcomes, logger)
	}

	cat := catalog.Catalog{
		Brands:     catalog.Brands,
		Categories: catalog.Categories,
		Bikes:      parsed.Bikes,
	}

	if g.opts.DryRun {
		logger.Info("dry run, skipping artifact write")
	} else {
		if err := g.emitter.Write(cat, g.opts.OutputPath, g.opts.Format); err != nil {
			return nil, err
		}
		result.ArtifactPath = g.opts.OutputPath
	}

	result.CompletedAt = time.Now()
	logger.Info("generation complete",
		"duration", result.CompletedAt.Sub(result.StartedAt),
		"bikes", result.Parsed,
		"discarded", result.Discarded,
	)

	return result, nil
}

// computeBlurHashes fills in placeholder hashes for matched images.
// Failures are logged and skipped; the hash is an enhancement, not a
// requirement of the artifact.
func (g *Generator) computeBlurHashes(bikes []catalog.Bike, outcomes []match.Outcome, logger *slog.Logger) {
	for i := range bikes {
		if outcomes[i].Missing {
			continue
		}
		hash, err := images.ComputeBlurHash(outcomes[i].Path)
		if err != nil {
			logger.Debug("blurhash skipped",
				"bike", bikes[i].Name,
				"path", outcomes[i].Path,
				"error", err,
			)
			continue
		}
		bikes[i].BlurHash = hash
	}
}
