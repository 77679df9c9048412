// Package match resolves each parsed bike to an image file using normalized
// fuzzy filename comparison, scoped to the bike's brand.
package match

import (
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/antigravitymoto/catalog-gen/internal/catalog"
)

// Scores for partial filename matches. Both can apply to one candidate.
const (
	scoreFileContainsName = 10
	scoreNameContainsFile = 5
)

// placeholderBase is the remote fallback image, parameterized by bike name.
const placeholderBase = "https://placehold.co/600x400/1a1a1a/FFF?text="

// Matcher joins bike records to asset files.
type Matcher struct {
	rootPath     string // asset tree on disk, e.g. public/bikes
	publicPrefix string // public URL prefix the rewritten paths live under
	logger       *slog.Logger
}

// NewMatcher creates a matcher. Matched paths are rewritten relative to
// rootPath and placed under publicPrefix with forward slashes.
func NewMatcher(rootPath, publicPrefix string, logger *slog.Logger) *Matcher {
	return &Matcher{
		rootPath:     rootPath,
		publicPrefix: publicPrefix,
		logger:       logger,
	}
}

// Outcome is the result of matching a single bike.
type Outcome struct {
	// Path is the matched file's path on disk; empty when Missing.
	Path string
	// Image is the value to store on the record: a rewritten public path,
	// or a placeholder URL when Missing.
	Image string
	// Score of the winning candidate. Exact matches report as -1.
	Score   int
	Missing bool
}

// Report summarizes a matching pass.
type Report struct {
	Matched int
	Missing int
	// MissingBikes names each bike left with a placeholder, in catalog order.
	MissingBikes []string
}

// Match finds the best-scoring candidate for one bike.
//
// Candidates are restricted to paths containing the bike's brand id
// (case-insensitive). An exact normalized-stem match wins immediately;
// otherwise partial containment scores accumulate and the highest strictly
// greater score wins, so ties keep the earliest candidate.
func (m *Matcher) Match(bike catalog.Bike, candidates []string) Outcome {
	name := catalog.NormalizeKey(bike.Name)

	bestPath := ""
	maxScore := 0

	for _, file := range candidates {
		if !strings.Contains(strings.ToLower(file), bike.BrandID) {
			continue
		}

		stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		key := catalog.NormalizeKey(stem)

		if key == name {
			return Outcome{Path: file, Image: m.rewrite(file), Score: -1}
		}

		score := 0
		if strings.Contains(key, name) {
			score += scoreFileContainsName
		}
		if strings.Contains(name, key) {
			score += scoreNameContainsFile
		}

		if score > maxScore {
			maxScore = score
			bestPath = file
		}
	}

	if bestPath == "" {
		return Outcome{
			Image:   Placeholder(bike.Name),
			Missing: true,
		}
	}

	return Outcome{Path: bestPath, Image: m.rewrite(bestPath), Score: maxScore}
}

// Resolve matches every bike in place and returns the pass summary.
// A missing image is a reported degraded case, never an error: the bike gets
// a placeholder and the run continues.
func (m *Matcher) Resolve(bikes []catalog.Bike, candidates []string) ([]Outcome, Report) {
	outcomes := make([]Outcome, len(bikes))
	report := Report{}

	for i := range bikes {
		outcome := m.Match(bikes[i], candidates)
		outcomes[i] = outcome
		bikes[i].Image = outcome.Image

		if outcome.Missing {
			report.Missing++
			report.MissingBikes = append(report.MissingBikes, bikes[i].Name)
			m.logger.Warn("missing image",
				"bike", bikes[i].Name,
				"brand", bikes[i].BrandID,
			)
			continue
		}
		report.Matched++
	}

	return outcomes, report
}

// rewrite converts an on-disk candidate path to its public form:
// {root}/ducati/panigale-v4.png -> /bikes/ducati/panigale-v4.png.
func (m *Matcher) rewrite(file string) string {
	rel, err := filepath.Rel(m.rootPath, file)
	if err != nil {
		// Candidate came from outside the root; serve it by basename.
		rel = filepath.Base(file)
	}
	return path.Join("/", m.publicPrefix, filepath.ToSlash(rel))
}

// Placeholder builds the remote placeholder URL for an unmatched bike.
func Placeholder(name string) string {
	return placeholderBase + url.QueryEscape(name)
}

// Describe renders one candidate's score against a bike name, for the
// matchprobe debugging tool.
func Describe(bikeName, candidate string) string {
	name := catalog.NormalizeKey(bikeName)
	stem := strings.TrimSuffix(filepath.Base(candidate), filepath.Ext(candidate))
	key := catalog.NormalizeKey(stem)

	if key == name {
		return fmt.Sprintf("%s exact", candidate)
	}

	score := 0
	if strings.Contains(key, name) {
		score += scoreFileContainsName
	}
	if strings.Contains(name, key) {
		score += scoreNameContainsFile
	}
	return fmt.Sprintf("%s score=%d", candidate, score)
}
