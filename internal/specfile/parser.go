// Package specfile parses the flat motorcycle spec text into bike records.
//
// The input groups bikes by brand and category label lines, one attribute per
// line. Parsing is a single forward pass over the file driven by a small
// explicit state machine: a record opens on a bike-name line and is committed
// only when its price line arrives.
package specfile

import (
	"bufio"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/antigravitymoto/catalog-gen/internal/catalog"
	"github.com/antigravitymoto/catalog-gen/internal/errors"
	"github.com/antigravitymoto/catalog-gen/internal/weight"
)

// Attribute line prefixes recognized by the parser.
const (
	prefixEngine = "Cilindrata:"
	prefixPower  = "Potenza:"
	prefixPrice  = "Prezzo:"
)

// fallbackPrice is used when a price line yields no digits.
const fallbackPrice = 10000

// state tracks whether a bike record is currently open.
type state int

const (
	stateNoBike state = iota
	stateOpenBike
)

// Parser turns spec text into bike records.
type Parser struct {
	weights *weight.Synthesizer
	logger  *slog.Logger
}

// NewParser creates a parser. The weight synthesizer fills in the weight of
// every bike as its name line is read.
func NewParser(weights *weight.Synthesizer, logger *slog.Logger) *Parser {
	return &Parser{
		weights: weights,
		logger:  logger,
	}
}

// Result is the outcome of one parse.
type Result struct {
	// Bikes in source order, each still missing its image.
	Bikes []catalog.Bike
	// Discarded counts records that were opened but never saw a price line.
	Discarded int
}

// context carries the parser's mutable cursors through the line loop.
// It replaces the ambient globals of a looser implementation.
type context struct {
	brandID    string
	categoryID string
	open       *catalog.Bike
	state      state
	line       int
	seen       map[string]int // committed bike id -> line it was committed on
}

// ParseFile reads and parses the spec file at path.
// A missing or unreadable file is fatal.
func (p *Parser) ParseFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Inputf("spec file not readable: %s", path).WithCause(err)
	}
	defer f.Close() //nolint:errcheck // Read-only file

	return p.Parse(f)
}

// Parse consumes spec text and returns the parsed records in source order.
func (p *Parser) Parse(r io.Reader) (*Result, error) {
	result := &Result{}
	ctx := &context{
		state: stateNoBike,
		seen:  make(map[string]int),
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ctx.line++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if err := p.consume(ctx, result, line); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Input("failed reading spec text").WithCause(err)
	}

	// A record still open at EOF never saw its price line.
	if ctx.state == stateOpenBike {
		p.logger.Warn("spec ended with an uncommitted bike, discarding",
			"bike", ctx.open.Name,
			"line", ctx.line,
		)
		result.Discarded++
	}

	return result, nil
}

// consume classifies one non-blank line and advances the state machine.
func (p *Parser) consume(ctx *context, result *Result, line string) error {
	switch {
	case catalog.IsBrandLabel(line):
		ctx.brandID = catalog.BrandID(line)
		return nil

	case catalog.IsCategoryLabel(line):
		ctx.categoryID = catalog.CategoryID(line)
		return nil

	case strings.HasPrefix(line, prefixEngine):
		p.assign(ctx, "engine", func(b *catalog.Bike, v string) { b.Specs.Engine = v },
			strings.TrimSpace(strings.TrimPrefix(line, prefixEngine)))
		return nil

	case strings.HasPrefix(line, prefixPower):
		p.assign(ctx, "power", func(b *catalog.Bike, v string) { b.Specs.Power = v },
			strings.TrimSpace(strings.TrimPrefix(line, prefixPower)))
		return nil

	case strings.HasPrefix(line, prefixPrice):
		return p.commit(ctx, result, strings.TrimSpace(strings.TrimPrefix(line, prefixPrice)))

	default:
		return p.openBike(ctx, result, line)
	}
}

// assign sets an attribute on the open record, or skips the line with a
// warning when no record is open.
func (p *Parser) assign(ctx *context, attr string, set func(*catalog.Bike, string), value string) {
	if ctx.state != stateOpenBike {
		p.logger.Warn("attribute line before any bike, skipping",
			"attribute", attr,
			"line", ctx.line,
		)
		return
	}
	set(ctx.open, value)
}

// commit closes the open record on a price line and emits it. The price
// cursor clears so the next bike-name line starts fresh. A stray price line
// with no open record is skipped. Only committed records participate in
// duplicate-id detection: a discarded open record never reaches the catalog.
func (p *Parser) commit(ctx *context, result *Result, rawPrice string) error {
	if ctx.state != stateOpenBike {
		p.logger.Warn("price line before any bike, skipping", "line", ctx.line)
		return nil
	}

	if prev, dup := ctx.seen[ctx.open.ID]; dup {
		return errors.Duplicatef(
			"bike id %q at line %d collides with line %d", ctx.open.ID, ctx.line, prev)
	}
	ctx.seen[ctx.open.ID] = ctx.line

	ctx.open.Price = parsePrice(rawPrice)
	ctx.open.FormattedPrice = rawPrice
	result.Bikes = append(result.Bikes, *ctx.open)

	ctx.open = nil
	ctx.state = stateNoBike
	return nil
}

// openBike starts a new record bound to the current brand/category cursors.
// An already-open record is discarded: the price line is the commit point.
func (p *Parser) openBike(ctx *context, result *Result, name string) error {
	if ctx.brandID == "" || ctx.categoryID == "" {
		return errors.InvalidSpecf(
			"bike %q at line %d appears before any brand/category label", name, ctx.line)
	}

	if ctx.state == stateOpenBike {
		p.logger.Warn("bike opened before previous one was priced, discarding",
			"discarded", ctx.open.Name,
			"line", ctx.line,
		)
		result.Discarded++
	}

	bike := catalog.NewBike(name, ctx.brandID, ctx.categoryID, p.weights.ForCategory(ctx.categoryID))
	ctx.open = &bike
	ctx.state = stateOpenBike
	return nil
}

// parsePrice extracts the integer price from a currency-formatted string by
// stripping every non-digit character. "€12.599 promo" -> 12599.
func parsePrice(raw string) int {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	price, err := strconv.Atoi(digits)
	if err != nil {
		return fallbackPrice
	}
	return price
}
