// Package weight synthesizes plausible bike weights. The spec text never
// carries a weight, so each bike gets one drawn from a category-specific
// range.
package weight

import (
	"fmt"
	"math/rand"
)

// Inclusive weight ranges in kilograms per category id.
const (
	motocrossMin, motocrossMax = 100, 115
	sportMin, sportMax         = 170, 205
	defaultMin, defaultMax     = 160, 220
)

// Synthesizer draws weights from an injected random source so tests can seed
// it and assert bounds deterministically.
type Synthesizer struct {
	rng *rand.Rand
}

// NewSynthesizer creates a synthesizer seeded with the given value.
func NewSynthesizer(seed uint64) *Synthesizer {
	return &Synthesizer{
		rng: rand.New(rand.NewSource(int64(seed))),
	}
}

// NewSynthesizerFromSource creates a synthesizer backed by an existing source.
func NewSynthesizerFromSource(src rand.Source) *Synthesizer {
	return &Synthesizer{rng: rand.New(src)}
}

// ForCategory returns a weight string like "184 kg" for the given category id.
// Unrecognized categories use the naked/other range.
func (s *Synthesizer) ForCategory(categoryID string) string {
	var min, max int
	switch categoryID {
	case "motocross":
		min, max = motocrossMin, motocrossMax
	case "sport":
		min, max = sportMin, sportMax
	default:
		min, max = defaultMin, defaultMax
	}
	return fmt.Sprintf("%d kg", min+s.rng.Intn(max-min+1))
}
