package catalog

import "strings"

// Brand and category labels are matched exactly (case-sensitive) against the
// spec text; the maps below translate a label to its canonical id.

// BrandLabels lists every brand label the parser recognizes, in spec order.
var BrandLabels = []string{"Honda", "Kawasaki", "KTM", "Yamaha", "Ducati", "Suzuki"}

// CategoryLabels lists every category label the parser recognizes.
var CategoryLabels = []string{"Cross", "Sportive", "Naked"}

var brandIDs = map[string]string{
	"Honda":    "honda",
	"Kawasaki": "kawasaki",
	"KTM":      "ktm",
	"Yamaha":   "yamaha",
	"Ducati":   "ducati",
	"Suzuki":   "suzuki",
}

var categoryIDs = map[string]string{
	"Cross":    "motocross",
	"Sportive": "sport",
	"Naked":    "naked",
}

// IsBrandLabel reports whether line is exactly a known brand label.
func IsBrandLabel(line string) bool {
	_, ok := brandIDs[line]
	return ok
}

// IsCategoryLabel reports whether line is exactly a known category label.
func IsCategoryLabel(line string) bool {
	_, ok := categoryIDs[line]
	return ok
}

// BrandID resolves a brand label to its canonical id. Unrecognized labels
// fall back to the lowercased raw label.
func BrandID(label string) string {
	if id, ok := brandIDs[label]; ok {
		return id
	}
	return strings.ToLower(label)
}

// CategoryID resolves a category label to its canonical id, with the same
// lowercase fallback as BrandID.
func CategoryID(label string) string {
	if id, ok := categoryIDs[label]; ok {
		return id
	}
	return strings.ToLower(label)
}

// desmoDisclaimer covers the one bike whose photo shoot never happened.
const desmoDisclaimer = "(Note: The image for this bike is unavailable, showing Desmo 450 MX as reference)"

// DisclaimerFor returns the special-case image substitution notice for the
// given bike name, or empty when none applies.
func DisclaimerFor(name string) string {
	if strings.Contains(name, "Desmo250 MX") {
		return desmoDisclaimer
	}
	return ""
}

// Brands is the static brand reference table emitted alongside the bikes.
// It deliberately includes BMW, which never appears in the parsed spec text.
var Brands = []Brand{
	{ID: "yamaha", Name: "Yamaha", Description: "Revs Your Heart"},
	{ID: "kawasaki", Name: "Kawasaki", Description: "Let the good times roll"},
	{ID: "ducati", Name: "Ducati", Description: "Style, Sophistication, Performance"},
	{ID: "bmw", Name: "BMW", Description: "The Ultimate Riding Machine"},
	{ID: "honda", Name: "Honda", Description: "The Power of Dreams"},
	{ID: "ktm", Name: "KTM", Description: "Ready to Race"},
	{ID: "suzuki", Name: "Suzuki", Description: "Way of Life!"},
}

// Categories is the static category reference table.
var Categories = []Category{
	{ID: "motocross", Name: "Motocross", Description: "Off-road performance beasts"},
	{ID: "sport", Name: "Sport", Description: "Speed and aerodynamics"},
	{ID: "naked", Name: "Naked", Description: "Stripped down aggressive styling"},
}
