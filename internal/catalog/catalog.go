// Package catalog contains the core entities of the Antigravity Motorcycles
// catalog and the closed brand/category vocabularies used while parsing.
package catalog

import "fmt"

// Bike represents one motorcycle in the generated catalog.
// Field order matters: the emitter serializes structs in declaration order so
// repeated runs stay diffable.
type Bike struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	BrandID        string `json:"brandId"`
	CategoryID     string `json:"categoryId"`
	Specs          Specs  `json:"specs"`
	Price          int    `json:"price"`
	FormattedPrice string `json:"formattedPrice"`
	Description    string `json:"description"`
	Disclaimer     string `json:"disclaimer,omitempty"`
	Image          string `json:"image"`
	BlurHash       string `json:"blurHash,omitempty"`
}

// Specs holds the per-bike technical attributes. Weight is always synthesized;
// engine and power are present only when the source text carries them.
type Specs struct {
	Engine string `json:"engine,omitempty"`
	Power  string `json:"power,omitempty"`
	Weight string `json:"weight"`
}

// Brand is a static brand descriptor for the reference table.
type Brand struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Category is a static category descriptor for the reference table.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog is the fully resolved output of a generation run.
type Catalog struct {
	Brands     []Brand    `json:"brands"`
	Categories []Category `json:"categories"`
	Bikes      []Bike     `json:"bikes"`
}

// NewBike builds a record for a freshly parsed bike name. The image is
// resolved later by the matcher; price defaults are applied when the closing
// price line arrives.
func NewBike(name, brandID, categoryID, weight string) Bike {
	return Bike{
		ID:          Slugify(name),
		Name:        name,
		BrandID:     brandID,
		CategoryID:  categoryID,
		Specs:       Specs{Weight: weight},
		Description: fmt.Sprintf("Experience the pinnacle of engineering with the %s.", name),
		Disclaimer:  DisclaimerFor(name),
	}
}
