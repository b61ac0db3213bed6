package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductType distinguishes stock designs from made-to-order ones.
type ProductType string

const (
	ProductTypeSimple        ProductType = "simple"
	ProductTypePersonalizado ProductType = "personalizado"
)

// Product is an immutable catalog record. Price is in main currency units.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Type        ProductType     `json:"type"`
	Theme       string          `json:"theme"` // meaningful only for personalizado products
	Sizes       []string        `json:"sizes"`
	InStock     bool            `json:"in_stock"`
	Colors      []ColorVariant  `json:"colors"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Slug returns the URL key derived from the product name.
func (p *Product) Slug() string {
	return Slugify(p.Name)
}

// ColorVariant is one purchasable color of a product with its image set.
type ColorVariant struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	HexCode      string         `json:"hex_code,omitempty"`
	DisplayOrder int            `json:"display_order"`
	IsDefault    bool           `json:"is_default"`
	InStock      bool           `json:"in_stock"`
	Images       []ProductImage `json:"images"`
}

// PrimaryImage returns the image flagged primary, falling back to the
// first image when none is flagged. ok is false when the variant has no
// images at all.
func (v *ColorVariant) PrimaryImage() (img ProductImage, ok bool) {
	for _, im := range v.Images {
		if im.IsPrimary {
			return im, true
		}
	}
	if len(v.Images) > 0 {
		return v.Images[0], true
	}
	return ProductImage{}, false
}

// ProductImage is a single image of a color variant.
type ProductImage struct {
	ID           string `json:"id"`
	URL          string `json:"url"`
	DisplayOrder int    `json:"display_order"`
	IsPrimary    bool   `json:"is_primary"`
}
