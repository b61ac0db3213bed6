package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bduwear/storefront/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// FallbackCategories returns the built-in category set used when the
// remote catalog is unavailable.
func FallbackCategories() []domain.Category {
	return []domain.Category{
		{ID: "fb-cat-1", Slug: "polos", Name: "Polos", DisplayOrder: 1, IsActive: true},
		{ID: "fb-cat-2", Slug: "hoodies", Name: "Hoodies", DisplayOrder: 2, IsActive: true},
	}
}

// FallbackProducts returns the built-in product set used when the remote
// catalog is unavailable, newest first.
func FallbackProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "fb-p4",
			Name:        "HOODIE PERSONALIZADO ANIME",
			Description: "Hoodie oversize con diseño anime personalizable.",
			Price:       dec("89.90"),
			Category:    "Hoodies",
			Type:        domain.ProductTypePersonalizado,
			Theme:       "Anime",
			Sizes:       []string{"S", "M", "L", "XL"},
			InStock:     true,
			Colors: []domain.ColorVariant{
				{
					ID: "fb-p4-negro", Name: "Negro", HexCode: "#000000",
					DisplayOrder: 1, IsDefault: true, InStock: true,
					Images: []domain.ProductImage{
						{ID: "fb-p4-img1", URL: "/images/fallback/hoodie-anime-negro.jpg", DisplayOrder: 1, IsPrimary: true},
					},
				},
			},
			CreatedAt: time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "fb-p3",
			Name:        "POLO PERSONALIZADO MUSICA",
			Description: "Polo oversize con estampado musical a pedido.",
			Price:       dec("59.90"),
			Category:    "Polos",
			Type:        domain.ProductTypePersonalizado,
			Theme:       "Musica",
			Sizes:       []string{"S", "M", "L"},
			InStock:     true,
			Colors: []domain.ColorVariant{
				{
					ID: "fb-p3-blanco", Name: "Blanco", HexCode: "#FFFFFF",
					DisplayOrder: 1, IsDefault: true, InStock: true,
					Images: []domain.ProductImage{
						{ID: "fb-p3-img1", URL: "/images/fallback/polo-musica-blanco.jpg", DisplayOrder: 1, IsPrimary: true},
					},
				},
			},
			CreatedAt: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "fb-p2",
			Name:        "POLO OVERSIZE BLANCO BDU",
			Description: "Polo oversize blanco de algodón peinado.",
			Price:       dec("49.90"),
			Category:    "Polos",
			Type:        domain.ProductTypeSimple,
			Sizes:       []string{"S", "M", "L", "XL"},
			InStock:     true,
			Colors: []domain.ColorVariant{
				{
					ID: "fb-p2-blanco", Name: "Blanco", HexCode: "#FFFFFF",
					DisplayOrder: 1, IsDefault: true, InStock: true,
					Images: []domain.ProductImage{
						{ID: "fb-p2-img1", URL: "/images/fallback/polo-blanco-front.jpg", DisplayOrder: 1, IsPrimary: true},
						{ID: "fb-p2-img2", URL: "/images/fallback/polo-blanco-back.jpg", DisplayOrder: 2},
					},
				},
			},
			CreatedAt: time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "fb-p1",
			Name:        "POLO OVERSIZE NEGRO BDU",
			Description: "Polo oversize negro de algodón peinado.",
			Price:       dec("49.90"),
			Category:    "Polos",
			Type:        domain.ProductTypeSimple,
			Sizes:       []string{"S", "M", "L", "XL"},
			InStock:     true,
			Colors: []domain.ColorVariant{
				{
					ID: "fb-p1-negro", Name: "Negro", HexCode: "#000000",
					DisplayOrder: 1, IsDefault: true, InStock: true,
					Images: []domain.ProductImage{
						{ID: "fb-p1-img1", URL: "/images/fallback/polo-negro-front.jpg", DisplayOrder: 1, IsPrimary: true},
						{ID: "fb-p1-img2", URL: "/images/fallback/polo-negro-back.jpg", DisplayOrder: 2},
					},
				},
			},
			CreatedAt: time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC),
		},
	}
}
