package catalog

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bduwear/storefront/internal/domain"
)

func filterFixture() []domain.Product {
	return []domain.Product{
		{
			ID: "p1", Name: "POLO OVERSIZE NEGRO BDU",
			Description: "Polo oversize negro de algodón.",
			Price:       decimal.RequireFromString("49.90"), Category: "Polos",
			Type: domain.ProductTypeSimple, Sizes: []string{"M", "L"},
			Colors:    []domain.ColorVariant{{ID: "c1", Name: "Negro"}},
			CreatedAt: time.Date(2025, 7, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "p2", Name: "HOODIE PERSONALIZADO ANIME",
			Description: "Hoodie con diseño anime.",
			Price:       decimal.RequireFromString("89.90"), Category: "Hoodies",
			Type: domain.ProductTypePersonalizado, Theme: "Anime", Sizes: []string{"S", "M"},
			Colors:    []domain.ColorVariant{{ID: "c2", Name: "Blanco"}, {ID: "c3", Name: "Negro"}},
			CreatedAt: time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "p3", Name: "POLO PERSONALIZADO MUSICA",
			Description: "Polo con estampado musical.",
			Price:       decimal.RequireFromString("59.90"), Category: "Polos",
			Type: domain.ProductTypePersonalizado, Theme: "Musica", Sizes: []string{"XL"},
			Colors:    []domain.ColorVariant{{ID: "c4", Name: "Rojo"}},
			CreatedAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newFilterStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(&fakeSource{products: filterFixture()})
	if err := s.EnsureInitialized(context.Background()); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	return s
}

func productIDs(products []domain.Product) []string {
	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestFilterProducts_EmptyFilterReturnsAllInOrder(t *testing.T) {
	s := newFilterStore(t)
	got := productIDs(s.FilterProducts(domain.FilterState{}))
	want := []string{"p1", "p2", "p3"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("empty filter = %v, want %v", got, want)
	}
}

func TestFilterProducts_ByType(t *testing.T) {
	s := newFilterStore(t)
	got := productIDs(s.FilterProducts(domain.FilterState{
		Types: []domain.ProductType{domain.ProductTypePersonalizado},
	}))
	if !reflect.DeepEqual(got, []string{"p2", "p3"}) {
		t.Fatalf("type filter = %v", got)
	}
}

func TestFilterProducts_BySize(t *testing.T) {
	s := newFilterStore(t)
	got := productIDs(s.FilterProducts(domain.FilterState{Sizes: []string{"M"}}))
	if !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Fatalf("size filter = %v", got)
	}
}

func TestFilterProducts_ColorCaseInsensitive(t *testing.T) {
	s := newFilterStore(t)
	got := productIDs(s.FilterProducts(domain.FilterState{Colors: []string{"negro"}}))
	if !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Fatalf("color filter = %v", got)
	}
}

func TestFilterProducts_ThemeExemptsSimpleProducts(t *testing.T) {
	s := newFilterStore(t)
	got := productIDs(s.FilterProducts(domain.FilterState{Themes: []string{"Anime"}}))
	// p1 is simple, so the theme dimension does not constrain it
	if !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Fatalf("theme filter = %v", got)
	}
}

func TestFilterProducts_PriceRange(t *testing.T) {
	s := newFilterStore(t)
	got := productIDs(s.FilterProducts(domain.FilterState{
		MinPrice:      decimal.RequireFromString("50.00"),
		MaxPrice:      decimal.RequireFromString("90.00"),
		HasPriceRange: true,
	}))
	if !reflect.DeepEqual(got, []string{"p2", "p3"}) {
		t.Fatalf("price filter = %v", got)
	}
}

func TestFilterProducts_AllDimensionsMustMatch(t *testing.T) {
	s := newFilterStore(t)
	got := productIDs(s.FilterProducts(domain.FilterState{
		Types:  []domain.ProductType{domain.ProductTypePersonalizado},
		Sizes:  []string{"M"},
		Colors: []string{"NEGRO"},
	}))
	if !reflect.DeepEqual(got, []string{"p2"}) {
		t.Fatalf("combined filter = %v", got)
	}
}

func TestSearchProducts_ShortQueryReturnsEmpty(t *testing.T) {
	s := newFilterStore(t)
	if got := s.SearchProducts("a"); len(got) != 0 {
		t.Fatalf("1-char query returned %d products", len(got))
	}
	if got := s.SearchProducts("  a  "); len(got) != 0 {
		t.Fatalf("trimmed 1-char query returned %d products", len(got))
	}
}

func TestSearchProducts_MatchesAcrossFields(t *testing.T) {
	s := newFilterStore(t)

	if got := productIDs(s.SearchProducts("an")); !reflect.DeepEqual(got, []string{"p2"}) {
		// "an" appears in "ANIME" (name/theme) and "anime" (description)
		t.Fatalf("search 'an' = %v", got)
	}
	if got := productIDs(s.SearchProducts("rojo")); !reflect.DeepEqual(got, []string{"p3"}) {
		t.Fatalf("search by color = %v", got)
	}
	if got := productIDs(s.SearchProducts("hoodies")); !reflect.DeepEqual(got, []string{"p2"}) {
		t.Fatalf("search by category = %v", got)
	}
	if got := s.SearchProducts("zzzz"); len(got) != 0 {
		t.Fatalf("search miss = %v", productIDs(got))
	}
}

func TestAllColors_DedupedAndSorted(t *testing.T) {
	s := newFilterStore(t)
	got := s.AllColors()
	want := []string{"Blanco", "Negro", "Rojo"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("colors = %v, want %v", got, want)
	}
}
