package catalog

import (
	"sort"
	"strings"

	"github.com/bduwear/storefront/internal/domain"
)

// FilterProducts returns the products from the current snapshot matching
// every non-empty dimension of fs. An empty dimension places no
// constraint, so a zero FilterState returns the full catalog in order.
func (s *Store) FilterProducts(fs domain.FilterState) []domain.Product {
	products := s.Products()
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesFilter(&p, &fs) {
			out = append(out, p)
		}
	}
	return out
}

func matchesFilter(p *domain.Product, fs *domain.FilterState) bool {
	if len(fs.Types) > 0 && !containsType(fs.Types, p.Type) {
		return false
	}
	if len(fs.Sizes) > 0 && !anyOverlap(p.Sizes, fs.Sizes) {
		return false
	}
	if len(fs.Colors) > 0 && !matchesColor(p, fs.Colors) {
		return false
	}
	// Theme only constrains personalizado products; simple products pass
	// regardless of the theme dimension.
	if len(fs.Themes) > 0 && p.Type == domain.ProductTypePersonalizado && !containsString(fs.Themes, p.Theme) {
		return false
	}
	if fs.HasPriceRange {
		if p.Price.LessThan(fs.MinPrice) || p.Price.GreaterThan(fs.MaxPrice) {
			return false
		}
	}
	return true
}

func containsType(set []domain.ProductType, t domain.ProductType) bool {
	for _, v := range set {
		if v == t {
			return true
		}
	}
	return false
}

func containsString(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}

func anyOverlap(have, want []string) bool {
	for _, h := range have {
		for _, w := range want {
			if h == w {
				return true
			}
		}
	}
	return false
}

// matchesColor compares case-insensitively against variant display names.
func matchesColor(p *domain.Product, colors []string) bool {
	for _, v := range p.Colors {
		for _, c := range colors {
			if strings.EqualFold(v.Name, c) {
				return true
			}
		}
	}
	return false
}

// SearchProducts returns products whose name, description, theme, any
// color name, or category contains the query as a case-insensitive
// substring. Queries shorter than 2 characters after trimming return an
// empty result.
func (s *Store) SearchProducts(query string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if len([]rune(q)) < 2 {
		return nil
	}

	products := s.Products()
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matchesQuery(&p, q) {
			out = append(out, p)
		}
	}
	return out
}

func matchesQuery(p *domain.Product, q string) bool {
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Theme), q) ||
		strings.Contains(strings.ToLower(p.Category), q) {
		return true
	}
	for _, v := range p.Colors {
		if strings.Contains(strings.ToLower(v.Name), q) {
			return true
		}
	}
	return false
}

// AllColors returns every distinct color name across the snapshot,
// alphabetically sorted, for building filter UIs.
func (s *Store) AllColors() []string {
	seen := make(map[string]string)
	for _, p := range s.Products() {
		for _, v := range p.Colors {
			key := strings.ToLower(v.Name)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; !ok {
				seen[key] = v.Name
			}
		}
	}

	out := make([]string, 0, len(seen))
	for _, name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
