package catalog

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/araddon/dateparse"
	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/bduwear/storefront/internal/domain"
)

// RemoteSource is the hosted catalog API collaborator.
type RemoteSource interface {
	// FetchCategories returns the active categories ordered for display.
	FetchCategories(ctx context.Context) ([]domain.Category, error)
	// FetchProducts returns active products with nested color variants
	// and images, newest first.
	FetchProducts(ctx context.Context) ([]domain.Product, error)
}

// ErrNotConfigured signals that no remote endpoint is configured; callers
// degrade to the fallback dataset.
var ErrNotConfigured = errors.New("catalog: remote source not configured")

// RESTSource queries a PostgREST-style catalog API.
type RESTSource struct {
	baseURL string
	apiKey  string
	timeout time.Duration
}

var _ RemoteSource = (*RESTSource)(nil)

// NewRESTSource creates a RESTSource. Empty baseURL or apiKey yields a
// source that reports ErrNotConfigured on every fetch.
func NewRESTSource(baseURL, apiKey string, timeout time.Duration) *RESTSource {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RESTSource{baseURL: baseURL, apiKey: apiKey, timeout: timeout}
}

type categoryRow struct {
	ID           string `json:"id"`
	Slug         string `json:"slug"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

type imageRow struct {
	ID           string `json:"id"`
	URL          string `json:"image_url"`
	DisplayOrder int    `json:"display_order"`
	IsPrimary    bool   `json:"is_primary"`
}

type colorRow struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	HexCode      string     `json:"hex_code"`
	DisplayOrder int        `json:"display_order"`
	IsDefault    bool       `json:"is_default"`
	InStock      bool       `json:"in_stock"`
	Images       []imageRow `json:"product_images"`
}

type productRow struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Type        string          `json:"type"`
	Theme       string          `json:"theme"`
	Sizes       []string        `json:"sizes"`
	InStock     bool            `json:"in_stock"`
	CreatedAt   string          `json:"created_at"`
	Category    *struct {
		Name string `json:"name"`
	} `json:"categories"`
	Colors []colorRow `json:"product_colors"`
}

func (r *RESTSource) headers() gout.H {
	return gout.H{
		"apikey":        r.apiKey,
		"Authorization": "Bearer " + r.apiKey,
	}
}

// FetchCategories implements RemoteSource.
func (r *RESTSource) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	if r.baseURL == "" || r.apiKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []categoryRow
	code := 0
	err := gout.GET(r.baseURL + "/rest/v1/categories").
		WithContext(ctx).
		SetHeader(r.headers()).
		SetQuery(gout.H{
			"select":    "*",
			"is_active": "eq.true",
			"order":     "display_order.asc",
		}).
		Code(&code).
		BindJSON(&rows).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "catalog: fetch categories")
	}
	if code != http.StatusOK {
		return nil, errors.Errorf("catalog: fetch categories: unexpected status %d", code)
	}

	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		out = append(out, domain.Category{
			ID:           row.ID,
			Slug:         row.Slug,
			Name:         row.Name,
			Description:  row.Description,
			Image:        row.Image,
			DisplayOrder: row.DisplayOrder,
			IsActive:     row.IsActive,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

// FetchProducts implements RemoteSource.
func (r *RESTSource) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	if r.baseURL == "" || r.apiKey == "" {
		return nil, ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var rows []productRow
	code := 0
	err := gout.GET(r.baseURL + "/rest/v1/products").
		WithContext(ctx).
		SetHeader(r.headers()).
		SetQuery(gout.H{
			"select":    "*,categories(name),product_colors(*,product_images(*))",
			"is_active": "eq.true",
			"order":     "created_at.desc",
		}).
		Code(&code).
		BindJSON(&rows).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "catalog: fetch products")
	}
	if code != http.StatusOK {
		return nil, errors.Errorf("catalog: fetch products: unexpected status %d", code)
	}

	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapProductRow(row))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func mapProductRow(row productRow) domain.Product {
	p := domain.Product{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		Price:       row.Price,
		Type:        domain.ProductType(row.Type),
		Theme:       row.Theme,
		Sizes:       row.Sizes,
		InStock:     row.InStock,
	}
	if p.Type == "" {
		p.Type = domain.ProductTypeSimple
	}
	if row.Category != nil {
		p.Category = row.Category.Name
	}
	if row.CreatedAt != "" {
		ts, err := dateparse.ParseAny(row.CreatedAt)
		if err != nil {
			zap.L().Debug("unparseable product timestamp",
				zap.String("product_id", row.ID), zap.String("created_at", row.CreatedAt))
		} else {
			p.CreatedAt = ts
		}
	}

	colors := append([]colorRow(nil), row.Colors...)
	sort.SliceStable(colors, func(i, j int) bool { return colors[i].DisplayOrder < colors[j].DisplayOrder })
	for _, cr := range colors {
		images := append([]imageRow(nil), cr.Images...)
		sort.SliceStable(images, func(i, j int) bool { return images[i].DisplayOrder < images[j].DisplayOrder })

		variant := domain.ColorVariant{
			ID:           cr.ID,
			Name:         cr.Name,
			HexCode:      cr.HexCode,
			DisplayOrder: cr.DisplayOrder,
			IsDefault:    cr.IsDefault,
			InStock:      cr.InStock,
		}
		for _, im := range images {
			variant.Images = append(variant.Images, domain.ProductImage{
				ID:           im.ID,
				URL:          im.URL,
				DisplayOrder: im.DisplayOrder,
				IsPrimary:    im.IsPrimary,
			})
		}
		p.Colors = append(p.Colors, variant)
	}
	return p
}
