package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bduwear/storefront/internal/domain"
)

// catalogView is the read-only view consumers poll: the snapshot plus the
// loading and informational error flags.
type catalogView struct {
	Products  []domain.Product `json:"products"`
	Loading   bool             `json:"loading"`
	LoadError string           `json:"load_error,omitempty"`
}

func (s *Server) listProducts(c echo.Context) error {
	store := s.app.Catalog()
	_ = store.EnsureInitialized(c.Request().Context())
	return ok(c, catalogView{
		Products:  store.Products(),
		Loading:   store.Loading(),
		LoadError: store.LoadError(),
	})
}

func (s *Server) getProduct(c echo.Context) error {
	store := s.app.Catalog()
	_ = store.EnsureInitialized(c.Request().Context())
	p, found := store.ProductByID(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func (s *Server) getProductBySlug(c echo.Context) error {
	store := s.app.Catalog()
	_ = store.EnsureInitialized(c.Request().Context())
	p, found := store.ProductBySlug(c.Param("slug"))
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func (s *Server) searchProducts(c echo.Context) error {
	store := s.app.Catalog()
	_ = store.EnsureInitialized(c.Request().Context())
	return ok(c, store.SearchProducts(c.QueryParam("q")))
}

func (s *Server) filterProducts(c echo.Context) error {
	var fs domain.FilterState
	if err := c.Bind(&fs); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse filter", err.Error())
	}
	store := s.app.Catalog()
	_ = store.EnsureInitialized(c.Request().Context())
	return ok(c, store.FilterProducts(fs))
}

func (s *Server) listCategories(c echo.Context) error {
	store := s.app.Catalog()
	_ = store.EnsureInitialized(c.Request().Context())
	return ok(c, store.Categories())
}

func (s *Server) listColors(c echo.Context) error {
	store := s.app.Catalog()
	_ = store.EnsureInitialized(c.Request().Context())
	return ok(c, store.AllColors())
}

func (s *Server) refreshCatalog(c echo.Context) error {
	store := s.app.Catalog()
	if err := store.Refresh(c.Request().Context()); err != nil {
		return fail(c, http.StatusInternalServerError, "REFRESH_FAILED", "Catalog refresh failed", err.Error())
	}
	return ok(c, catalogView{
		Products:  store.Products(),
		Loading:   store.Loading(),
		LoadError: store.LoadError(),
	})
}
