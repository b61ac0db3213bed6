// Package webapi exposes the state containers to UI consumers over HTTP:
// read-only views plus the mutator operations, nothing else.
package webapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/bduwear/storefront/internal/app"
)

type Server struct {
	e   *echo.Echo
	app app.AppContext
}

func NewServer(appCtx app.AppContext) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{e: e, app: appCtx}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.e.Group("/api")

	api.GET("/products", s.listProducts)
	api.GET("/products/search", s.searchProducts)
	api.POST("/products/filter", s.filterProducts)
	api.GET("/products/slug/:slug", s.getProductBySlug)
	api.GET("/products/:id", s.getProduct)
	api.GET("/categories", s.listCategories)
	api.GET("/colors", s.listColors)
	api.POST("/catalog/refresh", s.refreshCatalog)

	api.GET("/cart", s.getCart)
	api.POST("/cart/items", s.addCartItem)
	api.PUT("/cart/items/:id", s.updateCartItem)
	api.POST("/cart/items/:id/increase", s.increaseCartItem)
	api.POST("/cart/items/:id/decrease", s.decreaseCartItem)
	api.DELETE("/cart/items/:id", s.removeCartItem)
	api.POST("/cart/discount", s.applyDiscount)
	api.DELETE("/cart/discount", s.removeDiscount)
	api.DELETE("/cart", s.clearCart)
}

// ServeHTTP makes the server usable as a plain http.Handler in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

func (s *Server) Start() error {
	cfg := s.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("web api listening on %s", addr)
	return s.e.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
