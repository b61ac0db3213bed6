package webapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bduwear/storefront/config"
	"github.com/bduwear/storefront/internal/app"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	cfg.Logger.FileEnable = false

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		t.Fatalf("app init: %v", err)
	}
	t.Cleanup(application.Release)
	return NewServer(application)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("response not json (%d): %s", rec.Code, rec.Body.String())
	}
	return rec.Code, payload
}

func TestListProducts_FallbackCatalog(t *testing.T) {
	srv := newTestServer(t)

	code, payload := doJSON(t, srv, http.MethodGet, "/api/products", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	data := payload["data"].(map[string]interface{})
	products := data["products"].([]interface{})
	if len(products) == 0 {
		t.Fatal("expected fallback products")
	}
	// no remote configured, so the informational flag must be set
	if data["load_error"] == nil || data["load_error"] == "" {
		t.Fatal("expected load_error flag with unconfigured remote")
	}
}

func TestGetProductBySlug(t *testing.T) {
	srv := newTestServer(t)

	code, payload := doJSON(t, srv, http.MethodGet, "/api/products/slug/polo-oversize-negro-bdu", "")
	if code != http.StatusOK {
		t.Fatalf("status = %d: %v", code, payload)
	}
	code, _ = doJSON(t, srv, http.MethodGet, "/api/products/slug/does-not-exist", "")
	if code != http.StatusNotFound {
		t.Fatalf("missing slug status = %d, want 404", code)
	}
}

func TestCartFlow(t *testing.T) {
	srv := newTestServer(t)

	code, payload := doJSON(t, srv, http.MethodPost, "/api/cart/items",
		`{"product_id":"p1","size":"M","quantity":1,"price":"49.90","name":"POLO OVERSIZE NEGRO BDU"}`)
	if code != http.StatusOK {
		t.Fatalf("add item status = %d: %v", code, payload)
	}

	code, payload = doJSON(t, srv, http.MethodGet, "/api/cart", "")
	if code != http.StatusOK {
		t.Fatalf("get cart status = %d", code)
	}
	summary := payload["data"].(map[string]interface{})
	if summary["subtotal"] != "49.9" {
		t.Fatalf("subtotal = %v", summary["subtotal"])
	}
	if summary["total"] != "64.9" {
		t.Fatalf("total = %v", summary["total"])
	}

	code, payload = doJSON(t, srv, http.MethodPost, "/api/cart/discount", `{"code":"BDU10"}`)
	if code != http.StatusOK {
		t.Fatalf("apply discount status = %d", code)
	}
	data := payload["data"].(map[string]interface{})
	result := data["result"].(map[string]interface{})
	if result["success"] != true {
		t.Fatalf("discount result = %v", result)
	}
	cartData := data["cart"].(map[string]interface{})
	if cartData["total"] != "59.91" {
		t.Fatalf("discounted total = %v", cartData["total"])
	}
}

func TestAddCartItem_Validation(t *testing.T) {
	srv := newTestServer(t)

	code, _ := doJSON(t, srv, http.MethodPost, "/api/cart/items", `{"product_id":"","size":"M"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("missing product_id status = %d, want 400", code)
	}
	code, _ = doJSON(t, srv, http.MethodPost, "/api/cart/items",
		`{"product_id":"p1","size":"M","quantity":1,"price":"-1"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("negative price status = %d, want 400", code)
	}
}

func TestClearCart(t *testing.T) {
	srv := newTestServer(t)

	_, _ = doJSON(t, srv, http.MethodPost, "/api/cart/items",
		`{"product_id":"p1","size":"M","quantity":2,"price":"49.90","name":"POLO"}`)
	code, payload := doJSON(t, srv, http.MethodDelete, "/api/cart", "")
	if code != http.StatusOK {
		t.Fatalf("clear status = %d", code)
	}
	summary := payload["data"].(map[string]interface{})
	if summary["item_count"].(float64) != 0 {
		t.Fatalf("item_count after clear = %v", summary["item_count"])
	}
	if summary["shipping"] != "0" {
		t.Fatalf("shipping after clear = %v", summary["shipping"])
	}
}
