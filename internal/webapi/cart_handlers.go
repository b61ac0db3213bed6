package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bduwear/storefront/internal/cart"
)

func (s *Server) getCart(c echo.Context) error {
	return ok(c, s.app.Cart().Summary())
}

func (s *Server) addCartItem(c echo.Context) error {
	var input cart.ItemInput
	if err := c.Bind(&input); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	input.ProductID = strings.TrimSpace(input.ProductID)
	input.Size = strings.TrimSpace(input.Size)
	if input.ProductID == "" || input.Size == "" {
		return fail(c, http.StatusBadRequest, "VALIDATION", "product_id and size are required", nil)
	}
	if input.Price.IsNegative() {
		return fail(c, http.StatusBadRequest, "VALIDATION", "price must not be negative", nil)
	}

	line := s.app.Cart().AddItem(input)
	return ok(c, map[string]interface{}{
		"item": line,
		"cart": s.app.Cart().Summary(),
	})
}

type quantityPayload struct {
	Quantity int `json:"quantity"`
}

func (s *Server) updateCartItem(c echo.Context) error {
	var payload quantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}
	s.app.Cart().UpdateQuantity(c.Param("id"), payload.Quantity)
	return ok(c, s.app.Cart().Summary())
}

func (s *Server) increaseCartItem(c echo.Context) error {
	s.app.Cart().IncreaseQuantity(c.Param("id"))
	return ok(c, s.app.Cart().Summary())
}

func (s *Server) decreaseCartItem(c echo.Context) error {
	s.app.Cart().DecreaseQuantity(c.Param("id"))
	return ok(c, s.app.Cart().Summary())
}

func (s *Server) removeCartItem(c echo.Context) error {
	s.app.Cart().RemoveItem(c.Param("id"))
	return ok(c, s.app.Cart().Summary())
}

type discountPayload struct {
	Code string `json:"code"`
}

func (s *Server) applyDiscount(c echo.Context) error {
	var payload discountPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse discount code", err.Error())
	}
	result := s.app.Cart().ApplyDiscountCode(payload.Code)
	return ok(c, map[string]interface{}{
		"result": result,
		"cart":   s.app.Cart().Summary(),
	})
}

func (s *Server) removeDiscount(c echo.Context) error {
	s.app.Cart().RemoveDiscountCode()
	return ok(c, s.app.Cart().Summary())
}

func (s *Server) clearCart(c echo.Context) error {
	s.app.Cart().Clear()
	return ok(c, s.app.Cart().Summary())
}
