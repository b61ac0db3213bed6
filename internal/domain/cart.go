package domain

import "github.com/shopspring/decimal"

// Cart quantity bounds. Mutations outside this range clamp, never error.
const (
	CartMinQuantity = 1
	CartMaxQuantity = 10
)

// CartItem is one cart line. Price, Name and Image are snapshots captured
// when the line is created: a later catalog price change does not alter a
// cart already in progress.
type CartItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image,omitempty"`
}

// SameLine reports whether another item belongs to the same cart line,
// i.e. identical product and size.
func (i *CartItem) SameLine(productID, size string) bool {
	return i.ProductID == productID && i.Size == size
}

// LineTotal is price times quantity for this line.
func (i *CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ClampQuantity forces n into [CartMinQuantity, CartMaxQuantity].
func ClampQuantity(n int) int {
	if n < CartMinQuantity {
		return CartMinQuantity
	}
	if n > CartMaxQuantity {
		return CartMaxQuantity
	}
	return n
}

// CartSummary is a single consistent snapshot of the cart and all of its
// derived totals, for checkout handoff.
type CartSummary struct {
	Items           []CartItem      `json:"items"`
	ItemCount       int             `json:"item_count"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Shipping        decimal.Decimal `json:"shipping"`
	DiscountCode    string          `json:"discount_code,omitempty"`
	DiscountPercent int             `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
}
