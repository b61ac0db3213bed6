// Package cart owns the authoritative shopping cart and keeps all
// derived totals consistent with it. Mutators publish a change
// notification on the event bus; persistence is handled by a Persister
// subscribed to that topic, so a storage fault can never abort a cart
// mutation.
package cart

import (
	"sync"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	"github.com/bduwear/storefront/internal/domain"
)

// TopicCartChanged is published with the new line-item snapshot and the
// cart version after every mutation of the line-item list.
const TopicCartChanged = "cart.changed"

// Config carries the cart's collaborators and tunables.
type Config struct {
	// ShippingFee is the flat fee charged whenever the cart is non-empty.
	ShippingFee decimal.Decimal
	// Node generates unique line-item ids.
	Node *snowflake.Node
}

// ItemInput is a line item without an id, as submitted by consumers.
// Price, Name and Image are the add-time snapshot of the product.
type ItemInput struct {
	ProductID string          `json:"product_id"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Name      string          `json:"name"`
	Image     string          `json:"image"`
}

// DiscountResult is the user-facing outcome of a discount operation.
type DiscountResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Percent int    `json:"percent,omitempty"`
}

// Store is the cart state container.
type Store struct {
	bus         EventBus.Bus
	node        *snowflake.Node
	shippingFee decimal.Decimal

	mu           sync.Mutex
	items        []domain.CartItem
	discountCode string
	discountPct  int
	version      uint64
}

// NewStore creates a cart seeded with rehydrated line items. Malformed
// initial lines are clamped or dropped rather than rejected.
func NewStore(cfg Config, bus EventBus.Bus, initial []domain.CartItem) *Store {
	s := &Store{
		bus:         bus,
		node:        cfg.Node,
		shippingFee: cfg.ShippingFee,
	}
	for _, it := range initial {
		if it.ProductID == "" || it.ID == "" {
			continue
		}
		it.Quantity = domain.ClampQuantity(it.Quantity)
		if it.Price.IsNegative() {
			it.Price = decimal.Zero
		}
		s.items = append(s.items, it)
	}
	return s
}

// AddItem appends a new line, or merges into an existing line with the
// same product and size. A merged quantity is clamped to the maximum, so
// adding beyond the cap silently caps instead of splitting a second line.
func (s *Store) AddItem(input ItemInput) domain.CartItem {
	s.mu.Lock()
	qty := domain.ClampQuantity(input.Quantity)
	for i := range s.items {
		if s.items[i].SameLine(input.ProductID, input.Size) {
			s.items[i].Quantity = domain.ClampQuantity(s.items[i].Quantity + qty)
			line := s.items[i]
			s.publishLocked()
			return line
		}
	}

	line := domain.CartItem{
		ID:        s.node.Generate().String(),
		ProductID: input.ProductID,
		Size:      input.Size,
		Quantity:  qty,
		Price:     input.Price,
		Name:      input.Name,
		Image:     input.Image,
	}
	s.items = append(s.items, line)
	s.publishLocked()
	return line
}

// RemoveItem drops the line with the given id. Unknown ids are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.publishLocked()
			return
		}
	}
	s.mu.Unlock()
}

// UpdateQuantity sets the line quantity, clamped into the valid range.
// Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, n int) {
	s.mu.Lock()
	n = domain.ClampQuantity(n)
	for i := range s.items {
		if s.items[i].ID == id {
			if s.items[i].Quantity == n {
				break
			}
			s.items[i].Quantity = n
			s.publishLocked()
			return
		}
	}
	s.mu.Unlock()
}

// IncreaseQuantity bumps the line quantity by one, stopping at the cap.
func (s *Store) IncreaseQuantity(id string) {
	s.adjustQuantity(id, +1)
}

// DecreaseQuantity lowers the line quantity by one, stopping at one.
func (s *Store) DecreaseQuantity(id string) {
	s.adjustQuantity(id, -1)
}

func (s *Store) adjustQuantity(id string, delta int) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			n := domain.ClampQuantity(s.items[i].Quantity + delta)
			if n == s.items[i].Quantity {
				break
			}
			s.items[i].Quantity = n
			s.publishLocked()
			return
		}
	}
	s.mu.Unlock()
}

// ApplyDiscountCode normalizes and applies a discount code. An
// unrecognized code clears any previously applied code rather than
// leaving it active.
func (s *Store) ApplyDiscountCode(code string) DiscountResult {
	norm := domain.NormalizeDiscountCode(code)
	if norm == "" {
		return DiscountResult{Success: false, Message: "please enter a discount code"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	percent, ok := domain.LookupDiscount(norm)
	if !ok {
		s.discountCode = ""
		s.discountPct = 0
		return DiscountResult{Success: false, Message: "invalid discount code"}
	}
	s.discountCode = norm
	s.discountPct = percent
	return DiscountResult{Success: true, Message: "discount applied", Percent: percent}
}

// RemoveDiscountCode clears the applied code unconditionally.
func (s *Store) RemoveDiscountCode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discountCode = ""
	s.discountPct = 0
}

// Clear empties the line items and the discount code together.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.discountCode = ""
	s.discountPct = 0
	s.publishLocked()
}

// publishLocked bumps the version, snapshots the line items and
// publishes the change. It releases the mutex before publishing so
// subscribers may read the store.
func (s *Store) publishLocked() {
	s.version++
	version := s.version
	snapshot := make([]domain.CartItem, len(s.items))
	copy(snapshot, s.items)
	s.mu.Unlock()

	if s.bus != nil {
		s.bus.Publish(TopicCartChanged, snapshot, version)
	}
}

// Items returns a copy of the current line items.
func (s *Store) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// IsEmpty reports whether the cart has no line items.
func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// ItemCount is the total quantity across all lines.
func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemCountLocked()
}

// Subtotal is the sum of price times quantity over all lines.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

// Shipping is zero for an empty cart and the flat fee otherwise.
func (s *Store) Shipping() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shippingLocked()
}

// DiscountCode returns the currently applied code, empty when none.
func (s *Store) DiscountCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discountCode
}

// DiscountPercent returns the percentage of the applied code.
func (s *Store) DiscountPercent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discountPct
}

// DiscountAmount is subtotal times the applied percentage, rounded to
// two decimal places.
func (s *Store) DiscountAmount() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.discountAmountLocked()
}

// Total is subtotal plus shipping minus the discount amount, floored at
// zero.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalLocked()
}

// Version returns the mutation counter for the line-item list.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Summary returns the full cart snapshot and every derived total in a
// single consistent read, for checkout handoff.
func (s *Store) Summary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return domain.CartSummary{
		Items:           items,
		ItemCount:       s.itemCountLocked(),
		Subtotal:        s.subtotalLocked(),
		Shipping:        s.shippingLocked(),
		DiscountCode:    s.discountCode,
		DiscountPercent: s.discountPct,
		DiscountAmount:  s.discountAmountLocked(),
		Total:           s.totalLocked(),
	}
}

func (s *Store) itemCountLocked() int {
	count := 0
	for i := range s.items {
		count += s.items[i].Quantity
	}
	return count
}

func (s *Store) subtotalLocked() decimal.Decimal {
	sum := decimal.Zero
	for i := range s.items {
		sum = sum.Add(s.items[i].LineTotal())
	}
	return sum
}

func (s *Store) shippingLocked() decimal.Decimal {
	if len(s.items) == 0 {
		return decimal.Zero
	}
	return s.shippingFee
}

func (s *Store) discountAmountLocked() decimal.Decimal {
	if s.discountPct == 0 {
		return decimal.Zero
	}
	return s.subtotalLocked().
		Mul(decimal.NewFromInt(int64(s.discountPct))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

func (s *Store) totalLocked() decimal.Decimal {
	total := s.subtotalLocked().Add(s.shippingLocked()).Sub(s.discountAmountLocked())
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
