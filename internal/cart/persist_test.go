package cart

import (
	"path/filepath"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"

	"github.com/bduwear/storefront/internal/domain"
	"github.com/bduwear/storefront/pkg/kvstore"
)

func newPersistedStore(t *testing.T, kv *kvstore.Store) *Store {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	bus := EventBus.New()
	// nil pool makes persistence writes synchronous
	persister := NewPersister(kv, nil)
	if err := persister.Attach(bus); err != nil {
		t.Fatalf("attach persister: %v", err)
	}

	cfg := Config{ShippingFee: decimal.RequireFromString("15.00"), Node: node}
	return NewStore(cfg, bus, persister.Load())
}

func openCartKV(t *testing.T) *kvstore.Store {
	t.Helper()
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "cart.db"))
	if err != nil {
		t.Fatalf("open kv: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestPersistRoundTrip(t *testing.T) {
	kv := openCartKV(t)

	s := newPersistedStore(t, kv)
	s.AddItem(ItemInput{
		ProductID: "p1",
		Size:      "M",
		Quantity:  2,
		Price:     decimal.RequireFromString("49.90"),
		Name:      "POLO OVERSIZE NEGRO BDU",
	})

	// a fresh store over the same kv must rehydrate the identical line
	reloaded := newPersistedStore(t, kv)
	items := reloaded.Items()
	if len(items) != 1 {
		t.Fatalf("rehydrated %d lines, want 1", len(items))
	}
	got := items[0]
	if got.ProductID != "p1" || got.Size != "M" || got.Quantity != 2 {
		t.Fatalf("rehydrated line = %+v", got)
	}
	if !got.Price.Equal(decimal.RequireFromString("49.90")) {
		t.Fatalf("rehydrated price = %s, want 49.90", got.Price)
	}
}

func TestPersist_DiscountCodeNotPersisted(t *testing.T) {
	kv := openCartKV(t)

	s := newPersistedStore(t, kv)
	s.AddItem(ItemInput{ProductID: "p1", Size: "M", Quantity: 1, Price: decimal.RequireFromString("49.90")})
	if res := s.ApplyDiscountCode("BDU10"); !res.Success {
		t.Fatalf("apply: %+v", res)
	}

	reloaded := newPersistedStore(t, kv)
	if reloaded.DiscountCode() != "" {
		t.Fatal("discount code must reset on reload")
	}
	if len(reloaded.Items()) != 1 {
		t.Fatalf("items lost on reload: %d", len(reloaded.Items()))
	}
}

func TestPersist_RemovalReachesStore(t *testing.T) {
	kv := openCartKV(t)

	s := newPersistedStore(t, kv)
	line := s.AddItem(ItemInput{ProductID: "p1", Size: "M", Quantity: 1, Price: decimal.RequireFromString("49.90")})
	s.AddItem(ItemInput{ProductID: "p1", Size: "L", Quantity: 1, Price: decimal.RequireFromString("49.90")})
	s.RemoveItem(line.ID)

	reloaded := newPersistedStore(t, kv)
	items := reloaded.Items()
	if len(items) != 1 || items[0].Size != "L" {
		t.Fatalf("rehydrated lines = %+v", items)
	}
}

func TestLoad_CorruptDataYieldsEmptyCart(t *testing.T) {
	kv := openCartKV(t)
	if err := kv.Put(persistBucket, persistKey, []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt data: %v", err)
	}

	s := newPersistedStore(t, kv)
	if !s.IsEmpty() {
		t.Fatal("corrupt persisted cart must rehydrate as empty")
	}
}

func TestLoad_AbsentDataYieldsEmptyCart(t *testing.T) {
	kv := openCartKV(t)
	s := newPersistedStore(t, kv)
	if !s.IsEmpty() {
		t.Fatal("missing persisted cart must rehydrate as empty")
	}
}

func TestPersister_SkipsStaleVersions(t *testing.T) {
	kv := openCartKV(t)
	p := NewPersister(kv, nil)

	newer := []domain.CartItem{{ID: "a", ProductID: "p1", Size: "M", Quantity: 2}}
	p.write(newer, 2)
	// an out-of-order older snapshot must not overwrite the newer one
	p.write(nil, 1)

	items := p.Load()
	if len(items) != 1 || items[0].ID != "a" {
		t.Fatalf("persisted snapshot = %+v, want the version-2 snapshot", items)
	}
}
