package cart

import (
	"sync"

	"github.com/asaskevich/EventBus"
	jsoniter "github.com/json-iterator/go"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/bduwear/storefront/internal/domain"
	"github.com/bduwear/storefront/pkg/kvstore"
)

// Bucket and key for the persisted line-item list. The discount code is
// never persisted; it resets on reload.
const (
	persistBucket = "storefront"
	persistKey    = "shopping-cart"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// Persister mirrors the cart's line items to the local key-value store.
// Writes run fire-and-forget on the worker pool; failures are logged and
// swallowed so a storage fault never reaches the mutating caller.
type Persister struct {
	kv   *kvstore.Store
	pool *ants.Pool

	mu          sync.Mutex
	lastVersion uint64
}

// NewPersister creates a Persister. A nil pool makes writes synchronous,
// which is what the tests rely on.
func NewPersister(kv *kvstore.Store, pool *ants.Pool) *Persister {
	return &Persister{kv: kv, pool: pool}
}

// Attach subscribes the persister to cart change notifications.
func (p *Persister) Attach(bus EventBus.Bus) error {
	return bus.Subscribe(TopicCartChanged, p.onCartChanged)
}

func (p *Persister) onCartChanged(items []domain.CartItem, version uint64) {
	job := func() { p.write(items, version) }
	if p.pool == nil {
		job()
		return
	}
	if err := p.pool.Submit(job); err != nil {
		zap.L().Warn("cart persist pool rejected job, writing inline", zap.Error(err))
		job()
	}
}

// write stores the snapshot unless a newer version was already written
// (pool workers may complete out of order).
func (p *Persister) write(items []domain.CartItem, version uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if version <= p.lastVersion {
		return
	}

	data, err := jsonCodec.Marshal(items)
	if err != nil {
		zap.L().Error("cart snapshot marshal failed", zap.Error(err))
		return
	}
	if err := p.kv.Put(persistBucket, persistKey, data); err != nil {
		zap.L().Error("cart persist failed", zap.Error(err))
		return
	}
	p.lastVersion = version
}

// Load rehydrates the persisted line-item list. Absent or unparseable
// data yields an empty cart rather than an error.
func (p *Persister) Load() []domain.CartItem {
	data, err := p.kv.Get(persistBucket, persistKey)
	if err != nil {
		zap.L().Warn("cart rehydrate read failed, starting empty", zap.Error(err))
		return nil
	}
	if len(data) == 0 {
		return nil
	}

	var items []domain.CartItem
	if err := jsonCodec.Unmarshal(data, &items); err != nil {
		zap.L().Warn("persisted cart unparseable, starting empty", zap.Error(err))
		return nil
	}
	return items
}
