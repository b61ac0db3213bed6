// Package catalog holds the in-memory catalog snapshot and answers
// queries against it. The snapshot is loaded once per Store lifetime from
// a remote source, falling back to a built-in dataset when the remote is
// unreachable or not configured.
package catalog

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/bduwear/storefront/internal/domain"
)

type initState int

const (
	stateUninitialized initState = iota
	stateLoading
	stateReady
	stateFailed
)

// FallbackLoadMessage is the informational error recorded when the remote
// catalog cannot be loaded and the built-in dataset is substituted.
const FallbackLoadMessage = "could not load the remote catalog, showing built-in products"

// Store owns the authoritative catalog snapshot.
type Store struct {
	remote RemoteSource

	mu         sync.RWMutex
	state      initState
	loading    bool
	loadErr    string
	gen        uint64
	products   []domain.Product
	categories []domain.Category

	sf singleflight.Group
}

// NewStore creates an uninitialized Store backed by the given remote
// source. Call EnsureInitialized before querying.
func NewStore(remote RemoteSource) *Store {
	return &Store{remote: remote}
}

// EnsureInitialized loads the catalog if no load has completed yet.
// Concurrent callers during an in-flight load share a single underlying
// load. The returned error is always nil for recoverable conditions:
// a remote failure substitutes the fallback dataset and records an
// informational message instead.
func (s *Store) EnsureInitialized(ctx context.Context) error {
	s.mu.RLock()
	st, gen := s.state, s.gen
	s.mu.RUnlock()
	if st == stateReady || st == stateFailed {
		return nil
	}

	_, err, _ := s.sf.Do(fmt.Sprintf("init-%d", gen), func() (interface{}, error) {
		s.initialize(ctx)
		return nil, nil
	})
	return err
}

// Refresh discards the memoized initialization and re-runs it. A refresh
// issued while a load is in flight starts an independent load; whichever
// finishes last wins the snapshot.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	s.state = stateUninitialized
	s.mu.Unlock()
	return s.EnsureInitialized(ctx)
}

func (s *Store) initialize(ctx context.Context) {
	s.mu.Lock()
	s.state = stateLoading
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	categories, products, err := s.loadRemote(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		zap.L().Warn("remote catalog load failed, substituting fallback dataset", zap.Error(err))
		s.loadErr = FallbackLoadMessage
		s.categories = FallbackCategories()
		s.products = FallbackProducts()
	} else {
		s.loadErr = ""
		s.categories = categories
		s.products = products
	}

	if len(s.products) == 0 && err != nil {
		s.state = stateFailed
		return
	}
	s.state = stateReady
	zap.L().Info("catalog snapshot ready",
		zap.Int("products", len(s.products)),
		zap.Int("categories", len(s.categories)),
		zap.Bool("fallback", s.loadErr != ""),
	)
}

func (s *Store) loadRemote(ctx context.Context) ([]domain.Category, []domain.Product, error) {
	categories, err := s.remote.FetchCategories(ctx)
	if err != nil {
		return nil, nil, err
	}
	products, err := s.remote.FetchProducts(ctx)
	if err != nil {
		return nil, nil, err
	}
	return categories, products, nil
}

// Loading reports whether a load is currently in flight.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// LoadError returns the informational load failure message, empty when
// the last load came from the remote source.
func (s *Store) LoadError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Products returns a copy of the current product snapshot, newest first.
func (s *Store) Products() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Categories returns a copy of the current category snapshot.
func (s *Store) Categories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, len(s.categories))
	copy(out, s.categories)
	return out
}

// ProductByID returns the product with the given id.
func (s *Store) ProductByID(id string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// ProductBySlug returns the first product whose derived slug matches.
// Slugs are not guaranteed unique across distinct names.
func (s *Store) ProductBySlug(slug string) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Slug() == slug {
			return p, true
		}
	}
	return domain.Product{}, false
}
