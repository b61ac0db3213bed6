package app

import (
	"context"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"

	"github.com/bduwear/storefront/config"
	"github.com/bduwear/storefront/internal/cart"
	"github.com/bduwear/storefront/internal/catalog"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides consumer access to the catalog state container
type CatalogProvider interface {
	Catalog() *catalog.Store
}

// CartProvider provides consumer access to the cart state container
type CartProvider interface {
	Cart() *cart.Store
}

// BusProvider provides the state-change event bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Consumers should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	CatalogProvider
	CartProvider
	BusProvider
	SchedulerProvider

	// StartBackgroundJobs starts the cron scheduler and the initial
	// catalog load
	StartBackgroundJobs(ctx context.Context)
	// Release releases application resources
	Release()
}
