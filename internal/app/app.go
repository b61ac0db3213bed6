package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/panjf2000/ants/v2"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/bduwear/storefront/config"
	"github.com/bduwear/storefront/internal/cart"
	"github.com/bduwear/storefront/internal/catalog"
	"github.com/bduwear/storefront/internal/domain"
	"github.com/bduwear/storefront/pkg/kvstore"
)

// persistPoolSize bounds the fire-and-forget cart persistence workers.
const persistPoolSize = 2

type Application struct {
	appConfig *config.AppConfig
	kv        *kvstore.Store
	bus       EventBus.Bus
	pool      *ants.Pool
	node      *snowflake.Node
	sched     *cron.Cron
	catalog   *catalog.Store
	cart      *cart.Store
	persister *cart.Persister
}

// Ensure Application implements all provider interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ CatalogProvider   = (*Application)(nil)
	_ CartProvider      = (*Application)(nil)
	_ BusProvider       = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Catalog() *catalog.Store {
	return a.catalog
}

func (a *Application) Cart() *cart.Store {
	return a.cart
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := os.MkdirAll(cfg.System.Workdir, 0o755); err != nil {
		zap.S().Warnf("workdir %s unavailable: %v", cfg.System.Workdir, err)
	}

	for code, percent := range cfg.Cart.Discounts {
		domain.RegisterDiscountCode(code, percent)
	}

	a.bus = EventBus.New()

	a.pool, err = ants.NewPool(persistPoolSize)
	if err != nil {
		return err
	}

	a.node, err = snowflake.NewNode(1)
	if err != nil {
		return err
	}

	// Storage failures degrade to "no persistence" instead of aborting
	// startup; the cart starts empty and skips persists.
	var initial []domain.CartItem
	a.kv, err = kvstore.Open(cfg.CartStorePath())
	if err != nil {
		zap.L().Warn("cart store unavailable, persistence disabled", zap.Error(err))
		a.kv = nil
	} else {
		a.persister = cart.NewPersister(a.kv, a.pool)
		if err := a.persister.Attach(a.bus); err != nil {
			zap.L().Warn("cart persister subscribe failed", zap.Error(err))
		}
		initial = a.persister.Load()
	}

	shippingFee, err := decimal.NewFromString(cfg.Cart.ShippingFee)
	if err != nil {
		zap.S().Warnf("invalid shipping fee %q, using default", cfg.Cart.ShippingFee)
		shippingFee = decimal.RequireFromString(config.DefaultAppConfig().Cart.ShippingFee)
	}

	remote := catalog.NewRESTSource(
		cfg.Catalog.RemoteURL,
		cfg.Catalog.RemoteAPIKey,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
	)
	a.catalog = catalog.NewStore(remote)
	a.cart = cart.NewStore(cart.Config{ShippingFee: shippingFee, Node: a.node}, a.bus, initial)

	a.initJob()

	zap.S().Infof("application initialized, workdir: %s", cfg.System.Workdir)
	return nil
}

func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		_ = os.MkdirAll(filepath.Dir(cfg.Logger.Filename), 0o755)
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.pool != nil {
		a.pool.Release()
	}
	if a.kv != nil {
		_ = a.kv.Close()
	}
	_ = zap.L().Sync()
}
