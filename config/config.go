package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Location string `yaml:"location" json:"location"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type CatalogConfig struct {
	// RemoteURL and RemoteAPIKey configure the hosted catalog API. Both
	// empty means the fallback dataset is used.
	RemoteURL    string `yaml:"remote_url" json:"remote_url"`
	RemoteAPIKey string `yaml:"remote_apikey" json:"remote_apikey"`
	// Timeout is the remote request timeout in seconds.
	Timeout int `yaml:"timeout" json:"timeout"`
	// RefreshCron, when set, schedules periodic catalog refreshes.
	RefreshCron string `yaml:"refresh_cron" json:"refresh_cron"`
}

type CartConfig struct {
	// ShippingFee is the flat fee applied to non-empty carts, as a
	// decimal string.
	ShippingFee string `yaml:"shipping_fee" json:"shipping_fee"`
	// StoreFile is the bolt database file holding the persisted cart,
	// relative to the workdir unless absolute.
	StoreFile string `yaml:"store_file" json:"store_file"`
	// Discounts extends the built-in discount code registry
	// (code -> percent).
	Discounts map[string]int `yaml:"discounts" json:"discounts"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system" json:"system"`
	Web     WebConfig     `yaml:"web" json:"web"`
	Logger  LoggerConfig  `yaml:"logger" json:"logger"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
	Cart    CartConfig    `yaml:"cart" json:"cart"`
}

// CartStorePath resolves the cart store file against the workdir.
func (c *AppConfig) CartStorePath() string {
	if filepath.IsAbs(c.Cart.StoreFile) {
		return c.Cart.StoreFile
	}
	return filepath.Join(c.System.Workdir, c.Cart.StoreFile)
}

func DefaultAppConfig() *AppConfig {
	return &AppConfig{
		System: SysConfig{
			Appid:    "storefront",
			Workdir:  "/var/storefront",
			Location: "America/Lima",
			Debug:    true,
		},
		Web: WebConfig{
			Host: "0.0.0.0",
			Port: 1816,
		},
		Logger: LoggerConfig{
			Mode:       "development",
			FileEnable: false,
			Filename:   "/var/storefront/storefront.log",
		},
		Catalog: CatalogConfig{
			Timeout: 10,
		},
		Cart: CartConfig{
			ShippingFee: "15.00",
			StoreFile:   "cart.db",
		},
	}
}

// LoadConfig reads the YAML config file when it exists and applies
// environment overrides on top. A missing or unreadable file yields the
// defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := DefaultAppConfig()
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvValue("STOREFRONT_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("STOREFRONT_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = cast.ToBool(v) })
	setEnvValue("STOREFRONT_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("STOREFRONT_WEB_PORT", func(v string) { cfg.Web.Port = cast.ToInt(v) })
	setEnvValue("STOREFRONT_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	setEnvValue("STOREFRONT_CATALOG_REMOTE_URL", func(v string) { cfg.Catalog.RemoteURL = v })
	setEnvValue("STOREFRONT_CATALOG_REMOTE_APIKEY", func(v string) { cfg.Catalog.RemoteAPIKey = v })
	setEnvValue("STOREFRONT_CATALOG_TIMEOUT", func(v string) { cfg.Catalog.Timeout = cast.ToInt(v) })
	setEnvValue("STOREFRONT_CATALOG_REFRESH_CRON", func(v string) { cfg.Catalog.RefreshCron = v })
	setEnvValue("STOREFRONT_CART_SHIPPING_FEE", func(v string) { cfg.Cart.ShippingFee = v })
	setEnvValue("STOREFRONT_CART_STORE_FILE", func(v string) { cfg.Cart.StoreFile = v })

	return cfg
}

func setEnvValue(name string, f func(v string)) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		f(v)
	}
}
