package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Checkout CheckoutConfig
	Orders   OrdersConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Orders.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MINIMARKET_APP_ENV" default:"dev"`
	LogLevel     string `envconfig:"MINIMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MINIMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig controls the local collection store. Path accepts any sqlite
// DSN, including file::memory:?cache=shared for throwaway runs.
type StoreConfig struct {
	Path        string `envconfig:"MINIMARKET_STORE_PATH" default:"minimarket.db"`
	AutoMigrate bool   `envconfig:"MINIMARKET_STORE_AUTO_MIGRATE" default:"true"`
	AutoSeed    bool   `envconfig:"MINIMARKET_STORE_AUTO_SEED" default:"true"`
}

type CheckoutConfig struct {
	CommissionPercent int `envconfig:"MINIMARKET_CHECKOUT_COMMISSION_PERCENT" default:"5"`
}

// OrdersConfig drives the time-based order status progression. The defaults
// mirror the storefront's accelerated fulfillment simulation.
type OrdersConfig struct {
	ProcessingAfter time.Duration `envconfig:"MINIMARKET_ORDERS_PROCESSING_AFTER" default:"1m"`
	ShippedAfter    time.Duration `envconfig:"MINIMARKET_ORDERS_SHIPPED_AFTER" default:"2m"`
	DeliveredAfter  time.Duration `envconfig:"MINIMARKET_ORDERS_DELIVERED_AFTER" default:"3m"`
	WatchInterval   time.Duration `envconfig:"MINIMARKET_ORDERS_WATCH_INTERVAL" default:"1m"`
}

func (o OrdersConfig) validate() error {
	if o.ProcessingAfter <= 0 || o.ShippedAfter <= 0 || o.DeliveredAfter <= 0 {
		return fmt.Errorf("order status thresholds must be positive")
	}
	if o.ProcessingAfter >= o.ShippedAfter || o.ShippedAfter >= o.DeliveredAfter {
		return fmt.Errorf("order status thresholds must be strictly increasing")
	}
	if o.WatchInterval <= 0 {
		return fmt.Errorf("order watch interval must be positive")
	}
	return nil
}
