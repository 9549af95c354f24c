package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/olgakuznetsova/minimarket-core/internal/cart"
	"github.com/olgakuznetsova/minimarket-core/internal/catalog"
	"github.com/olgakuznetsova/minimarket-core/internal/checkout"
	"github.com/olgakuznetsova/minimarket-core/internal/orders"
	"github.com/olgakuznetsova/minimarket-core/internal/store"
	"github.com/olgakuznetsova/minimarket-core/pkg/config"
	"github.com/olgakuznetsova/minimarket-core/pkg/db"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	"github.com/olgakuznetsova/minimarket-core/pkg/env"
	"github.com/olgakuznetsova/minimarket-core/pkg/logger"
	"github.com/olgakuznetsova/minimarket-core/pkg/notify"
)

// The demo walks one storefront session end to end: browse, fill the cart,
// check out, and follow the order's simulated fulfillment.
func main() {
	logg := logger.New(logger.Options{ServiceName: "storefront"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "storefront",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	dbClient, err := db.New(ctx, cfg.Store, logg)
	if err != nil {
		logg.Error(ctx, "failed to open store database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing store database", err)
		}
	}()

	st := store.New(dbClient)
	notifier := notify.NewLog(logg)

	catalogSvc, err := catalog.NewService(st)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}
	if cfg.Store.AutoSeed {
		if err := catalogSvc.SeedIfEmpty(ctx); err != nil {
			logg.Error(ctx, "failed to seed catalog", err)
			os.Exit(1)
		}
	}

	cartSvc, err := cart.NewService(st, notifier)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}
	checkoutSvc, err := checkout.NewService(checkout.ServiceParams{
		Store:    st,
		Config:   cfg.Checkout,
		Notifier: notifier,
	})
	if err != nil {
		logg.Error(ctx, "failed to create checkout service", err)
		os.Exit(1)
	}
	ordersSvc, err := orders.NewService(orders.ServiceParams{
		Store:         st,
		Thresholds:    orders.ThresholdsFromConfig(cfg.Orders),
		WatchInterval: cfg.Orders.WatchInterval,
		Logger:        logg,
	})
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}

	sortBy := enums.SortKeyPrice
	results, err := catalogSvc.Query(ctx, catalog.QueryParams{Search: "wireless", SortBy: &sortBy})
	if err != nil {
		logg.Error(ctx, "catalog query failed", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "results", len(results)), "catalog query complete")

	for _, product := range results {
		if err := cartSvc.Add(ctx, product, 1); err != nil {
			logg.Error(logg.WithProductID(ctx, product.ID), "failed to add to cart", err)
			os.Exit(1)
		}
	}
	total, err := cartSvc.TotalPrice(ctx)
	if err != nil {
		logg.Error(ctx, "failed to total cart", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "subtotal", total.String()), "cart ready")

	order, err := checkoutSvc.Checkout(ctx, checkout.CheckoutInput{
		Name:    "Demo Buyer",
		Phone:   "+100000000",
		Address: "1 Demo Street",
	})
	if err != nil {
		logg.Error(ctx, "checkout failed", err)
		os.Exit(1)
	}
	octx := logg.WithOrderID(ctx, order.ID)
	logg.Info(logg.WithField(octx, "total", order.Total.String()), "order placed")

	if env.Get("MINIMARKET_DEMO_FOLLOW", "false") != "true" {
		return
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	ordersSvc.Watch(watchCtx, order.ID, func(o models.Order) {
		logg.Info(logg.WithField(octx, "status", o.Status.String()), "order status changed")
		if o.Status.IsTerminal() {
			cancel()
		}
	})
}
