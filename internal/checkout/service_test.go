package checkout

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/olgakuznetsova/minimarket-core/internal/store"
	"github.com/olgakuznetsova/minimarket-core/pkg/config"
	"github.com/olgakuznetsova/minimarket-core/pkg/db"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	pkgerrors "github.com/olgakuznetsova/minimarket-core/pkg/errors"
	"github.com/olgakuznetsova/minimarket-core/pkg/notify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var checkoutAt = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func newTestService(t *testing.T) (Service, *store.Store, *notify.Collector) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.StoreConfig{Path: dsn, AutoMigrate: true}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	st := store.New(client)
	collector := &notify.Collector{}
	svc, err := NewService(ServiceParams{
		Store:    st,
		Config:   config.CheckoutConfig{CommissionPercent: 5},
		Notifier: collector,
		Now:      func() time.Time { return checkoutAt },
	})
	require.NoError(t, err)
	return svc, st, collector
}

func cartItem(id string, price int64, quantity int) models.CartItem {
	return models.CartItem{
		Product: models.Product{
			ID:     id,
			Name:   "Product " + id,
			Price:  decimal.NewFromInt(price),
			Seller: models.Seller{ID: "s1", Name: "Seller One"},
		},
		Quantity: quantity,
	}
}

func validInput() CheckoutInput {
	return CheckoutInput{
		Name:    "Anna Smith",
		Phone:   "+15550100",
		Address: "12 Main St",
	}
}

func TestCheckoutPlacesOrderAndClearsCart(t *testing.T) {
	svc, st, collector := newTestService(t)
	ctx := context.Background()

	items := []models.CartItem{cartItem("p1", 1000, 2), cartItem("p2", 500, 1)}
	require.NoError(t, store.Cart(st).Put(ctx, items))

	order, err := svc.Checkout(ctx, validInput())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, fmt.Sprintf("%d", checkoutAt.UnixMilli()), order.ID)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(2625)), "got %s", order.Total)
	assert.Equal(t, checkoutAt, order.CreatedAt)
	require.NotNil(t, order.DeliveryAddress)
	assert.Equal(t, "12 Main St", *order.DeliveryAddress)
	require.Len(t, order.Items, 2)

	cart, err := store.Cart(st).Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart)

	stored, err := store.Orders(st).Get(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, order.ID, stored[0].ID)

	events := collector.Events()
	require.Len(t, events, 1)
	assert.Equal(t, "checkout.order_placed", events[0].Name)
}

func TestCheckoutPrependsNewestOrder(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	older := models.Order{ID: "100", Status: enums.OrderStatusDelivered, CreatedAt: checkoutAt.Add(-time.Hour)}
	require.NoError(t, store.Orders(st).Put(ctx, []models.Order{older}))
	require.NoError(t, store.Cart(st).Put(ctx, []models.CartItem{cartItem("p1", 1000, 1)}))

	order, err := svc.Checkout(ctx, validInput())
	require.NoError(t, err)

	stored, err := store.Orders(st).Get(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, order.ID, stored[0].ID)
	assert.Equal(t, "100", stored[1].ID)
}

func TestCheckoutEmptyCartRejected(t *testing.T) {
	svc, st, collector := newTestService(t)
	ctx := context.Background()

	order, err := svc.Checkout(ctx, validInput())
	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	stored, err := store.Orders(st).Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, collector.Events())
}

func TestCheckoutMissingFieldsRejected(t *testing.T) {
	svc, st, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.Cart(st).Put(ctx, []models.CartItem{cartItem("p1", 1000, 1)}))

	input := validInput()
	input.Phone = ""
	order, err := svc.Checkout(ctx, input)
	require.Error(t, err)
	assert.Nil(t, order)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	// The cart survives a rejected checkout untouched.
	cart, err := store.Cart(st).Get(ctx)
	require.NoError(t, err)
	require.Len(t, cart, 1)
}

func TestTotalAppliesCommission(t *testing.T) {
	items := []models.CartItem{cartItem("p1", 1000, 2), cartItem("p2", 500, 1)}

	assert.True(t, Total(items, 5).Equal(decimal.NewFromInt(2625)))
	assert.True(t, Total(items, 0).Equal(decimal.NewFromInt(2500)))
	assert.True(t, Total(nil, 5).Equal(decimal.Zero))
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}
