package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/olgakuznetsova/minimarket-core/internal/store"
	"github.com/olgakuznetsova/minimarket-core/pkg/config"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	pkgerrors "github.com/olgakuznetsova/minimarket-core/pkg/errors"
	"github.com/olgakuznetsova/minimarket-core/pkg/notify"
	"github.com/olgakuznetsova/minimarket-core/pkg/validate"
	"github.com/shopspring/decimal"
)

// Service converts the current cart into a persisted order.
type Service interface {
	Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error)
}

// CheckoutInput is the delivery form the shell collects before placing the
// order.
type CheckoutInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	Comment string `json:"comment"`
}

type service struct {
	store    *store.Store
	cfg      config.CheckoutConfig
	notifier notify.Notifier
	now      func() time.Time
}

// ServiceParams bundles checkout dependencies. Now is optional and defaults
// to wall-clock time.
type ServiceParams struct {
	Store    *store.Store
	Config   config.CheckoutConfig
	Notifier notify.Notifier
	Now      func() time.Time
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("collection store required")
	}
	if params.Notifier == nil {
		params.Notifier = notify.Nop{}
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		store:    params.Store,
		cfg:      params.Config,
		notifier: params.Notifier,
		now:      params.Now,
	}, nil
}

// Checkout snapshots the cart into a new pending order and clears the cart.
// Both writes happen in one transaction: either the order exists and the
// cart is empty, or neither change lands.
func (s *service) Checkout(ctx context.Context, input CheckoutInput) (*models.Order, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}

	var order *models.Order
	err := s.store.Transact(ctx, func(tx *store.Store) error {
		cart := store.Cart(tx)
		items, err := cart.Get(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
		}

		createdAt := s.now().UTC()
		address := input.Address
		order = &models.Order{
			ID:              models.NewOrderID(createdAt),
			Items:           items,
			Total:           Total(items, s.cfg.CommissionPercent),
			Status:          enums.OrderStatusPending,
			CreatedAt:       createdAt,
			DeliveryAddress: &address,
		}

		orders := store.Orders(tx)
		if _, err := orders.Mutate(ctx, func(existing []models.Order) ([]models.Order, error) {
			return append([]models.Order{*order}, existing...), nil
		}); err != nil {
			return err
		}
		return cart.Put(ctx, nil)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Publish(ctx, notify.Event{
		Name:    "checkout.order_placed",
		Message: fmt.Sprintf("Order %s placed", order.ID),
		Level:   enums.NotificationLevelSuccess,
	})
	return order, nil
}

// Total is the items subtotal plus the platform commission percentage.
func Total(items []models.CartItem, commissionPercent int) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}
	factor := decimal.NewFromInt(int64(100 + commissionPercent)).Div(decimal.NewFromInt(100))
	return subtotal.Mul(factor)
}
