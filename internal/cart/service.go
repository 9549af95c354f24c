package cart

import (
	"context"
	"fmt"

	"github.com/olgakuznetsova/minimarket-core/internal/store"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	"github.com/olgakuznetsova/minimarket-core/pkg/notify"
	"github.com/shopspring/decimal"
)

// Service exposes the cart aggregate. Every mutation persists immediately;
// there is no undo.
type Service interface {
	Items(ctx context.Context) ([]models.CartItem, error)
	Add(ctx context.Context, product models.Product, quantity int) error
	Remove(ctx context.Context, productID string) error
	SetQuantity(ctx context.Context, productID string, quantity int) error
	Clear(ctx context.Context) error
	TotalPrice(ctx context.Context) (decimal.Decimal, error)
	TotalItems(ctx context.Context) (int, error)
	GroupBySeller(ctx context.Context) ([]SellerGroup, error)
}

// SellerGroup is the cart partitioned by the embedded seller snapshot,
// in first-seen seller order.
type SellerGroup struct {
	Seller   models.Seller
	Items    []models.CartItem
	Subtotal decimal.Decimal
}

type service struct {
	cart     store.Collection[models.CartItem]
	notifier notify.Notifier
}

// NewService builds the cart service over the collection store.
func NewService(st *store.Store, notifier notify.Notifier) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("collection store required")
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &service{cart: store.Cart(st), notifier: notifier}, nil
}

func (s *service) Items(ctx context.Context) ([]models.CartItem, error) {
	return s.cart.Get(ctx)
}

// Add merges into an existing line for the same product id, otherwise
// appends a new line.
func (s *service) Add(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	_, err := s.cart.Mutate(ctx, func(items []models.CartItem) ([]models.CartItem, error) {
		for i := range items {
			if items[i].Product.ID == product.ID {
				items[i].Quantity += quantity
				return items, nil
			}
		}
		return append(items, models.CartItem{Product: product, Quantity: quantity}), nil
	})
	if err != nil {
		return err
	}
	s.notifier.Publish(ctx, notify.Event{
		Name:    "cart.item_added",
		Message: fmt.Sprintf("%q added to cart", product.Name),
		Level:   enums.NotificationLevelSuccess,
	})
	return nil
}

func (s *service) Remove(ctx context.Context, productID string) error {
	_, err := s.cart.Mutate(ctx, func(items []models.CartItem) ([]models.CartItem, error) {
		kept := items[:0]
		for _, item := range items {
			if item.Product.ID != productID {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
	return err
}

// SetQuantity replaces a line's quantity; zero or below removes the line.
// An unknown product id is a no-op.
func (s *service) SetQuantity(ctx context.Context, productID string, quantity int) error {
	_, err := s.cart.Mutate(ctx, func(items []models.CartItem) ([]models.CartItem, error) {
		if quantity <= 0 {
			kept := items[:0]
			for _, item := range items {
				if item.Product.ID != productID {
					kept = append(kept, item)
				}
			}
			return kept, nil
		}
		for i := range items {
			if items[i].Product.ID == productID {
				items[i].Quantity = quantity
				break
			}
		}
		return items, nil
	})
	return err
}

func (s *service) Clear(ctx context.Context) error {
	return s.cart.Put(ctx, nil)
}

func (s *service) TotalPrice(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.cart.Get(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return TotalPrice(items), nil
}

func (s *service) TotalItems(ctx context.Context) (int, error) {
	items, err := s.cart.Get(ctx)
	if err != nil {
		return 0, err
	}
	return TotalItems(items), nil
}

func (s *service) GroupBySeller(ctx context.Context) ([]SellerGroup, error) {
	items, err := s.cart.Get(ctx)
	if err != nil {
		return nil, err
	}
	return GroupBySeller(items), nil
}

// TotalPrice sums unit price times quantity over all lines using each
// line's snapshotted price.
func TotalPrice(items []models.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// TotalItems sums the quantities over all lines.
func TotalItems(items []models.CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	return total
}

// GroupBySeller partitions lines by the embedded seller id, preserving
// first-seen seller order.
func GroupBySeller(items []models.CartItem) []SellerGroup {
	groups := make([]SellerGroup, 0)
	index := map[string]int{}
	for _, item := range items {
		sellerID := item.Product.Seller.ID
		i, ok := index[sellerID]
		if !ok {
			i = len(groups)
			index[sellerID] = i
			groups = append(groups, SellerGroup{Seller: item.Product.Seller, Subtotal: decimal.Zero})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Subtotal = groups[i].Subtotal.Add(item.Subtotal())
	}
	return groups
}
