package reviews

import (
	"context"
	"fmt"
	"time"

	"github.com/olgakuznetsova/minimarket-core/internal/store"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	"github.com/olgakuznetsova/minimarket-core/pkg/notify"
	"github.com/olgakuznetsova/minimarket-core/pkg/validate"
)

// Service stores buyer reviews. The data layer stays lenient: duplicate
// reviews per (order, product) are accepted; shells gate submission with
// Eligible.
type Service interface {
	Add(ctx context.Context, input ReviewInput) (*models.Review, error)
	ListByOrder(ctx context.Context, orderID string) ([]models.Review, error)
	ListByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

// ReviewInput is the review form.
type ReviewInput struct {
	ProductID string `json:"productId" validate:"required"`
	OrderID   string `json:"orderId" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type service struct {
	reviews  store.Collection[models.Review]
	notifier notify.Notifier
	now      func() time.Time
}

// ServiceParams bundles review dependencies.
type ServiceParams struct {
	Store    *store.Store
	Notifier notify.Notifier
	Now      func() time.Time
}

// NewService builds the reviews service.
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
		reviews:  store.Reviews(params.Store),
		notifier: params.Notifier,
		now:      params.Now,
	}, nil
}

func (s *service) Add(ctx context.Context, input ReviewInput) (*models.Review, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	review := models.Review{
		ID:        models.NewID(),
		ProductID: input.ProductID,
		OrderID:   input.OrderID,
		Rating:    input.Rating,
		Comment:   input.Comment,
		CreatedAt: s.now().UTC(),
	}
	if _, err := s.reviews.Mutate(ctx, func(all []models.Review) ([]models.Review, error) {
		return append(all, review), nil
	}); err != nil {
		return nil, err
	}
	s.notifier.Publish(ctx, notify.Event{
		Name:    "reviews.submitted",
		Message: "Review submitted",
		Level:   enums.NotificationLevelSuccess,
	})
	return &review, nil
}

func (s *service) ListByOrder(ctx context.Context, orderID string) ([]models.Review, error) {
	all, err := s.reviews.Get(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Review, 0)
	for _, r := range all {
		if r.OrderID == orderID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	all, err := s.reviews.Get(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Review, 0)
	for _, r := range all {
		if r.ProductID == productID {
			matched = append(matched, r)
		}
	}
	return matched, nil
}

// Eligible reports whether the shell should offer the review form for a
// product of the given order: the order must be delivered, must contain the
// product, and no review for the (order, product) pair may exist yet.
func Eligible(order models.Order, productID string, existing []models.Review) bool {
	if order.Status != enums.OrderStatusDelivered {
		return false
	}
	contains := false
	for _, item := range order.Items {
		if item.Product.ID == productID {
			contains = true
			break
		}
	}
	if !contains {
		return false
	}
	for _, r := range existing {
		if r.OrderID == order.ID && r.ProductID == productID {
			return false
		}
	}
	return true
}
