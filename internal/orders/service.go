package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/olgakuznetsova/minimarket-core/internal/store"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	pkgerrors "github.com/olgakuznetsova/minimarket-core/pkg/errors"
	"github.com/olgakuznetsova/minimarket-core/pkg/logger"
)

// Service is the order lifecycle engine: time-driven status re-derivation,
// history regeneration, and the explicit cancel transition.
type Service interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (*models.Order, error)
	Refresh(ctx context.Context, id string) (*models.Order, error)
	Cancel(ctx context.Context, id string) (*models.Order, error)
	Watch(ctx context.Context, id string, onChange func(models.Order))
}

type service struct {
	orders        store.Collection[models.Order]
	thresholds    Thresholds
	watchInterval time.Duration
	logg          *logger.Logger
	now           func() time.Time
}

// ServiceParams bundles the lifecycle engine dependencies. Thresholds and
// WatchInterval fall back to the storefront defaults; Now defaults to
// wall-clock time.
type ServiceParams struct {
	Store         *store.Store
	Thresholds    Thresholds
	WatchInterval time.Duration
	Logger        *logger.Logger
	Now           func() time.Time
}

// NewService builds the lifecycle engine.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("collection store required")
	}
	if params.Thresholds == (Thresholds{}) {
		params.Thresholds = DefaultThresholds()
	}
	if params.WatchInterval <= 0 {
		params.WatchInterval = time.Minute
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &service{
		orders:        store.Orders(params.Store),
		thresholds:    params.Thresholds,
		watchInterval: params.WatchInterval,
		logg:          params.Logger,
		now:           params.Now,
	}, nil
}

func (s *service) List(ctx context.Context) ([]models.Order, error) {
	return s.orders.Get(ctx)
}

// Get returns the stored order without re-deriving its status; nil when
// the id is unknown.
func (s *service) Get(ctx context.Context, id string) (*models.Order, error) {
	all, err := s.orders.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, order := range all {
		if order.ID == id {
			return &order, nil
		}
	}
	return nil, nil
}

// errUnchanged aborts a Mutate cycle whose transform produced no change,
// so re-derivation does not burn a version on every read.
var errUnchanged = errors.New("order unchanged")

// Refresh re-derives the order's status from elapsed time and, when the
// status moved or no history exists yet, regenerates the status history
// wholesale and persists the order. Re-applying it is idempotent.
func (s *service) Refresh(ctx context.Context, id string) (*models.Order, error) {
	var refreshed *models.Order
	_, err := s.orders.Mutate(ctx, func(all []models.Order) ([]models.Order, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			order := &all[i]
			derived := DeriveStatus(order.Status, order.CreatedAt, s.now().UTC(), s.thresholds)
			if derived == order.Status && len(order.StatusHistory) > 0 {
				snapshot := *order
				refreshed = &snapshot
				return nil, errUnchanged
			}
			order.Status = derived
			if order.Status == enums.OrderStatusCancelled {
				// Cancellation history is written by Cancel; keep it.
				if len(order.StatusHistory) == 0 {
					order.StatusHistory = BuildHistory(order.Status, order.CreatedAt, s.thresholds)
				}
			} else {
				order.StatusHistory = BuildHistory(order.Status, order.CreatedAt, s.thresholds)
			}
			snapshot := *order
			refreshed = &snapshot
			return all, nil
		}
		return nil, errUnchanged
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return nil, err
	}
	return refreshed, nil
}

// Cancel is the explicit producing transition into the cancelled status.
// It refuses orders already delivered or cancelled and appends a real-time
// history entry rather than a synthetic checkpoint.
func (s *service) Cancel(ctx context.Context, id string) (*models.Order, error) {
	var cancelled *models.Order
	_, err := s.orders.Mutate(ctx, func(all []models.Order) ([]models.Order, error) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			order := &all[i]
			if order.Status.IsTerminal() {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "order already completed")
			}
			now := s.now().UTC()
			order.Status = enums.OrderStatusCancelled
			if len(order.StatusHistory) == 0 {
				order.StatusHistory = BuildHistory(enums.OrderStatusPending, order.CreatedAt, s.thresholds)
			}
			order.StatusHistory = append(order.StatusHistory, models.OrderStatusEntry{
				Status:      enums.OrderStatusCancelled,
				Timestamp:   now,
				Description: "Order cancelled",
			})
			snapshot := *order
			cancelled = &snapshot
			return all, nil
		}
		return nil, errUnchanged
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return nil, err
	}
	return cancelled, nil
}

// Watch re-derives the order on a fixed interval until ctx is cancelled,
// invoking onChange whenever the visible status moves. The first
// evaluation happens immediately. Run it from the goroutine owning the
// order-detail view and cancel the context on teardown.
func (s *service) Watch(ctx context.Context, id string, onChange func(models.Order)) {
	var lastStatus enums.OrderStatus

	evaluate := func() {
		order, err := s.Refresh(ctx, id)
		if err != nil {
			if s.logg != nil {
				s.logg.Error(s.logg.WithOrderID(ctx, id), "order refresh failed", err)
			}
			return
		}
		if order == nil {
			return
		}
		if order.Status != lastStatus {
			lastStatus = order.Status
			if onChange != nil {
				onChange(*order)
			}
		}
	}

	evaluate()

	ticker := time.NewTicker(s.watchInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			evaluate()
		}
	}
}
