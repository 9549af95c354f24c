package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	pkgerrors "github.com/olgakuznetsova/minimarket-core/pkg/errors"
	"gorm.io/gorm"
)

// Collection is a typed handle over one stored collection.
type Collection[T any] struct {
	store *Store
	key   string
}

// NewCollection binds a typed handle to a collection key.
func NewCollection[T any](s *Store, key string) Collection[T] {
	return Collection[T]{store: s, key: key}
}

// Typed handles for the six storefront collections.

func Cart(s *Store) Collection[models.CartItem] {
	return NewCollection[models.CartItem](s, KeyCart)
}

func Orders(s *Store) Collection[models.Order] {
	return NewCollection[models.Order](s, KeyOrders)
}

func Products(s *Store) Collection[models.Product] {
	return NewCollection[models.Product](s, KeyProducts)
}

func Categories(s *Store) Collection[models.Category] {
	return NewCollection[models.Category](s, KeyCategories)
}

func Reviews(s *Store) Collection[models.Review] {
	return NewCollection[models.Review](s, KeyReviews)
}

func Sellers(s *Store) Collection[models.Seller] {
	return NewCollection[models.Seller](s, KeySellers)
}

// Get reads the whole collection. A missing row or absent storage yields an
// empty slice, never an error.
func (c Collection[T]) Get(ctx context.Context) ([]T, error) {
	items, _, err := c.load(ctx)
	return items, err
}

// Put replaces the whole collection unconditionally, bumping the version.
func (c Collection[T]) Put(ctx context.Context, items []T) error {
	conn := c.store.handle(ctx)
	if conn == nil {
		return nil
	}
	payload, err := marshalItems(items)
	if err != nil {
		return err
	}
	return upsertRecord(conn, c.key, payload)
}

// Mutate runs one read-modify-write cycle under the version guard: fn
// receives the current items and returns the replacement. If another writer
// moved the version underneath, Mutate fails with CONFLICT and writes
// nothing. Without storage, fn still runs (over the empty collection) and
// the result is discarded.
func (c Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) ([]T, error) {
	items, version, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(items)
	if err != nil {
		return nil, err
	}
	conn := c.store.handle(ctx)
	if conn == nil {
		return next, nil
	}
	payload, err := marshalItems(next)
	if err != nil {
		return nil, err
	}
	if err := c.writeGuarded(conn, payload, version); err != nil {
		return nil, err
	}
	return next, nil
}

// load returns the items plus the row version (0 when the row is absent).
func (c Collection[T]) load(ctx context.Context) ([]T, int64, error) {
	conn := c.store.handle(ctx)
	if conn == nil {
		return []T{}, 0, nil
	}
	var rec models.CollectionRecord
	err := conn.Where("collection = ?", c.key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return []T{}, 0, nil
	}
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read collection")
	}
	if len(rec.Payload) == 0 {
		return []T{}, rec.Version, nil
	}
	var items []T
	if err := json.Unmarshal(rec.Payload, &items); err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode collection")
	}
	if items == nil {
		items = []T{}
	}
	return items, rec.Version, nil
}

func (c Collection[T]) writeGuarded(conn *gorm.DB, payload []byte, expectedVersion int64) error {
	now := time.Now().UTC()
	if expectedVersion == 0 {
		rec := models.CollectionRecord{Collection: c.key, Payload: payload, Version: 1, UpdatedAt: now}
		if err := conn.Create(&rec).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkgerrors.New(pkgerrors.CodeConflict, "collection changed concurrently")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create collection")
		}
		return nil
	}
	result := conn.Model(&models.CollectionRecord{}).
		Where("collection = ? AND version = ?", c.key, expectedVersion).
		Updates(map[string]any{
			"payload":    payload,
			"version":    expectedVersion + 1,
			"updated_at": now,
		})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "write collection")
	}
	if result.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "collection changed concurrently")
	}
	return nil
}

func marshalItems[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode collection")
	}
	return payload, nil
}
