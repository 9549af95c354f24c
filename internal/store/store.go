package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/olgakuznetsova/minimarket-core/pkg/db"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	pkgerrors "github.com/olgakuznetsova/minimarket-core/pkg/errors"
	"gorm.io/gorm"
)

// Collection keys. One row per key in collection_records.
const (
	KeyCart       = "marketplace_cart"
	KeyOrders     = "marketplace_orders"
	KeyProducts   = "marketplace_products"
	KeyCategories = "marketplace_categories"
	KeyReviews    = "marketplace_reviews"
	KeySellers    = "marketplace_sellers"

	keyCurrentSeller = "marketplace_current_seller"
)

// Store is the persistent collection store. Every mutation is a
// whole-collection read-modify-write guarded by the row's version counter,
// so interleaved writers get a CONFLICT instead of silently clobbering each
// other. A Store built without a database degrades to empty reads and inert
// writes so the core stays usable where no storage exists.
type Store struct {
	client *db.Client
	tx     *gorm.DB
}

// New builds a store over the given database client. A nil client is
// allowed and yields the inert store.
func New(client *db.Client) *Store {
	return &Store{client: client}
}

// Transact runs fn against a store bound to a single transaction. Nested
// calls reuse the outer transaction; the inert store runs fn directly.
func (s *Store) Transact(ctx context.Context, fn func(tx *Store) error) error {
	if s.tx != nil || s.client == nil {
		return fn(s)
	}
	return s.client.WithTx(ctx, func(tx *gorm.DB) error {
		return fn(&Store{client: s.client, tx: tx})
	})
}

// handle returns the connection for the current scope, or nil when storage
// is absent.
func (s *Store) handle(ctx context.Context) *gorm.DB {
	if s.tx != nil {
		return s.tx.WithContext(ctx)
	}
	if s.client == nil {
		return nil
	}
	return s.client.DB().WithContext(ctx)
}

// CurrentSeller reads the singleton session slot. Absence is a nil seller,
// never an error.
func (s *Store) CurrentSeller(ctx context.Context) (*models.Seller, error) {
	conn := s.handle(ctx)
	if conn == nil {
		return nil, nil
	}
	var rec models.CollectionRecord
	err := conn.Where("collection = ?", keyCurrentSeller).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read session slot")
	}
	if len(rec.Payload) == 0 {
		return nil, nil
	}
	var seller *models.Seller
	if err := json.Unmarshal(rec.Payload, &seller); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode session slot")
	}
	return seller, nil
}

// SetCurrentSeller replaces the session slot; a nil seller clears it.
func (s *Store) SetCurrentSeller(ctx context.Context, seller *models.Seller) error {
	conn := s.handle(ctx)
	if conn == nil {
		return nil
	}
	if seller == nil {
		err := conn.Where("collection = ?", keyCurrentSeller).Delete(&models.CollectionRecord{}).Error
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear session slot")
		}
		return nil
	}
	payload, err := json.Marshal(seller)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode session slot")
	}
	return upsertRecord(conn, keyCurrentSeller, payload)
}

func upsertRecord(conn *gorm.DB, key string, payload []byte) error {
	now := time.Now().UTC()
	result := conn.Model(&models.CollectionRecord{}).
		Where("collection = ?", key).
		Updates(map[string]any{
			"payload":    payload,
			"version":    gorm.Expr("version + 1"),
			"updated_at": now,
		})
	if result.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, result.Error, "write collection")
	}
	if result.RowsAffected > 0 {
		return nil
	}
	rec := models.CollectionRecord{Collection: key, Payload: payload, Version: 1, UpdatedAt: now}
	if err := conn.Create(&rec).Error; err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create collection")
	}
	return nil
}
