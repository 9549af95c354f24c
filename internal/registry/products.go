package registry

import (
	"context"
	"errors"

	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	pkgerrors "github.com/olgakuznetsova/minimarket-core/pkg/errors"
	"github.com/olgakuznetsova/minimarket-core/pkg/validate"
	"github.com/shopspring/decimal"
)

// ProductInput is the product form used by both create and update.
type ProductInput struct {
	Name        string           `json:"name" validate:"required"`
	Description string           `json:"description" validate:"required"`
	Price       decimal.Decimal  `json:"price" validate:"required"`
	OldPrice    *decimal.Decimal `json:"oldPrice"`
	Image       string           `json:"image"`
	Category    string           `json:"category" validate:"required"`
	InStock     bool             `json:"inStock"`
}

func (p ProductInput) validatePrice() error {
	if p.Price.IsNegative() || p.Price.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	if p.OldPrice != nil && p.OldPrice.LessThanOrEqual(p.Price) {
		return pkgerrors.New(pkgerrors.CodeValidation, "old price must exceed the current price")
	}
	return nil
}

// errNoMatch aborts a Mutate cycle that found nothing to change.
var errNoMatch = errors.New("no matching product")

// ListSellerProducts returns the products owned by the given seller.
func (s *service) ListSellerProducts(ctx context.Context, sellerID string) ([]models.Product, error) {
	all, err := s.products.Get(ctx)
	if err != nil {
		return nil, err
	}
	owned := make([]models.Product, 0)
	for _, p := range all {
		if p.Seller.ID == sellerID {
			owned = append(owned, p)
		}
	}
	return owned, nil
}

// AddSellerProduct appends a new listing with the owning seller embedded as
// a credential-stripped snapshot. An unknown seller yields nil.
func (s *service) AddSellerProduct(ctx context.Context, sellerID string, input ProductInput) (*models.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := input.validatePrice(); err != nil {
		return nil, err
	}
	seller, err := s.GetSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if seller == nil {
		return nil, nil
	}

	product := models.Product{
		ID:          models.NewID(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		OldPrice:    input.OldPrice,
		Image:       input.Image,
		Category:    input.Category,
		Seller:      *seller,
		InStock:     input.InStock,
	}
	if _, err := s.products.Mutate(ctx, func(all []models.Product) ([]models.Product, error) {
		return append(all, product), nil
	}); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateSellerProduct mutates a listing only when BOTH the product id and
// the owning seller id match; anything else is a silent no-op returning
// nil, so one seller's handle can never touch another seller's product.
func (s *service) UpdateSellerProduct(ctx context.Context, sellerID, productID string, input ProductInput) (*models.Product, error) {
	if err := validate.Struct(input); err != nil {
		return nil, err
	}
	if err := input.validatePrice(); err != nil {
		return nil, err
	}

	var updated *models.Product
	_, err := s.products.Mutate(ctx, func(all []models.Product) ([]models.Product, error) {
		for i := range all {
			if all[i].ID != productID || all[i].Seller.ID != sellerID {
				continue
			}
			p := &all[i]
			p.Name = input.Name
			p.Description = input.Description
			p.Price = input.Price
			p.OldPrice = input.OldPrice
			p.Image = input.Image
			p.Category = input.Category
			p.InStock = input.InStock
			snapshot := *p
			updated = &snapshot
			return all, nil
		}
		return nil, errNoMatch
	})
	if err != nil && !errors.Is(err, errNoMatch) {
		return nil, err
	}
	return updated, nil
}

// DeleteSellerProduct removes a listing under the same double-match rule;
// a mismatch deletes nothing.
func (s *service) DeleteSellerProduct(ctx context.Context, sellerID, productID string) error {
	_, err := s.products.Mutate(ctx, func(all []models.Product) ([]models.Product, error) {
		kept := all[:0]
		removed := false
		for _, p := range all {
			if p.ID == productID && p.Seller.ID == sellerID {
				removed = true
				continue
			}
			kept = append(kept, p)
		}
		if !removed {
			return nil, errNoMatch
		}
		return kept, nil
	})
	if err != nil && !errors.Is(err, errNoMatch) {
		return err
	}
	return nil
}
