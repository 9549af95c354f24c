package catalog

import (
	"context"
	"fmt"

	"github.com/olgakuznetsova/minimarket-core/internal/store"
	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
)

// Service exposes catalog browsing operations to the presentation shell.
type Service interface {
	Products(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	Categories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	Query(ctx context.Context, params QueryParams) ([]models.Product, error)
	ResolveCategoryIcon(ctx context.Context, categoryID string) string
	SeedIfEmpty(ctx context.Context) error
}

// QueryParams composes the pipeline: search, then filter, then sort.
// SortBy nil leaves the filtered order untouched.
type QueryParams struct {
	Search  string
	Filters FilterOptions
	SortBy  *enums.SortKey
}

type service struct {
	products   store.Collection[models.Product]
	categories store.Collection[models.Category]
	sellers    store.Collection[models.Seller]
}

// NewService builds the catalog service over the collection store.
func NewService(st *store.Store) (Service, error) {
	if st == nil {
		return nil, fmt.Errorf("collection store required")
	}
	return &service{
		products:   store.Products(st),
		categories: store.Categories(st),
		sellers:    store.Sellers(st),
	}, nil
}

func (s *service) Products(ctx context.Context) ([]models.Product, error) {
	return s.products.Get(ctx)
}

// GetProduct returns nil without error when the id is unknown; the shell
// renders the not-found state.
func (s *service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	products, err := s.products.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *service) Categories(ctx context.Context) ([]models.Category, error) {
	return s.categories.Get(ctx)
}

func (s *service) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	categories, err := s.categories.Get(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *service) Query(ctx context.Context, params QueryParams) ([]models.Product, error) {
	products, err := s.products.Get(ctx)
	if err != nil {
		return nil, err
	}
	result := SearchProducts(products, params.Search)
	result = FilterProducts(result, params.Filters)
	if params.SortBy != nil {
		result = SortProducts(result, *params.SortBy)
	}
	return result, nil
}
