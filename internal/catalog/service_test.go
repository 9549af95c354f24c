package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/olgakuznetsova/minimarket-core/internal/store"
	"github.com/olgakuznetsova/minimarket-core/pkg/config"
	"github.com/olgakuznetsova/minimarket-core/pkg/db"
	"github.com/olgakuznetsova/minimarket-core/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *store.Store) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	client, err := db.New(context.Background(), config.StoreConfig{Path: dsn, AutoMigrate: true}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	st := store.New(client)
	svc, err := NewService(st)
	require.NoError(t, err)
	return svc, st
}

func TestNewServiceRequiresStore(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestSeedIfEmptyPopulatesAllCollections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedIfEmpty(ctx))

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 8)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 8)
}

func TestSeedIfEmptyIsIdempotent(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedIfEmpty(ctx))

	// Thin the catalog down, then seed again. A populated collection must
	// be left alone.
	require.NoError(t, store.Products(st).Put(ctx, fixtureProducts()[:2]))
	require.NoError(t, svc.SeedIfEmpty(ctx))

	products, err := svc.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestGetProductUnknownIsNilNotError(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedIfEmpty(ctx))

	p, err := svc.GetProduct(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Wireless Headphones Pro", p.Name)

	p, err = svc.GetProduct(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetCategoryUnknownIsNilNotError(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedIfEmpty(ctx))

	c, err := svc.GetCategory(ctx, "sports")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Sports", c.Name)

	c, err = svc.GetCategory(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestQueryComposesSearchFilterSort(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedIfEmpty(ctx))

	inStock := true
	sortBy := enums.SortKeyPrice
	result, err := svc.Query(ctx, QueryParams{
		Search:  "stone",
		Filters: FilterOptions{InStock: &inStock},
		SortBy:  &sortBy,
	})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "p5", result[0].ID)
	assert.Equal(t, "p3", result[1].ID)
	assert.True(t, result[0].Price.LessThanOrEqual(result[1].Price))
}

func TestQueryWithoutSortKeepsStoredOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedIfEmpty(ctx))

	max := decimal.NewFromInt(3000)
	result, err := svc.Query(ctx, QueryParams{Filters: FilterOptions{MaxPrice: &max}})
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, "p5", result[0].ID)
	assert.Equal(t, "p6", result[1].ID)
	assert.Equal(t, "p8", result[2].ID)
}

func TestResolveCategoryIconAgainstStoredCategories(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	require.NoError(t, store.Categories(st).Put(ctx, fixtureCategories()))

	assert.Equal(t, "📱", svc.ResolveCategoryIcon(ctx, "electronics"))
	assert.Equal(t, DefaultCategoryIcon, svc.ResolveCategoryIcon(ctx, "mystery"))
}
