package registry

import (
	"context"
	"testing"

	"github.com/olgakuznetsova/minimarket-core/pkg/db/models"
	pkgerrors "github.com/olgakuznetsova/minimarket-core/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerSeller(t *testing.T, svc Service, name, email string) *models.Seller {
	t.Helper()
	input := validRegistration()
	input.StoreName = name
	input.Email = email
	session, err := svc.Register(context.Background(), input)
	require.NoError(t, err)
	return session.Seller
}

func validProduct() ProductInput {
	old := decimal.NewFromInt(4990)
	return ProductInput{
		Name:        "Ceramic Vase",
		Description: "Hand-thrown stoneware vase",
		Price:       decimal.NewFromInt(3490),
		OldPrice:    &old,
		Image:       "/images/products/vase.jpg",
		Category:    "home",
		InStock:     true,
	}
}

func TestAddSellerProductEmbedsSellerSnapshot(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seller := registerSeller(t, svc, "Vintage Finds", "owner@example.com")

	product, err := svc.AddSellerProduct(ctx, seller.ID, validProduct())
	require.NoError(t, err)
	require.NotNil(t, product)
	assert.NotEmpty(t, product.ID)
	assert.Equal(t, seller.ID, product.Seller.ID)
	assert.Equal(t, "Vintage Finds", product.Seller.Name)
	assert.Nil(t, product.Seller.Password)

	owned, err := svc.ListSellerProducts(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, product.ID, owned[0].ID)
}

func TestAddSellerProductUnknownSellerIsNil(t *testing.T) {
	svc, _, _ := newTestService(t)

	product, err := svc.AddSellerProduct(context.Background(), "nope", validProduct())
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestProductPriceValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seller := registerSeller(t, svc, "Vintage Finds", "owner@example.com")

	input := validProduct()
	input.Price = decimal.Zero
	input.OldPrice = nil
	_, err := svc.AddSellerProduct(ctx, seller.ID, input)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	// The old price has to represent a real markdown.
	input = validProduct()
	lower := decimal.NewFromInt(1000)
	input.OldPrice = &lower
	_, err = svc.AddSellerProduct(ctx, seller.ID, input)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestUpdateSellerProduct(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seller := registerSeller(t, svc, "Vintage Finds", "owner@example.com")
	product, err := svc.AddSellerProduct(ctx, seller.ID, validProduct())
	require.NoError(t, err)

	input := validProduct()
	input.Name = "Ceramic Vase XL"
	input.Price = decimal.NewFromInt(4290)
	input.InStock = false
	updated, err := svc.UpdateSellerProduct(ctx, seller.ID, product.ID, input)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, product.ID, updated.ID)
	assert.Equal(t, "Ceramic Vase XL", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(4290)))
	assert.False(t, updated.InStock)

	owned, err := svc.ListSellerProducts(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Ceramic Vase XL", owned[0].Name)
}

func TestCrossSellerUpdateIsNoOp(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	owner := registerSeller(t, svc, "Vintage Finds", "owner@example.com")
	require.NoError(t, svc.Logout(ctx))
	intruder := registerSeller(t, svc, "Copycat", "copycat@example.com")

	product, err := svc.AddSellerProduct(ctx, owner.ID, validProduct())
	require.NoError(t, err)

	input := validProduct()
	input.Name = "Hijacked"
	updated, err := svc.UpdateSellerProduct(ctx, intruder.ID, product.ID, input)
	require.NoError(t, err)
	assert.Nil(t, updated)

	owned, err := svc.ListSellerProducts(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, "Ceramic Vase", owned[0].Name)
}

func TestDeleteSellerProduct(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	seller := registerSeller(t, svc, "Vintage Finds", "owner@example.com")
	product, err := svc.AddSellerProduct(ctx, seller.ID, validProduct())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSellerProduct(ctx, seller.ID, product.ID))

	owned, err := svc.ListSellerProducts(ctx, seller.ID)
	require.NoError(t, err)
	assert.Empty(t, owned)
}

func TestCrossSellerDeleteIsNoOp(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	owner := registerSeller(t, svc, "Vintage Finds", "owner@example.com")
	require.NoError(t, svc.Logout(ctx))
	intruder := registerSeller(t, svc, "Copycat", "copycat@example.com")

	product, err := svc.AddSellerProduct(ctx, owner.ID, validProduct())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSellerProduct(ctx, intruder.ID, product.ID))

	owned, err := svc.ListSellerProducts(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, owned, 1)
}
