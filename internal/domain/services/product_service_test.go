package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
)

func TestGetActiveProductsExcludesInactive(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db, newTestConfig())
	ctx := context.Background()

	require.NoError(t, svc.CreateProduct(ctx, &models.Product{
		Name: "CUCA Original", Price: decimal.NewFromInt(1500), Category: "cerveja", IsActive: true,
	}))
	require.NoError(t, svc.CreateProduct(ctx, &models.Product{
		Name: "CUCA Antiga", Price: decimal.NewFromInt(1200), Category: "cerveja", IsActive: false,
	}))

	products, total, err := svc.GetActiveProducts(ctx, 1, 10, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "CUCA Original", products[0].Name)

	// 管理端列表包含下架产品
	_, adminTotal, err := svc.GetAllProducts(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), adminTotal)
}

func TestGetActiveProductsCategoryFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db, newTestConfig())
	ctx := context.Background()

	require.NoError(t, svc.CreateProduct(ctx, &models.Product{
		Name: "CUCA Original", Price: decimal.NewFromInt(1500), Category: "cerveja", IsActive: true,
	}))
	require.NoError(t, svc.CreateProduct(ctx, &models.Product{
		Name: "CUCA Copo", Price: decimal.NewFromInt(500), Category: "merchandising", IsActive: true,
	}))

	products, total, err := svc.GetActiveProducts(ctx, 1, 10, "merchandising", "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "CUCA Copo", products[0].Name)
}

func TestUpdateProductPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db, newTestConfig())
	ctx := context.Background()

	product := &models.Product{
		Name: "CUCA Original", Price: decimal.NewFromInt(1500), StockQuantity: 10, IsActive: true,
	}
	require.NoError(t, svc.CreateProduct(ctx, product))

	updated, err := svc.UpdateProduct(ctx, product.ID, map[string]interface{}{
		"stock_quantity": 25,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.StockQuantity)
	// 未提及的字段不受影响
	assert.Equal(t, "CUCA Original", updated.Name)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(1500)))
}

func TestDeleteProductNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewProductService(db, newTestConfig())

	err := svc.DeleteProduct(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
