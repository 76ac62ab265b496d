package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuca-backend/internal/domain/models"
)

func TestGetProductsExcludesInactive(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.DB.Create(&models.Product{
		Name: "CUCA Original", Price: decimal.NewFromInt(1500), IsActive: true,
	}).Error)
	require.NoError(t, env.DB.Create(&models.Product{
		Name: "CUCA Antiga", Price: decimal.NewFromInt(1200), IsActive: false,
	}).Error)

	w := env.do(t, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CUCA Original")
	assert.NotContains(t, w.Body.String(), "CUCA Antiga")
}

func TestCreateProductAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerAndLogin(t, "usuario", "usuario@example.com", "123456")

	payload := gin.H{
		"name":           "CUCA Premium",
		"price":          "2000.00",
		"category":       "cerveja",
		"stock_quantity": 50,
	}

	w := env.do(t, http.MethodPost, "/api/admin/products", "", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/products", user, payload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := env.adminToken(t)
	w = env.do(t, http.MethodPost, "/api/admin/products", admin, payload)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Product
	require.NoError(t, env.DB.Where("name = ?", "CUCA Premium").First(&stored).Error)
	assert.True(t, stored.Price.Equal(decimal.RequireFromString("2000.00")))
	assert.True(t, stored.IsActive)
}

func TestCreateProductRejectsInvalidPrice(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	w := env.do(t, http.MethodPost, "/api/admin/products", admin, gin.H{
		"name":  "CUCA Estranha",
		"price": "-10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/admin/products", admin, gin.H{
		"name":  "CUCA Estranha",
		"price": "not-a-number",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetProductNotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/products/999", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/products/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
