package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cuca-backend/internal/domain/models"
)

func TestSetUserActiveAdminFlow(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)
	env.registerAndLogin(t, "usuario", "usuario@example.com", "123456")

	var customer models.User
	require.NoError(t, env.DB.Where("username = ?", "usuario").First(&customer).Error)

	w := env.do(t, http.MethodPut, "/api/admin/users/2/status", admin, gin.H{
		"is_active": false,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, env.DB.First(&customer, customer.ID).Error)
	assert.False(t, customer.IsActive)

	// 停用后无法登录
	resp := env.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"username": "usuario",
		"password": "123456",
	})
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestSetUserActiveProtectsLastAdminOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	// 唯一的管理员不能停用自己
	w := env.do(t, http.MethodPut, "/api/admin/users/1/status", admin, gin.H{
		"is_active": false,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "admin")
}

func TestSetUserActiveMissingBodyField(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)

	w := env.do(t, http.MethodPut, "/api/admin/users/1/status", admin, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
