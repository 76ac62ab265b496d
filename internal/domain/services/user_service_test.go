package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
)

func seedUsers(t *testing.T, db *gorm.DB) (models.User, models.User) {
	t.Helper()

	admin := models.User{
		Username: "admin",
		Email:    "admin@cuca.ao",
		Password: "hash",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	customer := models.User{
		Username: "usuario",
		Email:    "usuario@example.com",
		Password: "hash",
		Role:     models.RoleUser,
		IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)
	require.NoError(t, db.Create(&customer).Error)
	return admin, customer
}

func TestSetUserActiveDeactivatesCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())
	_, customer := seedUsers(t, db)

	updated, err := svc.SetUserActive(context.Background(), customer.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestSetUserActiveProtectsLastAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())
	admin, _ := seedUsers(t, db)

	_, err := svc.SetUserActive(context.Background(), admin.ID, false)
	assert.ErrorIs(t, err, ErrLastActiveAdmin)

	// 账户保持可用
	var check models.User
	require.NoError(t, db.First(&check, admin.ID).Error)
	assert.True(t, check.IsActive)
}

func TestSetUserActiveAllowsDeactivatingAdminWhenAnotherRemains(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())
	admin, _ := seedUsers(t, db)

	second := models.User{
		Username: "admin2",
		Email:    "admin2@cuca.ao",
		Password: "hash",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
	require.NoError(t, db.Create(&second).Error)

	updated, err := svc.SetUserActive(context.Background(), admin.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
}

func TestGetAllUsersSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())
	seedUsers(t, db)

	users, total, err := svc.GetAllUsers(context.Background(), 1, 10, "usuario")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, users, 1)
	assert.Equal(t, "usuario", users[0].Username)
}

func TestGetUserByUsernameExactMatch(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, newTestConfig())
	seedUsers(t, db)

	_, err := svc.GetUserByUsername(context.Background(), "usuari")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	user, err := svc.GetUserByUsername(context.Background(), "usuario")
	require.NoError(t, err)
	assert.Equal(t, "usuario@example.com", user.Email)
}
