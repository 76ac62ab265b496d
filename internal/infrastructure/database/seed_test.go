package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

func newSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestEnsureAdminExistsCreatesAccount(t *testing.T) {
	db := newSeedTestDB(t)
	cfg := &config.Config{DefaultAdminPassword: "segredo-forte"}

	require.NoError(t, EnsureAdminExists(db, cfg))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "admin").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.True(t, admin.IsActive)

	// 密码来自配置且以bcrypt存储
	assert.NotEqual(t, "segredo-forte", admin.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("segredo-forte")))
}

func TestEnsureAdminExistsIdempotent(t *testing.T) {
	db := newSeedTestDB(t)
	cfg := &config.Config{DefaultAdminPassword: "segredo-forte"}

	require.NoError(t, EnsureAdminExists(db, cfg))
	require.NoError(t, EnsureAdminExists(db, cfg))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSeedProductsOnlyWhenEmpty(t *testing.T) {
	db := newSeedTestDB(t)

	require.NoError(t, SeedProducts(db))

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	// 第二次调用不会重复写入
	require.NoError(t, SeedProducts(db))
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)
}
