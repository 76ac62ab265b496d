package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

// newTestDB 创建隔离的内存数据库，迁移所有模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// 每个测试使用独立命名的共享内存库，避免连接池拿到空库
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ContactMessage{},
		&models.AnalyticsEvent{},
		&models.FanPhoto{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

// newTestConfig 创建测试配置
func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:    "test-secret-key",
		JWTExpiresHours: 1,
	}
}
