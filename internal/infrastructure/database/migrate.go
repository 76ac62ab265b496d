package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
)

// AutoMigrate 自动迁移所有模型（只添加新列和新表）
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.ContactMessage{},
		&models.AnalyticsEvent{},
		&models.FanPhoto{},
	)
	if err != nil {
		return err
	}

	log.Println("数据库迁移完成")
	return nil
}

// DropAndRecreateTables 删除并重建所有表
func DropAndRecreateTables(db *gorm.DB) error {
	// 警告: 这将删除所有数据
	log.Println("警告: 正在删除并重建所有表，所有数据将丢失")

	// 按外键依赖的逆序删表
	tables := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.AnalyticsEvent{},
		&models.FanPhoto{},
		&models.ContactMessage{},
		&models.Product{},
		&models.User{},
	}

	for _, table := range tables {
		if err := db.Migrator().DropTable(table); err != nil {
			return fmt.Errorf("删除表失败: %w", err)
		}
	}

	return AutoMigrate(db)
}
