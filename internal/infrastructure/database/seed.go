package database

import (
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cuca-backend/internal/domain/models"
	"cuca-backend/internal/infrastructure/config"
)

// EnsureAdminExists 确保系统中至少有一个管理员账户。
// 管理员是一条普通的账户记录，密码来自配置，代码中不存在任何后门凭据。
func EnsureAdminExists(db *gorm.DB, cfg *config.Config) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:  "admin",
		Email:     "admin@cuca.ao",
		Password:  string(hashedPassword),
		FirstName: "Admin",
		LastName:  "CUCA",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}

	if err := db.Create(&admin).Error; err != nil {
		// 并发启动时另一实例可能已经创建了管理员
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}

	log.Println("已创建默认管理员账户 (用户名: admin)")
	return nil
}

// SeedProducts 初始化产品目录，仅在目录为空时写入
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	products := []models.Product{
		{
			Name:          "CUCA Original",
			Description:   "A cerveja original que conquistou Angola com seu sabor único e refrescante.",
			Price:         decimal.NewFromFloat(1500.00),
			Category:      "Cerveja",
			ImageURL:      "/images/cuca-original.jpg",
			StockQuantity: 100,
			IsActive:      true,
		},
		{
			Name:          "CUCA Light",
			Description:   "Versão mais leve da CUCA, mantendo todo o sabor com menos calorias.",
			Price:         decimal.NewFromFloat(1600.00),
			Category:      "Cerveja",
			ImageURL:      "/images/cuca-light.jpg",
			StockQuantity: 75,
			IsActive:      true,
		},
		{
			Name:          "CUCA Premium",
			Description:   "A versão premium da CUCA com ingredientes selecionados e sabor refinado.",
			Price:         decimal.NewFromFloat(2000.00),
			Category:      "Cerveja Premium",
			ImageURL:      "/images/cuca-premium.jpg",
			StockQuantity: 50,
			IsActive:      true,
		},
	}

	if err := db.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("已初始化产品目录: %d 条记录", len(products))
	return nil
}
