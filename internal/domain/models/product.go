package models

import "github.com/shopspring/decimal"

// Product represents a catalog entry of the beverage line
type Product struct {
	BaseModel
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category      string          `gorm:"type:varchar(100)" json:"category"`
	ImageURL      string          `gorm:"type:varchar(500)" json:"image_url"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
}
