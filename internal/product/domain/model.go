package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            int             `gorm:"primaryKey"`
	Name          string          `gorm:"size:200;not null"`
	Description   string          `gorm:"size:1000"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	Category      string          `gorm:"size:100;not null"`
	CreatedAt     time.Time       `gorm:"not null"`
	UpdatedAt     time.Time       `gorm:"not null"`
}

func (Product) TableName() string { return "products" }
