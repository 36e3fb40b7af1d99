package domain

import (
	"time"

	"github.com/shopspring/decimal"
	productdomain "github.com/smallretail/legacy-api/internal/product/domain"
)

type Order struct {
	ID              int             `gorm:"primaryKey"`
	CustomerName    string          `gorm:"size:200;not null"`
	CustomerEmail   string          `gorm:"size:200;not null"`
	CustomerAddress string          `gorm:"size:500;not null"`
	OrderDate       time.Time       `gorm:"not null"`
	Status          Status          `gorm:"not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt       time.Time       `gorm:"not null"`
	UpdatedAt       time.Time       `gorm:"not null"`

	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID         int             `gorm:"primaryKey"`
	OrderID    int             `gorm:"not null;index"`
	ProductID  int             `gorm:"not null;index"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	Product productdomain.Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
}

func (OrderItem) TableName() string { return "order_items" }
