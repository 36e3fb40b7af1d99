package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	// FindByID loads the order with its items and each item's product.
	FindByID(ctx context.Context, db *gorm.DB, id int) (*Order, error)
	FindPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]Order, error)
	Count(ctx context.Context, db *gorm.DB) (int64, error)
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	Delete(ctx context.Context, db *gorm.DB, id int) error
}
