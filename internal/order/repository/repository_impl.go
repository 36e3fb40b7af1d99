package repository

import (
	"context"
	"errors"

	"github.com/smallretail/legacy-api/internal/order/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	items := order.Items
	order.Items = nil

	if err := db.WithContext(ctx).Create(order).Error; err != nil {
		order.Items = items
		return err
	}

	for i := range items {
		items[i].OrderID = order.ID
		if err := db.WithContext(ctx).Omit("Product").Create(&items[i]).Error; err != nil {
			order.Items = items
			return err
		}
	}

	order.Items = items
	return nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int) (*domain.Order, error) {
	var o domain.Order
	err := db.WithContext(ctx).
		Preload("Items.Product").
		First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repo) FindPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Order, error) {
	var items []domain.Order
	err := db.WithContext(ctx).
		Preload("Items.Product").
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Order{}).Count(&count).Error
	return count, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	if order == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).
		Model(&domain.Order{ID: order.ID}).
		Select("customer_name", "customer_email", "customer_address", "status", "updated_at").
		Updates(order).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id int) error {
	// Cascade explicitly so the behavior does not depend on driver-level
	// foreign key enforcement.
	if err := db.WithContext(ctx).Where("order_id = ?", id).Delete(&domain.OrderItem{}).Error; err != nil {
		return err
	}
	return db.WithContext(ctx).Delete(&domain.Order{}, id).Error
}
