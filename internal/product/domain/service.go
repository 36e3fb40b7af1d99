package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallretail/legacy-api/pkg/db/pagination"
)

type Service interface {
	List(ctx context.Context, req ListRequest) (*pagination.Page[Response], error)
	Get(ctx context.Context, id int) (*Response, error)
	Create(ctx context.Context, req CreateRequest) (*Response, error)
	Update(ctx context.Context, id int, req UpdateRequest) (*Response, error)
	Delete(ctx context.Context, id int) error
}

type ListRequest struct {
	Page     int
	PageSize int
}

type CreateRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Category      string          `json:"category"`
}

// UpdateRequest carries the replacement values; nil fields keep the stored
// value. The HTTP PUT handler always fills every field.
type UpdateRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stockQuantity"`
	Category      *string          `json:"category"`
}

type Response struct {
	ID            int             `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Category      string          `json:"category"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

var (
	ErrNotFound = errors.New("product_not_found")
	// ErrInUse is returned when a delete is rejected because order items
	// still reference the product.
	ErrInUse = errors.New("product_in_use")
)
