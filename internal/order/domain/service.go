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

type CreateItemRequest struct {
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

type CreateRequest struct {
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerAddress string              `json:"customerAddress"`
	Status          Status              `json:"status"`
	Items           []CreateItemRequest `json:"orderItems"`
}

// UpdateRequest replaces customer fields and status only; order items and the
// total amount are never touched through the update path.
type UpdateRequest struct {
	CustomerName    *string `json:"customerName"`
	CustomerEmail   *string `json:"customerEmail"`
	CustomerAddress *string `json:"customerAddress"`
	Status          *Status `json:"status"`
}

type ItemResponse struct {
	ID          int             `json:"id"`
	ProductID   int             `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

type Response struct {
	ID              int             `json:"id"`
	CustomerName    string          `json:"customerName"`
	CustomerEmail   string          `json:"customerEmail"`
	CustomerAddress string          `json:"customerAddress"`
	OrderDate       time.Time       `json:"orderDate"`
	Status          Status          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	OrderItems      []ItemResponse  `json:"orderItems"`
}

var ErrNotFound = errors.New("order_not_found")
