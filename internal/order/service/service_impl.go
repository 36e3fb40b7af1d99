package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallretail/legacy-api/internal/order/domain"
	"github.com/smallretail/legacy-api/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("order.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) (*pagination.Page[domain.Response], error) {
	window := pagination.Request{Page: req.Page, PageSize: req.PageSize}.Normalize()

	totalCount, err := s.repo.Count(ctx, s.db)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindPage(ctx, s.db, window.Offset(), window.Limit())
	if err != nil {
		return nil, err
	}

	resp := make([]domain.Response, 0, len(items))
	for i := range items {
		resp = append(resp, toResponse(&items[i]))
	}

	return pagination.NewPage(resp, window, totalCount), nil
}

func (s *Service) Get(ctx context.Context, id int) (*domain.Response, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(order)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	now := time.Now().UTC()

	order := &domain.Order{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerAddress: req.CustomerAddress,
		OrderDate:       now,
		Status:          req.Status,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	total := decimal.Zero
	for _, item := range req.Items {
		totalPrice := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(totalPrice)
		order.Items = append(order.Items, domain.OrderItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: totalPrice,
		})
	}
	order.TotalAmount = total

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.Int("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)),
	)

	// Reload so item product names are resolved.
	return s.Get(ctx, order.ID)
}

func (s *Service) Update(ctx context.Context, id int, req domain.UpdateRequest) (*domain.Response, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.CustomerEmail != nil {
		order.CustomerEmail = *req.CustomerEmail
	}
	if req.CustomerAddress != nil {
		order.CustomerAddress = *req.CustomerAddress
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	order.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, order); err != nil {
		return nil, err
	}

	resp := toResponse(order)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if order == nil {
		return domain.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("order deleted", zap.Int("order_id", id))
	return nil
}

func toResponse(o *domain.Order) domain.Response {
	items := make([]domain.ItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, domain.ItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	return domain.Response{
		ID:              o.ID,
		CustomerName:    o.CustomerName,
		CustomerEmail:   o.CustomerEmail,
		CustomerAddress: o.CustomerAddress,
		OrderDate:       o.OrderDate,
		Status:          o.Status,
		TotalAmount:     o.TotalAmount,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		OrderItems:      items,
	}
}
