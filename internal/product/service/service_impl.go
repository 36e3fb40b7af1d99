package service

import (
	"context"
	"time"

	"github.com/smallretail/legacy-api/internal/product/domain"
	pkgdb "github.com/smallretail/legacy-api/pkg/db"
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
		log:  p.Log.Named("product.service"),
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
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Response, error) {
	now := time.Now().UTC()
	p := &domain.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, s.db, p); err != nil {
		return nil, err
	}

	s.log.Info("product created", zap.Int("product_id", p.ID))
	resp := toResponse(p)
	return &resp, nil
}

func (s *Service) Update(ctx context.Context, id int, req domain.UpdateRequest) (*domain.Response, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.StockQuantity != nil {
		item.StockQuantity = *req.StockQuantity
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, item); err != nil {
		return nil, err
	}

	resp := toResponse(item)
	return &resp, nil
}

func (s *Service) Delete(ctx context.Context, id int) error {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return domain.ErrNotFound
	}

	if err := s.repo.Delete(ctx, s.db, id); err != nil {
		if pkgdb.IsForeignKeyViolationErr(err) {
			return domain.ErrInUse
		}
		return err
	}

	s.log.Info("product deleted", zap.Int("product_id", id))
	return nil
}

func toResponse(p *domain.Product) domain.Response {
	return domain.Response{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
