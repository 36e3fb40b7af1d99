package server

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	assistantdomain "github.com/smallretail/legacy-api/internal/assistant/domain"
	"github.com/smallretail/legacy-api/internal/config"
	orderdomain "github.com/smallretail/legacy-api/internal/order/domain"
	productdomain "github.com/smallretail/legacy-api/internal/product/domain"
	"github.com/smallretail/legacy-api/pkg/db/pagination"
)

type productServiceStub struct {
	listResp   *pagination.Page[productdomain.Response]
	getResp    *productdomain.Response
	createResp *productdomain.Response
	updateResp *productdomain.Response
	err        error

	lastUpdate productdomain.UpdateRequest
}

func (s *productServiceStub) List(ctx context.Context, req productdomain.ListRequest) (*pagination.Page[productdomain.Response], error) {
	return s.listResp, s.err
}

func (s *productServiceStub) Get(ctx context.Context, id int) (*productdomain.Response, error) {
	return s.getResp, s.err
}

func (s *productServiceStub) Create(ctx context.Context, req productdomain.CreateRequest) (*productdomain.Response, error) {
	return s.createResp, s.err
}

func (s *productServiceStub) Update(ctx context.Context, id int, req productdomain.UpdateRequest) (*productdomain.Response, error) {
	s.lastUpdate = req
	return s.updateResp, s.err
}

func (s *productServiceStub) Delete(ctx context.Context, id int) error {
	return s.err
}

type orderServiceStub struct {
	listResp   *pagination.Page[orderdomain.Response]
	getResp    *orderdomain.Response
	createResp *orderdomain.Response
	updateResp *orderdomain.Response
	err        error
}

func (s *orderServiceStub) List(ctx context.Context, req orderdomain.ListRequest) (*pagination.Page[orderdomain.Response], error) {
	return s.listResp, s.err
}

func (s *orderServiceStub) Get(ctx context.Context, id int) (*orderdomain.Response, error) {
	return s.getResp, s.err
}

func (s *orderServiceStub) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Response, error) {
	return s.createResp, s.err
}

func (s *orderServiceStub) Update(ctx context.Context, id int, req orderdomain.UpdateRequest) (*orderdomain.Response, error) {
	return s.updateResp, s.err
}

func (s *orderServiceStub) Delete(ctx context.Context, id int) error {
	return s.err
}

type assistantServiceStub struct {
	reply string
	err   error
}

func (s *assistantServiceStub) Chat(ctx context.Context, req assistantdomain.Request) (string, error) {
	return s.reply, s.err
}

func newTestServer(t *testing.T, products productdomain.Service, orders orderdomain.Service, assistant assistantdomain.Service) *Server {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	if products == nil {
		products = &productServiceStub{}
	}
	if orders == nil {
		orders = &orderServiceStub{}
	}
	if assistant == nil {
		assistant = &assistantServiceStub{}
	}

	srv := &Server{
		engine:       engine,
		cfg:          config.Config{ChatTimeout: 5 * time.Second},
		productSvc:   products,
		orderSvc:     orders,
		assistantSvc: assistant,
	}
	srv.registerAPIRoutes()
	return srv
}

func perform(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func samplePrice(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
