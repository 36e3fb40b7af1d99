package tools

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/smallretail/legacy-api/internal/config"
	orderdomain "github.com/smallretail/legacy-api/internal/order/domain"
	productdomain "github.com/smallretail/legacy-api/internal/product/domain"
	"github.com/smallretail/legacy-api/internal/tempo"
	"github.com/smallretail/legacy-api/pkg/db/pagination"
	"go.uber.org/zap"
)

type productServiceStub struct {
	getResp    *productdomain.Response
	createResp *productdomain.Response
	updateResp *productdomain.Response
	err        error

	lastUpdate productdomain.UpdateRequest
}

func (s *productServiceStub) List(ctx context.Context, req productdomain.ListRequest) (*pagination.Page[productdomain.Response], error) {
	if s.err != nil {
		return nil, s.err
	}
	return pagination.NewPage([]productdomain.Response{}, pagination.Request{Page: req.Page, PageSize: req.PageSize}.Normalize(), 0), nil
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
	createResp *orderdomain.Response
	err        error

	lastCreate orderdomain.CreateRequest
}

func (s *orderServiceStub) List(ctx context.Context, req orderdomain.ListRequest) (*pagination.Page[orderdomain.Response], error) {
	return pagination.NewPage([]orderdomain.Response{}, pagination.Request{Page: req.Page, PageSize: req.PageSize}.Normalize(), 0), s.err
}

func (s *orderServiceStub) Get(ctx context.Context, id int) (*orderdomain.Response, error) {
	return nil, s.err
}

func (s *orderServiceStub) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Response, error) {
	s.lastCreate = req
	return s.createResp, s.err
}

func (s *orderServiceStub) Update(ctx context.Context, id int, req orderdomain.UpdateRequest) (*orderdomain.Response, error) {
	return nil, s.err
}

func (s *orderServiceStub) Delete(ctx context.Context, id int) error {
	return s.err
}

func productRegistry(t *testing.T, svc productdomain.Service) *Registry {
	t.Helper()
	r := NewRegistry(zap.NewNop())
	RegisterProductTools(r, svc)
	return r
}

func TestInvokeUnknownTool(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	result := r.Invoke(context.Background(), "does_not_exist", "{}")
	if result != "Unknown function: does_not_exist" {
		t.Fatalf("unexpected result: %q", result)
	}
}

func TestInvokeErrorBecomesString(t *testing.T) {
	stub := &productServiceStub{err: errors.New("db down")}
	r := productRegistry(t, stub)

	result := r.Invoke(context.Background(), "get_products", "{}")
	if !strings.Contains(result, "Error executing get_products") || !strings.Contains(result, "db down") {
		t.Fatalf("unexpected result: %q", result)
	}
}

func TestGetProductByIDNotFound(t *testing.T) {
	stub := &productServiceStub{err: productdomain.ErrNotFound}
	r := productRegistry(t, stub)

	result := r.Invoke(context.Background(), "get_product_by_id", `{"productId":42}`)
	if result != "Product with ID 42 not found." {
		t.Fatalf("unexpected result: %q", result)
	}
}

func TestCreateProductReportsID(t *testing.T) {
	stub := &productServiceStub{createResp: &productdomain.Response{ID: 7}}
	r := productRegistry(t, stub)

	result := r.Invoke(context.Background(), "create_product", `{"name":"Widget","price":9.99,"category":"Electronics"}`)
	if result != "Product created successfully with ID: 7" {
		t.Fatalf("unexpected result: %q", result)
	}
}

func TestUpdateProductOnlyTouchesSuppliedFields(t *testing.T) {
	stub := &productServiceStub{updateResp: &productdomain.Response{ID: 7}}
	r := productRegistry(t, stub)

	result := r.Invoke(context.Background(), "update_product", `{"productId":7,"price":19.50}`)
	if result != "Product 7 updated successfully." {
		t.Fatalf("unexpected result: %q", result)
	}

	req := stub.lastUpdate
	if req.Price == nil {
		t.Fatal("supplied price must be set")
	}
	if req.Name != nil || req.Description != nil || req.StockQuantity != nil || req.Category != nil {
		t.Fatalf("omitted fields must stay nil: %+v", req)
	}
}

func TestDeleteProductInUse(t *testing.T) {
	stub := &productServiceStub{err: productdomain.ErrInUse}
	r := productRegistry(t, stub)

	result := r.Invoke(context.Background(), "delete_product", `{"productId":7}`)
	if result != "Product 7 cannot be deleted because existing orders reference it." {
		t.Fatalf("unexpected result: %q", result)
	}
}

func TestCreateOrderParsesStatusName(t *testing.T) {
	stub := &orderServiceStub{createResp: &orderdomain.Response{ID: 3}}
	r := NewRegistry(zap.NewNop())
	RegisterOrderTools(r, stub)

	result := r.Invoke(context.Background(), "create_order", `{"customerName":"Jane Doe","customerEmail":"jane@example.com","customerAddress":"1 Main St","status":"shipped"}`)
	if !strings.Contains(result, "add order items separately") {
		t.Fatalf("unexpected result: %q", result)
	}
	if stub.lastCreate.Status != orderdomain.StatusShipped {
		t.Fatalf("expected shipped status, got %v", stub.lastCreate.Status)
	}
}

func TestGetTracesSummaryByMethod(t *testing.T) {
	// Tempo stand-in answering the per-method count queries.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		switch {
		case strings.Contains(q, `"GET"`):
			w.Write([]byte(`{"traces":[{"traceID":"a"},{"traceID":"b"}]}`))
		case strings.Contains(q, `"DELETE"`):
			w.Write([]byte(`{"traces":[{"traceID":"c"}]}`))
		default:
			w.Write([]byte(`{"traces":[]}`))
		}
	}))
	defer server.Close()

	client := tempo.New(config.Config{TempoBaseURL: server.URL}, zap.NewNop())
	r := NewRegistry(zap.NewNop())
	RegisterTempoTools(r, client)

	result := r.Invoke(context.Background(), "get_traces_summary_by_method", "{}")

	var summary struct {
		TimeRange    string         `json:"timeRange"`
		MethodCounts map[string]int `json:"methodCounts"`
		TotalTraces  int            `json:"totalTraces"`
	}
	if err := json.Unmarshal([]byte(result), &summary); err != nil {
		t.Fatalf("result must be JSON: %v (%q)", err, result)
	}
	if summary.TotalTraces != 3 {
		t.Fatalf("expected 3 total traces, got %d", summary.TotalTraces)
	}
	if summary.MethodCounts["GET"] != 2 || summary.MethodCounts["DELETE"] != 1 {
		t.Fatalf("unexpected method counts: %+v", summary.MethodCounts)
	}
	for _, method := range []string{"GET", "POST", "PUT", "DELETE", "PATCH"} {
		if _, ok := summary.MethodCounts[method]; !ok {
			t.Fatalf("missing count for %s: %+v", method, summary.MethodCounts)
		}
	}
	if !strings.Contains(summary.TimeRange, " to ") {
		t.Fatalf("unexpected time range %q", summary.TimeRange)
	}
}

func TestPreviewKeepsRuneBoundary(t *testing.T) {
	// 199 ASCII bytes followed by a three-byte rune straddling the cut.
	long := strings.Repeat("a", 199) + "日本語"

	got := preview(long)
	if !utf8.ValidString(got) {
		t.Fatalf("preview produced invalid UTF-8: %q", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncation marker, got %q", got)
	}
	if got != strings.Repeat("a", 199)+"..." {
		t.Fatalf("expected cut before the split rune, got %q", got)
	}

	short := "日本語"
	if preview(short) != short {
		t.Fatalf("short input must pass through, got %q", preview(short))
	}
}

func TestGetProductsReturnsJSON(t *testing.T) {
	stub := &productServiceStub{}
	r := productRegistry(t, stub)

	result := r.Invoke(context.Background(), "get_products", `{"page":1,"pageSize":10}`)

	var page map[string]any
	if err := json.Unmarshal([]byte(result), &page); err != nil {
		t.Fatalf("result must be JSON: %v (%q)", err, result)
	}
	if _, ok := page["items"]; !ok {
		t.Fatalf("expected paged envelope, got %q", result)
	}
}
