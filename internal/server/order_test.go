package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	orderdomain "github.com/smallretail/legacy-api/internal/order/domain"
)

func TestCreateOrderSetsLocation(t *testing.T) {
	stub := &orderServiceStub{
		createResp: &orderdomain.Response{
			ID:           3,
			CustomerName: "Jane Doe",
			Status:       orderdomain.StatusPending,
			TotalAmount:  samplePrice("29.97"),
			OrderItems: []orderdomain.ItemResponse{
				{ID: 1, ProductID: 5, ProductName: "Widget", Quantity: 3, UnitPrice: samplePrice("9.99"), TotalPrice: samplePrice("29.97")},
			},
		},
	}
	srv := newTestServer(t, nil, stub, nil)

	rec := perform(srv, http.MethodPost, "/api/orders", `{"customerName":"Jane Doe","customerEmail":"jane@example.com","customerAddress":"1 Main St","orderItems":[{"productId":5,"quantity":3,"unitPrice":9.99}]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/orders/3" {
		t.Fatalf("expected Location /api/orders/3, got %q", loc)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	// Status serializes as its ordinal value.
	if body["status"].(float64) != 0 {
		t.Fatalf("expected status 0, got %v", body["status"])
	}
	items, ok := body["orderItems"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected one order item, got %v", body["orderItems"])
	}
}

func TestGetOrderNotFound(t *testing.T) {
	stub := &orderServiceStub{err: orderdomain.ErrNotFound}
	srv := newTestServer(t, nil, stub, nil)

	rec := perform(srv, http.MethodGet, "/api/orders/42", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUpdateOrderNoContent(t *testing.T) {
	stub := &orderServiceStub{updateResp: &orderdomain.Response{ID: 3}}
	srv := newTestServer(t, nil, stub, nil)

	rec := perform(srv, http.MethodPut, "/api/orders/3", `{"customerName":"John Smith","customerEmail":"john@example.com","customerAddress":"2 Side St","status":2}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestDeleteOrderNoContent(t *testing.T) {
	srv := newTestServer(t, nil, &orderServiceStub{}, nil)

	rec := perform(srv, http.MethodDelete, "/api/orders/3", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestChatSuccess(t *testing.T) {
	srv := newTestServer(t, nil, nil, &assistantServiceStub{reply: "You have 3 orders."})

	rec := perform(srv, http.MethodPost, "/api/chat", `{"message":"how many orders?"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["response"] != "You have 3 orders." {
		t.Fatalf("unexpected response: %q", body["response"])
	}
}

func TestChatFailureReturnsProblem(t *testing.T) {
	srv := newTestServer(t, nil, nil, &assistantServiceStub{err: errors.New("upstream unavailable")})

	rec := perform(srv, http.MethodPost, "/api/chat", `{"message":"hi"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["detail"] != "upstream unavailable" {
		t.Fatalf("expected detail in problem body, got %v", body)
	}
	if body["status"].(float64) != http.StatusInternalServerError {
		t.Fatalf("expected status 500 in body, got %v", body["status"])
	}
}
