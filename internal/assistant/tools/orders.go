package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	orderdomain "github.com/smallretail/legacy-api/internal/order/domain"
)

// RegisterOrderTools binds the order management operations.
func RegisterOrderTools(r *Registry, svc orderdomain.Service) {
	r.Register(Tool{
		Name:        "get_orders",
		Description: "Get orders from the system with pagination",
		Parameters: objectSchema(map[string]any{
			"page":     intProp("Page number (1-based)"),
			"pageSize": intProp("Number of orders per page"),
		}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				Page     int `json:"page"`
				PageSize int `json:"pageSize"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}
			result, err := svc.List(ctx, orderdomain.ListRequest{Page: req.Page, PageSize: req.PageSize})
			if err != nil {
				return "", err
			}
			return marshal(result)
		},
	})

	r.Register(Tool{
		Name:        "get_order_by_id",
		Description: "Get an order by its ID",
		Parameters: objectSchema(map[string]any{
			"orderId": intProp("The ID of the order"),
		}, "orderId"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				OrderID int `json:"orderId"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}
			result, err := svc.Get(ctx, req.OrderID)
			if errors.Is(err, orderdomain.ErrNotFound) {
				return fmt.Sprintf("Order with ID %d not found.", req.OrderID), nil
			}
			if err != nil {
				return "", err
			}
			return marshal(result)
		},
	})

	r.Register(Tool{
		Name:        "create_order",
		Description: "Create a new order with customer details. Order items are added separately.",
		Parameters: objectSchema(map[string]any{
			"customerName":    stringProp("Customer name"),
			"customerEmail":   stringProp("Customer email"),
			"customerAddress": stringProp("Customer address"),
			"status":          stringProp("Order status (Pending, Processing, Shipped, Delivered, Cancelled)"),
		}, "customerName", "customerEmail", "customerAddress"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				CustomerName    string `json:"customerName"`
				CustomerEmail   string `json:"customerEmail"`
				CustomerAddress string `json:"customerAddress"`
				Status          string `json:"status"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}

			status := orderdomain.StatusPending
			if strings.TrimSpace(req.Status) != "" {
				parsed, err := orderdomain.ParseStatus(req.Status)
				if err != nil {
					return "", err
				}
				status = parsed
			}

			result, err := svc.Create(ctx, orderdomain.CreateRequest{
				CustomerName:    req.CustomerName,
				CustomerEmail:   req.CustomerEmail,
				CustomerAddress: req.CustomerAddress,
				Status:          status,
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Order created successfully with ID: %d. Note: you need to add order items separately.", result.ID), nil
		},
	})

	r.Register(Tool{
		Name:        "update_order",
		Description: "Update an existing order. Only the supplied fields are changed.",
		Parameters: objectSchema(map[string]any{
			"orderId":         intProp("The ID of the order to update"),
			"customerName":    stringProp("Customer name"),
			"customerEmail":   stringProp("Customer email"),
			"customerAddress": stringProp("Customer address"),
			"status":          stringProp("Order status (Pending, Processing, Shipped, Delivered, Cancelled)"),
		}, "orderId"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				OrderID         int     `json:"orderId"`
				CustomerName    *string `json:"customerName"`
				CustomerEmail   *string `json:"customerEmail"`
				CustomerAddress *string `json:"customerAddress"`
				Status          *string `json:"status"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}

			update := orderdomain.UpdateRequest{
				CustomerName:    req.CustomerName,
				CustomerEmail:   req.CustomerEmail,
				CustomerAddress: req.CustomerAddress,
			}
			if req.Status != nil {
				parsed, err := orderdomain.ParseStatus(*req.Status)
				if err != nil {
					return "", err
				}
				update.Status = &parsed
			}

			_, err := svc.Update(ctx, req.OrderID, update)
			if errors.Is(err, orderdomain.ErrNotFound) {
				return fmt.Sprintf("Order with ID %d not found.", req.OrderID), nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Order %d updated successfully.", req.OrderID), nil
		},
	})

	r.Register(Tool{
		Name:        "delete_order",
		Description: "Delete an order by its ID",
		Parameters: objectSchema(map[string]any{
			"orderId": intProp("The ID of the order to delete"),
		}, "orderId"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				OrderID int `json:"orderId"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}
			err := svc.Delete(ctx, req.OrderID)
			if errors.Is(err, orderdomain.ErrNotFound) {
				return fmt.Sprintf("Order with ID %d not found.", req.OrderID), nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Order %d deleted successfully.", req.OrderID), nil
		},
	})
}
