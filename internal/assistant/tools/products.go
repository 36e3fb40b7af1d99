package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	productdomain "github.com/smallretail/legacy-api/internal/product/domain"
)

// RegisterProductTools binds the product catalog operations.
func RegisterProductTools(r *Registry, svc productdomain.Service) {
	r.Register(Tool{
		Name:        "get_products",
		Description: "Get products from the catalog with pagination",
		Parameters: objectSchema(map[string]any{
			"page":     intProp("Page number (default: 1)"),
			"pageSize": intProp("Number of products per page (default: 10, max: 100)"),
		}),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				Page     int `json:"page"`
				PageSize int `json:"pageSize"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}
			result, err := svc.List(ctx, productdomain.ListRequest{Page: req.Page, PageSize: req.PageSize})
			if err != nil {
				return "", err
			}
			return marshal(result)
		},
	})

	r.Register(Tool{
		Name:        "get_product_by_id",
		Description: "Get a product by its ID",
		Parameters: objectSchema(map[string]any{
			"productId": intProp("The ID of the product"),
		}, "productId"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				ProductID int `json:"productId"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}
			result, err := svc.Get(ctx, req.ProductID)
			if errors.Is(err, productdomain.ErrNotFound) {
				return fmt.Sprintf("Product with ID %d not found.", req.ProductID), nil
			}
			if err != nil {
				return "", err
			}
			return marshal(result)
		},
	})

	r.Register(Tool{
		Name:        "create_product",
		Description: "Create a new product in the catalog",
		Parameters: objectSchema(map[string]any{
			"name":          stringProp("Product name"),
			"description":   stringProp("Product description"),
			"price":         numberProp("Product price"),
			"stockQuantity": intProp("Stock quantity"),
			"category":      stringProp("Product category"),
		}, "name", "price", "category"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req productdomain.CreateRequest
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}
			result, err := svc.Create(ctx, req)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Product created successfully with ID: %d", result.ID), nil
		},
	})

	r.Register(Tool{
		Name:        "update_product",
		Description: "Update an existing product. Only the supplied fields are changed.",
		Parameters: objectSchema(map[string]any{
			"productId":     intProp("The ID of the product to update"),
			"name":          stringProp("Product name"),
			"description":   stringProp("Product description"),
			"price":         numberProp("Product price"),
			"stockQuantity": intProp("Stock quantity"),
			"category":      stringProp("Product category"),
		}, "productId"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				ProductID     int              `json:"productId"`
				Name          *string          `json:"name"`
				Description   *string          `json:"description"`
				Price         *decimal.Decimal `json:"price"`
				StockQuantity *int             `json:"stockQuantity"`
				Category      *string          `json:"category"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}
			_, err := svc.Update(ctx, req.ProductID, productdomain.UpdateRequest{
				Name:          req.Name,
				Description:   req.Description,
				Price:         req.Price,
				StockQuantity: req.StockQuantity,
				Category:      req.Category,
			})
			if errors.Is(err, productdomain.ErrNotFound) {
				return fmt.Sprintf("Product with ID %d not found.", req.ProductID), nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Product %d updated successfully.", req.ProductID), nil
		},
	})

	r.Register(Tool{
		Name:        "delete_product",
		Description: "Delete a product by its ID",
		Parameters: objectSchema(map[string]any{
			"productId": intProp("The ID of the product to delete"),
		}, "productId"),
		Run: func(ctx context.Context, args json.RawMessage) (string, error) {
			var req struct {
				ProductID int `json:"productId"`
			}
			if err := json.Unmarshal(args, &req); err != nil {
				return "", err
			}
			err := svc.Delete(ctx, req.ProductID)
			if errors.Is(err, productdomain.ErrNotFound) {
				return fmt.Sprintf("Product with ID %d not found.", req.ProductID), nil
			}
			if errors.Is(err, productdomain.ErrInUse) {
				return fmt.Sprintf("Product %d cannot be deleted because existing orders reference it.", req.ProductID), nil
			}
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Product %d deleted successfully.", req.ProductID), nil
		},
	})
}
