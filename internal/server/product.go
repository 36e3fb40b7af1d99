package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	productdomain "github.com/smallretail/legacy-api/internal/product/domain"
	"github.com/smallretail/legacy-api/pkg/db/pagination"
)

type productRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stockQuantity"`
	Category      string          `json:"category"`
}

func (s *Server) ListProducts(c *gin.Context) {
	var query pagination.Request
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.List(c.Request.Context(), productdomain.ListRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetProductByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	resp, err := s.productSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.productSvc.Create(c.Request.Context(), productdomain.CreateRequest{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Category:      req.Category,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/products/%d", resp.ID))
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) UpdateProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// PUT replaces the whole resource, so every field is set.
	_, err = s.productSvc.Update(c.Request.Context(), id, productdomain.UpdateRequest{
		Name:          &req.Name,
		Description:   &req.Description,
		Price:         &req.Price,
		StockQuantity: &req.StockQuantity,
		Category:      &req.Category,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) DeleteProduct(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	if err := s.productSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("id"))
}
