package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	orderdomain "github.com/smallretail/legacy-api/internal/order/domain"
	"github.com/smallretail/legacy-api/pkg/db/pagination"
)

type updateOrderRequest struct {
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail"`
	CustomerAddress string             `json:"customerAddress"`
	Status          orderdomain.Status `json:"status"`
}

func (s *Server) ListOrders(c *gin.Context) {
	var query pagination.Request
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.List(c.Request.Context(), orderdomain.ListRequest{
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) GetOrderByID(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	resp, err := s.orderSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (s *Server) CreateOrder(c *gin.Context) {
	var req orderdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.orderSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/orders/%d", resp.ID))
	c.JSON(http.StatusCreated, resp)
}

func (s *Server) UpdateOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	// Only the customer header fields and status change; items and the
	// total amount stay as computed at creation.
	_, err = s.orderSvc.Update(c.Request.Context(), id, orderdomain.UpdateRequest{
		CustomerName:    &req.CustomerName,
		CustomerEmail:   &req.CustomerEmail,
		CustomerAddress: &req.CustomerAddress,
		Status:          &req.Status,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *Server) DeleteOrder(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, ErrNotFound)
		return
	}

	if err := s.orderSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
