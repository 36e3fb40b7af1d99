package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	assistantdomain "github.com/smallretail/legacy-api/internal/assistant/domain"
	"github.com/smallretail/legacy-api/internal/observability/logger"
	"go.uber.org/zap"
)

type chatRequest struct {
	Message string                    `json:"message"`
	History []assistantdomain.Message `json:"history"`
}

func (s *Server) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.ChatTimeout)
	defer cancel()

	reply, err := s.assistantSvc.Chat(ctx, assistantdomain.Request{
		Message: req.Message,
		History: req.History,
	})
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("chat failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"title":  "An error occurred while processing your request",
			"status": http.StatusInternalServerError,
			"detail": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": reply})
}
