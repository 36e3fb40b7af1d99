package domain

import (
	"context"
	"errors"
)

// Message is one prior conversation turn supplied by the caller.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

type Request struct {
	Message string    `json:"message"`
	History []Message `json:"history"`
}

// Service answers a natural-language request, invoking registered tools as
// the model decides.
type Service interface {
	Chat(ctx context.Context, req Request) (string, error)
}

var ErrNotConfigured = errors.New("assistant_not_configured")
