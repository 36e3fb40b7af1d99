package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// Tool is one callable function exposed to the model.
type Tool struct {
	Name        string
	Description string
	// Parameters is the JSON schema of the arguments object.
	Parameters map[string]any
	Run        func(ctx context.Context, args json.RawMessage) (string, error)
}

// Registry holds the tools bound to this request's services. Built per
// injection, no shared globals.
type Registry struct {
	tools  []Tool
	byName map[string]Tool
	log    *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	return &Registry{
		byName: map[string]Tool{},
		log:    log.Named("assistant.tools"),
	}
}

func (r *Registry) Register(t Tool) {
	r.tools = append(r.tools, t)
	r.byName[t.Name] = t
}

func (r *Registry) All() []Tool {
	return r.tools
}

// Invoke runs a named tool. Failures come back as descriptive strings so the
// model can relay them; every invocation gets a span and a log line.
func (r *Registry) Invoke(ctx context.Context, name, args string) string {
	tool, ok := r.byName[name]
	if !ok {
		return fmt.Sprintf("Unknown function: %s", name)
	}

	tracer := otel.Tracer("legacy-api/assistant")
	ctx, span := tracer.Start(ctx, "tool."+name)
	defer span.End()
	span.SetAttributes(
		attribute.String("tool.name", name),
		attribute.String("tool.arguments", preview(args)),
	)

	r.log.Info("invoking tool",
		zap.String("tool", name),
		zap.String("arguments", preview(args)),
	)

	result, err := tool.Run(ctx, json.RawMessage(args))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		r.log.Warn("tool failed", zap.String("tool", name), zap.Error(err))
		return fmt.Sprintf("Error executing %s: %s", name, err.Error())
	}

	span.SetAttributes(attribute.String("tool.result_preview", preview(result)))
	r.log.Info("tool completed",
		zap.String("tool", name),
		zap.String("result", preview(result)),
	)
	return result
}

func preview(s string) string {
	const max = 200
	if len(s) <= max {
		return s
	}
	// Back up to a rune boundary so the cut never splits a UTF-8 sequence.
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
