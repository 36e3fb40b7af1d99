package service

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/smallretail/legacy-api/internal/assistant/domain"
	"github.com/smallretail/legacy-api/internal/assistant/tools"
	"github.com/smallretail/legacy-api/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const systemPrompt = "You are a helpful assistant that can help manage products and orders. " +
	"Use the available functions to help the user."

// maxToolRounds bounds the tool-call loop so a confused model cannot spin
// until the request deadline.
const maxToolRounds = 8

type Params struct {
	fx.In

	Cfg      config.Config
	Log      *zap.Logger
	Registry *tools.Registry
}

type Service struct {
	client   *openai.Client
	model    string
	log      *zap.Logger
	registry *tools.Registry
}

func New(p Params) domain.Service {
	var client *openai.Client
	if p.Cfg.OpenAIAPIKey != "" {
		clientCfg := openai.DefaultConfig(p.Cfg.OpenAIAPIKey)
		if p.Cfg.OpenAIBaseURL != "" {
			clientCfg.BaseURL = p.Cfg.OpenAIBaseURL
		}
		client = openai.NewClientWithConfig(clientCfg)
	}

	return &Service{
		client:   client,
		model:    p.Cfg.OpenAIModel,
		log:      p.Log.Named("assistant.service"),
		registry: p.Registry,
	}
}

func (s *Service) Chat(ctx context.Context, req domain.Request) (string, error) {
	if s.client == nil {
		return "", domain.ErrNotConfigured
	}

	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}
	for _, m := range req.History {
		role := openai.ChatMessageRoleUser
		if strings.EqualFold(m.Role, "assistant") {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Message,
	})

	toolDefs := s.toolDefinitions()

	for round := 0; round < maxToolRounds; round++ {
		resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:    s.model,
			Messages: messages,
			Tools:    toolDefs,
		})
		if err != nil {
			return "", fmt.Errorf("chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("chat completion returned no choices")
		}

		choice := resp.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			return choice.Content, nil
		}

		messages = append(messages, choice)
		for _, call := range choice.ToolCalls {
			result := s.registry.Invoke(ctx, call.Function.Name, call.Function.Arguments)
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				ToolCallID: call.ID,
				Content:    result,
			})
		}
	}

	return "", fmt.Errorf("tool call limit of %d rounds exceeded", maxToolRounds)
}

func (s *Service) toolDefinitions() []openai.Tool {
	registered := s.registry.All()
	defs := make([]openai.Tool, 0, len(registered))
	for _, t := range registered {
		defs = append(defs, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return defs
}
