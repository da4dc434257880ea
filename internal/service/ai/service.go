// Package ai wraps the configured chat-completion provider behind a
// single Complete call.
package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"sanachat/internal/config"
	"sanachat/internal/models"
)

// completionTemperature is fixed for every request.
const completionTemperature float32 = 0.7

// Service holds the chat model for the active provider.
type Service struct {
	chatModel model.BaseChatModel
}

// NewService builds the chat model selected by config. The default
// provider is the OpenAI-compatible endpoint pointed at Groq.
func NewService(ctx context.Context, cfg *config.Config) (*Service, error) {
	prov, err := cfg.Provider()
	if err != nil {
		return nil, err
	}
	if prov.APIKey == "" {
		return nil, fmt.Errorf("no API key configured for provider %s (set %s)", cfg.BasicConfig.Provider, config.APIKeyEnv)
	}

	temperature := completionTemperature
	var chatModel model.BaseChatModel

	switch cfg.BasicConfig.Provider {
	case "openai":
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			BaseURL:     prov.BaseURL,
			Model:       prov.Model,
			APIKey:      prov.APIKey,
			Temperature: &temperature,
		})
	case "claude":
		var baseURLPtr *string
		if prov.BaseURL != "" {
			baseURLPtr = &prov.BaseURL
		}
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:      prov.APIKey,
			Model:       prov.Model,
			BaseURL:     baseURLPtr,
			MaxTokens:   3000,
			Temperature: &temperature,
		})
	case "gemini":
		var client *genai.Client
		client, err = genai.NewClient(ctx, &genai.ClientConfig{APIKey: prov.APIKey})
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
			Client: client,
			Model:  prov.Model,
		})
	default:
		return nil, fmt.Errorf("invalid provider: %s", cfg.BasicConfig.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s chat model: %w", cfg.BasicConfig.Provider, err)
	}

	return &Service{chatModel: chatModel}, nil
}

// Complete sends the full transcript to the provider and returns the
// trimmed assistant reply.
func (s *Service) Complete(ctx context.Context, transcript []models.Message) (string, error) {
	out, err := s.chatModel.Generate(ctx, convertMessages(transcript))
	if err != nil {
		return "", fmt.Errorf("generate completion: %w", err)
	}
	return strings.TrimSpace(out.Content), nil
}

func convertMessages(transcript []models.Message) []*schema.Message {
	messages := make([]*schema.Message, 0, len(transcript))
	for _, msg := range transcript {
		var role schema.RoleType
		switch msg.Role {
		case models.RoleSystem:
			role = schema.System
		case models.RoleAssistant:
			role = schema.Assistant
		case models.RoleUser:
			role = schema.User
		default:
			role = schema.User
		}
		messages = append(messages, &schema.Message{
			Role:    role,
			Content: msg.Content,
		})
	}
	return messages
}
