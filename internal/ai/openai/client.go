// Package openai adapts the OpenAI chat-completions API to the screening
// generator capability. Groq exposes the same API surface, so the Groq
// adapter is this client pointed at Groq's base URL.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/talentscout/screener/internal/ai"
)

const (
	defaultModel     = "gpt-4o-mini"
	defaultGroqModel = "llama-3.3-70b-versatile"

	groqBaseURL = "https://api.groq.com/openai/v1"

	temperature = 0.7
	maxTokens   = 1024
)

// Generator implements ai.Generator using the official openai-go SDK.
type Generator struct {
	client openai.Client
	model  string
}

// New creates a Generator for the OpenAI API.
func New(apiKey, model string) (*Generator, error) {
	return newGenerator(apiKey, model, defaultModel, nil)
}

// NewGroq creates a Generator for Groq's OpenAI-compatible API.
func NewGroq(apiKey, model string) (*Generator, error) {
	return newGenerator(apiKey, model, defaultGroqModel, []option.RequestOption{
		option.WithBaseURL(groqBaseURL),
	})
}

func newGenerator(apiKey, model, fallbackModel string, extra []option.RequestOption) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}

	if model = strings.TrimSpace(model); model == "" {
		model = fallbackModel
	}

	opts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, extra...)

	return &Generator{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Generate sends the history plus the newest user message and returns the
// first completion choice.
func (g *Generator) Generate(ctx context.Context, history []ai.Message, message string) (string, error) {
	if message = strings.TrimSpace(message); message == "" {
		return "", errors.New("message must not be empty")
	}

	msgs := toChatMessages(history)
	msgs = append(msgs, openai.UserMessage(message))

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(g.model),
		Messages:    msgs,
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	output := strings.TrimSpace(resp.Choices[0].Message.Content)
	if output == "" {
		return "", errors.New("chat completion returned empty content")
	}
	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// toChatMessages maps the neutral history onto the SDK's role-specific
// message constructors.
func toChatMessages(history []ai.Message) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, h := range history {
		if strings.TrimSpace(h.Content) == "" {
			continue
		}
		switch h.Role {
		case ai.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(h.Content))
		case ai.RoleAssistant:
			msgs = append(msgs, openai.ChatCompletionMessageParamOfAssistant(h.Content))
		default:
			msgs = append(msgs, openai.UserMessage(h.Content))
		}
	}
	return msgs
}
