// Package gemini adapts the Google GenAI API to the screening generator
// capability.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/util"
)

const (
	defaultModel = "gemini-1.5-flash"

	retryDelay = 2 * time.Second
	// Quota errors advertising a longer delay than this are not worth
	// blocking a live conversation for.
	maxQuotaDelay = 30 * time.Second
)

var wait = util.WaitFor

var retryAfterRe = regexp.MustCompile(`retry after (\d+) seconds`)

// chatSession is the slice of *genai.Chat the generator uses.
type chatSession interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// chatCreator is the slice of genai.Chats the generator uses, kept as an
// interface so tests can stub the API.
type chatCreator interface {
	Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error)
}

type genaiChats struct {
	client *genai.Client
}

func (g genaiChats) Create(ctx context.Context, model string, config *genai.GenerateContentConfig, history []*genai.Content) (chatSession, error) {
	return g.client.Chats.Create(ctx, model, config, history)
}

// Generator implements ai.Generator on top of the Gemini API.
type Generator struct {
	chats      chatCreator
	model      string
	maxRetries int
	logger     *zap.Logger
}

// New creates a Generator configured for the Gemini API backend.
func New(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{
		chats:      genaiChats{client: client},
		model:      model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// Generate sends the newest message with the running history to Gemini and
// returns the first textual response. The history's system entry becomes the
// system instruction; assistant entries are renamed to Gemini's "model" role.
func (g *Generator) Generate(ctx context.Context, history []ai.Message, message string) (string, error) {
	if g == nil || g.chats == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	if message = strings.TrimSpace(message); message == "" {
		return "", errors.New("message must not be empty")
	}

	system, contents := splitHistory(history)

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{
				Parts: []*genai.Part{{Text: system}},
			},
		}
	}

	var lastErr error
	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		chat, err := g.chats.Create(ctx, g.model, config, contents)
		if err != nil {
			return "", fmt.Errorf("create chat session: %w", err)
		}

		resp, err := chat.SendMessage(ctx, genai.Part{Text: message})
		if err == nil {
			output := collectText(resp)
			if output == "" {
				return "", errors.New("gemini api returned empty response")
			}
			return output, nil
		}

		lastErr = err
		if !retryable(err) {
			break
		}

		g.logger.Debug("retrying gemini call",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < g.maxRetries {
			if err := wait(ctx, retryDelay); err != nil {
				return "", fmt.Errorf("generate content: %w", err)
			}
		}
	}

	return "", fmt.Errorf("generate content: %w", lastErr)
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}

// splitHistory separates the system entry from the chat turns and converts
// the rest into Gemini contents.
func splitHistory(history []ai.Message) (string, []*genai.Content) {
	var system strings.Builder
	contents := make([]*genai.Content, 0, len(history))

	for _, msg := range history {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}

		switch msg.Role {
		case ai.RoleSystem:
			if system.Len() > 0 {
				system.WriteString("\n")
			}
			system.WriteString(msg.Content)
		case ai.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleModel,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  genai.RoleUser,
				Parts: []*genai.Part{{Text: msg.Content}},
			})
		}
	}

	return system.String(), contents
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	return strings.TrimSpace(builder.String())
}

// retryable reports whether the error is a transient API failure worth
// another attempt within the same turn.
func retryable(err error) bool {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return false
	}

	if apiErr.Code == 429 {
		if delay, ok := advertisedDelay(apiErr); ok && delay > maxQuotaDelay {
			return false
		}
		return true
	}

	return apiErr.Code >= 500 && apiErr.Code < 600
}

// retryInfo is the RetryInfo detail attached to quota errors.
type retryInfo struct {
	Type       string `mapstructure:"@type"`
	RetryDelay string `mapstructure:"retryDelay"`
}

// advertisedDelay extracts the delay the API asks clients to wait before
// retrying, preferring the structured RetryInfo detail over the error text.
func advertisedDelay(apiErr genai.APIError) (time.Duration, bool) {
	for _, detail := range apiErr.Details {
		var info retryInfo
		if err := mapstructure.Decode(detail, &info); err != nil {
			continue
		}
		if !strings.HasSuffix(info.Type, "RetryInfo") || info.RetryDelay == "" {
			continue
		}
		if delay, err := time.ParseDuration(info.RetryDelay); err == nil {
			return delay, true
		}
	}

	m := retryAfterRe.FindStringSubmatch(strings.ToLower(apiErr.Message))
	if m == nil {
		return 0, false
	}
	seconds, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}
