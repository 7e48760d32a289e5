// Package ai defines the text-generation capability the screening core
// depends on. Each provider is an adapter implementing Generator; the core
// never sees provider-specific chat shapes.
package ai

import (
	"context"
	"fmt"
	"strings"
)

// Chat history roles. Adapters normalize these to whatever the provider
// calls the equivalent turn (Gemini names the assistant turn "model").
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry of a conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generator produces a completion for the newest message given the running
// history. Implementations must be safe for sequential reuse within one
// conversation; the caller serializes turns.
type Generator interface {
	Generate(ctx context.Context, history []Message, message string) (string, error)
	Model() string
}

// ProviderConsoles maps provider names to the console where an API key can be
// obtained, used in the not-configured message.
var ProviderConsoles = map[string]string{
	"openai": "https://platform.openai.com/api-keys",
	"gemini": "https://aistudio.google.com/app/apikey",
	"groq":   "https://console.groq.com/keys",
}

// NotConfiguredMessage is the fixed, provider-named instructional text shown
// when no usable credential exists. It does not terminate the conversation.
func NotConfiguredMessage(provider string) string {
	provider = strings.ToLower(strings.TrimSpace(provider))
	link, ok := ProviderConsoles[provider]
	if !ok {
		link = "the provider's website"
	}

	return fmt.Sprintf(
		"API key not configured. To use this assistant with %s, please provide an API key.\n"+
			"You can get one from %s",
		strings.ToUpper(provider), link,
	)
}
