package openai

import (
	"testing"

	"github.com/talentscout/screener/internal/ai"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New("  ", "gpt-4o-mini"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewGroq("", ""); err == nil {
		t.Fatal("expected error for missing groq api key")
	}
}

func TestNewDefaultsModel(t *testing.T) {
	g, err := New("key", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.Model() != defaultModel {
		t.Fatalf("unexpected default model: %q", g.Model())
	}

	groq, err := NewGroq("key", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if groq.Model() != defaultGroqModel {
		t.Fatalf("unexpected groq default model: %q", groq.Model())
	}
}

func TestToChatMessages(t *testing.T) {
	history := []ai.Message{
		{Role: ai.RoleSystem, Content: "rules"},
		{Role: ai.RoleUser, Content: "hi"},
		{Role: ai.RoleAssistant, Content: "hello"},
		{Role: ai.RoleUser, Content: "   "},
	}

	msgs := toChatMessages(history)
	if len(msgs) != 3 {
		t.Fatalf("expected blank entries to be dropped, got %d messages", len(msgs))
	}

	if msgs[0].OfSystem == nil {
		t.Fatal("expected first message to be a system message")
	}
	if msgs[1].OfUser == nil {
		t.Fatal("expected second message to be a user message")
	}
	if msgs[2].OfAssistant == nil {
		t.Fatal("expected third message to be an assistant message")
	}
}
