package interview

import "time"

const (
	defaultMinTechnicalQuestions = 3
	defaultMaxHistoryLength      = 50
	defaultGeneratorTimeout      = 60 * time.Second
)

// Config holds the tunables of a screening session. Zero values are
// replaced with defaults when the session is created.
type Config struct {
	// ExitKeywords end the conversation as soon as one of them appears
	// in a candidate message, regardless of screening progress.
	ExitKeywords []string
	// ClosingMarkers identify goodbye language in generated replies so
	// a premature close can be intercepted.
	ClosingMarkers []string
	// MinTechnicalQuestions must be asked before the assistant is
	// allowed to close the screening. Clamped to 1..5.
	MinTechnicalQuestions int
	// MaxHistoryLength caps the running conversation history.
	MaxHistoryLength int
	// GeneratorTimeout bounds a single reply generation.
	GeneratorTimeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		ExitKeywords: []string{
			"bye", "goodbye", "exit", "quit", "end", "stop",
			"thank you", "thanks", "done", "finish", "end conversation",
		},
		ClosingMarkers: []string{
			"thank you so much for taking the time",
			"thank you for taking the time",
			"good luck with your application",
			"best of luck with your application",
			"we appreciate your interest",
			"here's what happens next",
			"our recruitment team will review",
			"have a great day",
			"screening is complete",
			"all the information needed",
		},
		MinTechnicalQuestions: defaultMinTechnicalQuestions,
		MaxHistoryLength:      defaultMaxHistoryLength,
		GeneratorTimeout:      defaultGeneratorTimeout,
	}
}

func (c *Config) normalize() {
	def := DefaultConfig()

	if len(c.ExitKeywords) == 0 {
		c.ExitKeywords = def.ExitKeywords
	}
	if len(c.ClosingMarkers) == 0 {
		c.ClosingMarkers = def.ClosingMarkers
	}
	if c.MinTechnicalQuestions < 1 {
		c.MinTechnicalQuestions = defaultMinTechnicalQuestions
	}
	if c.MinTechnicalQuestions > 5 {
		c.MinTechnicalQuestions = 5
	}
	if c.MaxHistoryLength <= 0 {
		c.MaxHistoryLength = defaultMaxHistoryLength
	}
	if c.GeneratorTimeout <= 0 {
		c.GeneratorTimeout = defaultGeneratorTimeout
	}
}
