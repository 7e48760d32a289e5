// Package interview drives a single screening conversation: it feeds
// candidate messages through extraction, wraps them with collection
// context for the model, and enforces the screening flow on every
// generated reply so the conversation cannot end early.
package interview

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/talentscout/screener/internal/ai"
	"github.com/talentscout/screener/internal/candidate"
	"github.com/talentscout/screener/internal/extract"
	"github.com/talentscout/screener/internal/phase"
	"github.com/talentscout/screener/internal/util"
	"github.com/talentscout/screener/internal/validate"
)

// Session is a single candidate screening conversation. Methods are safe
// for concurrent use; turns are processed one at a time.
type Session struct {
	mu        sync.Mutex
	cfg       *Config
	generator ai.Generator
	logger    *zap.Logger

	record     candidate.Record
	history    []ai.Message
	terminated bool
}

func New(cfg *Config, generator ai.Generator, logger *zap.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.normalize()

	return &Session{
		cfg:       cfg,
		generator: generator,
		logger:    logger,
		history: []ai.Message{
			{Role: ai.RoleSystem, Content: systemPrompt},
		},
	}
}

// Start produces the opening greeting that asks for all required
// candidate details at once. When generation fails the fixed greeting
// is used so the screening can still begin.
func (s *Session) Start(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.GeneratorTimeout)
	defer cancel()

	reply, err := s.generator.Generate(ctx, s.history, greetingPrompt)
	if err != nil {
		s.logger.Warn("greeting generation failed, using fallback", zap.Error(err))
		s.history = append(s.history, ai.Message{Role: ai.RoleAssistant, Content: fallbackGreeting})
		return fallbackGreeting
	}

	s.history = append(s.history,
		ai.Message{Role: ai.RoleUser, Content: greetingPrompt},
		ai.Message{Role: ai.RoleAssistant, Content: reply},
	)
	return reply
}

// Process handles one candidate turn and returns the assistant's reply
// along with whether the conversation has ended.
//
// Exit keywords are honored before anything else and skip extraction
// entirely. Otherwise the message updates the candidate record, the
// model generates a reply, and an enforcement pass rewrites any reply
// that tries to close the screening before all fields are collected and
// the minimum number of technical questions has been asked.
func (s *Session) Process(ctx context.Context, message string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.terminated {
		return closingMessage(&s.record), true
	}

	message = validate.Sanitize(message)

	if s.hasExitKeyword(message) {
		s.terminated = true
		reply := closingMessage(&s.record)
		s.appendTurn(message, reply)
		s.logger.Info("conversation ended by candidate",
			zap.Int("technical_questions_asked", s.record.TechQuestionsAsked))
		return reply, true
	}

	s.record = extract.Apply(message, s.record)
	s.logger.Debug("extracted candidate info",
		zap.Strings("missing_fields", s.record.Missing()))

	payload := buildContextPayload(message, &s.record)

	genCtx, cancel := context.WithTimeout(ctx, s.cfg.GeneratorTimeout)
	defer cancel()

	reply, err := s.generator.Generate(genCtx, s.history, payload)
	if err != nil {
		s.logger.Warn("reply generation failed",
			zap.String("message", util.TruncateForLog(message, 80)), zap.Error(err))
		s.appendTurn(payload, apologyResponse)
		return apologyResponse, false
	}

	reply = s.enforce(reply)
	s.appendTurn(payload, reply)

	return reply, s.terminated
}

// enforce rewrites a generated reply when it breaks the screening flow.
// A closing reply is only allowed through once the record is complete
// and enough technical questions have been asked; any earlier attempt is
// replaced with the next step the screening actually needs. Well-behaved
// technical replies advance the question counter.
func (s *Session) enforce(reply string) string {
	missing := s.record.Missing()

	if s.isClosing(reply) {
		current := phase.Classify(&s.record, s.cfg.MinTechnicalQuestions)
		switch {
		case current == phase.ReadyToClose:
			s.terminated = true
			s.logger.Info("screening complete",
				zap.Int("technical_questions_asked", s.record.TechQuestionsAsked))
		case len(missing) > 0:
			s.logger.Debug("intercepted premature close",
				zap.Strings("missing_fields", missing))
			reply = missingFieldQuestion(&s.record, missing)
		case !s.record.TechPhaseStarted:
			s.logger.Debug("intercepted premature close, starting technical questions")
			s.record.TechPhaseStarted = true
			s.record.TechQuestionsAsked = 1
			reply = firstTechnicalQuestion(&s.record)
		default:
			s.record.TechQuestionsAsked++
			s.logger.Debug("intercepted premature close, asking next technical question",
				zap.Int("question", s.record.TechQuestionsAsked))
			reply = nextTechnicalQuestion(s.record.TechQuestionsAsked, s.record.TechStack)
		}
		return reply
	}

	if len(missing) == 0 && s.record.TechStack != "" {
		if !s.record.TechPhaseStarted {
			s.record.TechPhaseStarted = true
			s.record.TechQuestionsAsked = 1
		} else if s.record.TechQuestionsAsked < s.cfg.MinTechnicalQuestions {
			s.record.TechQuestionsAsked++
		}
	}
	return reply
}

func (s *Session) appendTurn(userContent, assistantContent string) {
	s.history = append(s.history,
		ai.Message{Role: ai.RoleUser, Content: userContent},
		ai.Message{Role: ai.RoleAssistant, Content: assistantContent},
	)
	// Keep the system entry, drop the oldest turns past the cap.
	if over := len(s.history) - s.cfg.MaxHistoryLength; over > 0 {
		s.history = append(s.history[:1], s.history[1+over:]...)
	}
}

func (s *Session) hasExitKeyword(message string) bool {
	message = strings.ToLower(strings.TrimSpace(message))
	for _, keyword := range s.cfg.ExitKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

func (s *Session) isClosing(reply string) bool {
	reply = strings.ToLower(reply)
	for _, marker := range s.cfg.ClosingMarkers {
		if strings.Contains(reply, marker) {
			return true
		}
	}
	return false
}

// Record returns a copy of the candidate record collected so far.
func (s *Session) Record() candidate.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record.Clone()
}

// History returns a copy of the conversation history, including the
// system instruction and context-wrapped candidate messages.
func (s *Session) History() []ai.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ai.Message, len(s.history))
	copy(out, s.history)
	return out
}

// Phase reports the current screening phase.
func (s *Session) Phase() phase.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminated {
		return phase.Terminated
	}
	return phase.Classify(&s.record, s.cfg.MinTechnicalQuestions)
}

// Terminated reports whether the conversation has ended.
func (s *Session) Terminated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terminated
}
