package posting

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hirehub/voice-agents/internal/extractor"
	"github.com/hirehub/voice-agents/internal/models"
	"github.com/hirehub/voice-agents/internal/prompts"
)

// LLM generates a spoken reply from instructions.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Notifier publishes session events to listeners.
type Notifier interface {
	PublishEvent(ctx context.Context, event any) error
}

const draftFieldCount = 9

// Session drives one recruiter conversation: it greets the first human
// participant, folds each recruiter turn into the posting draft and speaks
// either the assistant's scripted reply or a model continuation.
type Session struct {
	ID   string
	Room string

	assistant *Assistant
	llm       LLM
	notifier  Notifier
	log       *logrus.Entry

	llmTimeout time.Duration

	mu      sync.Mutex
	greeted bool
}

type SessionConfig struct {
	ID         string
	Room       string
	Assistant  *Assistant
	LLM        LLM
	Notifier   Notifier
	Logger     *logrus.Logger
	LLMTimeout time.Duration
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.LLMTimeout <= 0 {
		cfg.LLMTimeout = 20 * time.Second
	}
	return &Session{
		ID:         cfg.ID,
		Room:       cfg.Room,
		assistant:  cfg.Assistant,
		llm:        cfg.LLM,
		notifier:   cfg.Notifier,
		log:        cfg.Logger.WithFields(logrus.Fields{"session_id": cfg.ID, "room": cfg.Room}),
		llmTimeout: cfg.LLMTimeout,
	}
}

// HandleParticipantJoined greets the first human participant. Agent
// participants and repeat joins are ignored.
func (s *Session) HandleParticipantJoined(ctx context.Context, identity string) (string, error) {
	if strings.HasPrefix(identity, "agent-") {
		return "", nil
	}

	s.mu.Lock()
	if s.greeted {
		s.mu.Unlock()
		return "", nil
	}
	s.greeted = true
	s.mu.Unlock()

	s.log.WithField("identity", identity).Info("greeting recruiter")
	return s.generate(ctx, prompts.PostingGreeting)
}

// HandleRecruiterTurn folds one recruiter utterance into the draft and
// returns the reply to speak. Scripted replies (summaries, submission
// results) are spoken verbatim; otherwise the model continues the
// conversation steered by the draft's current state.
func (s *Session) HandleRecruiterTurn(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}

	scripted := s.assistant.ProcessTurn(ctx, text)

	s.publish(ctx, map[string]any{
		"type":       "posting_progress",
		"completion": s.assistant.Completion(),
		"draft":      s.assistant.Draft(),
	})

	if scripted != "" {
		return s.generate(ctx, prompts.SpeakExactly(scripted))
	}
	return s.generate(ctx, s.assistant.ContextInstructions())
}

// Progress maps the draft's completion onto the shared progress shape.
func (s *Session) Progress() models.Progress {
	draft := s.assistant.Draft()
	completion := extractor.Completion(draft)
	return models.Progress{
		Current:    (completion*draftFieldCount + 50) / 100,
		Total:      draftFieldCount,
		Percentage: completion,
		Completed:  completion >= 100,
	}
}

func (s *Session) Draft() models.JobPostingDraft {
	return s.assistant.Draft()
}

// generate prefixes every prompt with the assistant persona.
func (s *Session) generate(ctx context.Context, prompt string) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()
	return s.llm.Generate(genCtx, prompts.PostingAssistantInstructions+"\n\n"+prompt)
}

func (s *Session) publish(ctx context.Context, event any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishEvent(ctx, event); err != nil {
		s.log.WithError(err).Warn("publish event failed")
	}
}
