package interview

import "context"

// LLM is the hosted model collaborator: one prompt in, one utterance out. The
// voice pipeline on the platform side speaks whatever text is returned.
type LLM interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AudioControl toggles candidate audio input on the room transport.
type AudioControl interface {
	SetAudioEnabled(ctx context.Context, enabled bool) error
}

// Notifier fans a session event out to listeners (room data channel, event
// feed websocket). Delivery is best effort.
type Notifier interface {
	PublishEvent(ctx context.Context, event any) error
}

// AnalysisJob is one unit of deferred LLM analysis work.
type AnalysisJob struct {
	SessionID  string `json:"session_id"`
	Kind       string `json:"kind"` // "response" | "final"
	QuestionID string `json:"question_id,omitempty"`
	Question   string `json:"question,omitempty"`
	Answer     string `json:"answer,omitempty"`
	Transcript string `json:"transcript,omitempty"`
}

const (
	AnalysisKindResponse = "response"
	AnalysisKindFinal    = "final"
)

// AnalysisQueue hands analysis jobs to the worker pool.
type AnalysisQueue interface {
	Enqueue(ctx context.Context, job AnalysisJob) error
}
