package interview

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hirehub/voice-agents/internal/models"
	"github.com/hirehub/voice-agents/internal/prompts"
	"github.com/hirehub/voice-agents/internal/utils"
)

type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
)

// Remote procedure names exposed to room participants.
const (
	CmdStartInterview = "start_interview"
	CmdNextQuestion   = "next_question"
	CmdEndInterview   = "end_interview"
	CmdGetProgress    = "get_progress"
	CmdGetTranscript  = "get_transcript"
)

type StartResult struct {
	Status   string                 `json:"status"`
	Question *models.QuestionRecord `json:"question"`
}

type NextResult struct {
	Status     string                   `json:"status"`
	Question   *models.QuestionRecord   `json:"question,omitempty"`
	Transcript []models.TranscriptEntry `json:"transcript,omitempty"`
}

type EndResult struct {
	Status     string                   `json:"status"`
	Transcript []models.TranscriptEntry `json:"transcript"`
	Progress   models.Progress          `json:"progress"`
}

type TranscriptResult struct {
	Transcript []models.TranscriptEntry `json:"transcript"`
}

// SessionConfig wires one interview session to its collaborators.
type SessionConfig struct {
	ID     string
	Room   string
	Job    models.JobContext
	Resume models.Resume

	LLM      LLM
	Audio    AudioControl
	Notifier Notifier
	Analysis AnalysisQueue
	Logger   *logrus.Logger

	// LLMTimeout bounds every hosted-model call. The upstream behavior has no
	// timeout; an unbounded external call is not acceptable here.
	LLMTimeout time.Duration
}

// Session is the turn-tracking interview state machine. All mutating
// operations serialize on mu; the lock is never held across an LLM or
// transport call, so progress and transcript queries stay responsive during
// network latency. A transition is committed before its external call is
// issued: if the call fails, the state does not roll back and the failure is
// reported to the caller of the control operation.
type Session struct {
	id   string
	room string
	job  models.JobContext

	llm          LLM
	audio        AudioControl
	notifier     Notifier
	analysis     AnalysisQueue
	llmTimeout   time.Duration
	instructions string
	log          *logrus.Entry

	mu       sync.Mutex
	state    State
	cursor   *Cursor
	recorder *Recorder
}

func NewSession(cfg SessionConfig) *Session {
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}
	timeout := cfg.LLMTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Session{
		id:           cfg.ID,
		room:         cfg.Room,
		job:          cfg.Job,
		llm:          cfg.LLM,
		audio:        cfg.Audio,
		notifier:     cfg.Notifier,
		analysis:     cfg.Analysis,
		llmTimeout:   timeout,
		instructions: prompts.InterviewerInstructions(cfg.Job, cfg.Resume),
		log: log.WithFields(logrus.Fields{
			"session_id": cfg.ID,
			"room":       cfg.Room,
		}),
		state:    StateNotStarted,
		cursor:   NewCursor(GenerateQuestions(cfg.Job, cfg.Resume)),
		recorder: NewRecorder(),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start transitions not_started -> in_progress, enables candidate audio, and
// has the model utter the first question verbatim.
func (s *Session) Start(ctx context.Context) (StartResult, error) {
	const op = "Session.Start"

	s.mu.Lock()
	if s.state != StateNotStarted {
		state := s.state
		s.mu.Unlock()
		return StartResult{}, utils.E(utils.CodeConflict, op, "interview already "+string(state), nil)
	}
	s.state = StateInProgress
	question := s.cursor.Current()
	s.mu.Unlock()

	s.log.Info("interview started")
	if err := s.audio.SetAudioEnabled(ctx, true); err != nil {
		s.log.WithError(err).Warn("enable audio failed")
	}

	if question != nil {
		if err := s.askVerbatim(ctx, *question); err != nil {
			// Transition is committed; the caller just learns the utterance failed.
			return StartResult{Status: "started", Question: question}, utils.E(utils.CodeUnavailable, op, "failed to ask opening question", err)
		}
	}
	return StartResult{Status: "started", Question: question}, nil
}

// NextQuestion advances the cursor. When a question remains it is uttered
// verbatim; when the sequence is exhausted the session completes, audio is
// disabled, and the closing remark is delivered.
func (s *Session) NextQuestion(ctx context.Context) (NextResult, error) {
	const op = "Session.NextQuestion"

	s.mu.Lock()
	switch s.state {
	case StateNotStarted:
		s.mu.Unlock()
		return NextResult{}, utils.E(utils.CodeInvalidArgument, op, "interview has not started", nil)
	case StateCompleted:
		// Advancing past the end stays a benign no-op.
		transcript := s.recorder.Transcript()
		s.mu.Unlock()
		return NextResult{Status: "completed", Transcript: transcript}, nil
	}
	s.cursor.Advance()
	question := s.cursor.Current()
	if question == nil {
		s.state = StateCompleted
	}
	s.mu.Unlock()

	if question != nil {
		if err := s.askVerbatim(ctx, *question); err != nil {
			return NextResult{Status: "next_question", Question: question}, utils.E(utils.CodeUnavailable, op, "failed to ask question", err)
		}
		return NextResult{Status: "next_question", Question: question}, nil
	}

	s.log.Info("interview completed")
	if err := s.audio.SetAudioEnabled(ctx, false); err != nil {
		s.log.WithError(err).Warn("disable audio failed")
	}
	s.enqueueFinalAnalysis(ctx)

	if err := s.speak(ctx, prompts.ClosingRemark); err != nil {
		s.log.WithError(err).Warn("closing remark failed")
	}

	s.mu.Lock()
	transcript := s.recorder.Transcript()
	s.mu.Unlock()
	return NextResult{Status: "completed", Transcript: transcript}, nil
}

// End force-completes the session from any state and returns the transcript
// and progress snapshot. Calling End twice yields the same observable result.
func (s *Session) End(ctx context.Context) (EndResult, error) {
	s.mu.Lock()
	wasCompleted := s.state == StateCompleted
	s.state = StateCompleted
	transcript := s.recorder.Transcript()
	progress := s.cursor.Progress()
	s.mu.Unlock()

	if !wasCompleted {
		s.log.Info("interview ended")
		if err := s.audio.SetAudioEnabled(ctx, false); err != nil {
			s.log.WithError(err).Warn("disable audio failed")
		}
		s.enqueueFinalAnalysis(ctx)
	}
	return EndResult{Status: "ended", Transcript: transcript, Progress: progress}, nil
}

// Progress is a pure read, valid in any state.
func (s *Session) Progress() models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor.Progress()
}

// Transcript is a pure read, valid in any state.
func (s *Session) Transcript() []models.TranscriptEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recorder.Transcript()
}

// HandleCandidateTurn records a finalized candidate utterance against the
// current question and queues it for analysis. Empty text suppresses the turn
// entirely: nothing is recorded and no reply cycle is triggered.
func (s *Session) HandleCandidateTurn(ctx context.Context, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.log.Debug("ignoring empty candidate turn")
		return
	}

	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		s.log.WithField("state", s.state).Debug("dropping candidate turn outside in_progress")
		return
	}
	var questionID, questionText string
	if q := s.cursor.Current(); q != nil {
		questionID = q.ID
		questionText = q.Question
	}
	s.recorder.Record(models.SpeakerCandidate, text, questionID)
	entry := s.recorder.Transcript()[s.recorder.Len()-1]
	s.mu.Unlock()

	s.publish(ctx, map[string]any{"type": "transcript", "entry": entry})

	if s.analysis != nil && questionText != "" {
		job := AnalysisJob{
			SessionID:  s.id,
			Kind:       AnalysisKindResponse,
			QuestionID: questionID,
			Question:   questionText,
			Answer:     text,
		}
		if err := s.analysis.Enqueue(ctx, job); err != nil {
			s.log.WithError(err).Warn("enqueue response analysis failed")
		}
	}
}

// Dispatch routes a named remote procedure to its handler. The table, not any
// transport callback mechanism, defines the control surface.
func (s *Session) Dispatch(ctx context.Context, command string) (any, error) {
	switch command {
	case CmdStartInterview:
		return s.Start(ctx)
	case CmdNextQuestion:
		return s.NextQuestion(ctx)
	case CmdEndInterview:
		return s.End(ctx)
	case CmdGetProgress:
		return s.Progress(), nil
	case CmdGetTranscript:
		return TranscriptResult{Transcript: s.Transcript()}, nil
	default:
		return nil, utils.E(utils.CodeInvalidArgument, "Session.Dispatch", "unknown command: "+command, nil)
	}
}

// Commands lists the remote procedures this session serves.
func (s *Session) Commands() []string {
	return []string{CmdStartInterview, CmdNextQuestion, CmdEndInterview, CmdGetProgress, CmdGetTranscript}
}

// askVerbatim has the model reproduce the exact question text and records the
// resulting interviewer utterance.
func (s *Session) askVerbatim(ctx context.Context, q models.QuestionRecord) error {
	reply, err := s.generate(ctx, prompts.AskExactQuestion(q.Question))
	if err != nil {
		return err
	}
	s.mu.Lock()
	recorded := s.recorder.Record(models.SpeakerInterviewer, reply, q.ID)
	var entry models.TranscriptEntry
	if recorded {
		entry = s.recorder.Transcript()[s.recorder.Len()-1]
	}
	s.mu.Unlock()
	if recorded {
		s.publish(ctx, map[string]any{"type": "transcript", "entry": entry})
	}
	return nil
}

// speak delivers a non-question instruction (closing remark) and records the
// utterance without a question id.
func (s *Session) speak(ctx context.Context, instruction string) error {
	reply, err := s.generate(ctx, instruction)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.recorder.Record(models.SpeakerInterviewer, reply, "")
	s.mu.Unlock()
	return nil
}

// generate prefixes every prompt with the interviewer persona so each call
// carries the full conversational context.
func (s *Session) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.llmTimeout)
	defer cancel()
	reply, err := s.llm.Generate(ctx, s.instructions+"\n\n"+prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

func (s *Session) enqueueFinalAnalysis(ctx context.Context) {
	if s.analysis == nil {
		return
	}
	s.mu.Lock()
	transcript := s.recorder.Text()
	s.mu.Unlock()
	job := AnalysisJob{SessionID: s.id, Kind: AnalysisKindFinal, Transcript: transcript}
	if err := s.analysis.Enqueue(ctx, job); err != nil {
		s.log.WithError(err).Warn("enqueue final analysis failed")
	}
}

func (s *Session) publish(ctx context.Context, event any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishEvent(ctx, event); err != nil {
		s.log.WithError(err).Debug("publish event failed")
	}
}
