package services

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hirehub/voice-agents/internal/events"
	"github.com/hirehub/voice-agents/internal/interview"
	"github.com/hirehub/voice-agents/internal/models"
	"github.com/hirehub/voice-agents/internal/posting"
	"github.com/hirehub/voice-agents/internal/providers/llm"
	"github.com/hirehub/voice-agents/internal/providers/stt"
	"github.com/hirehub/voice-agents/internal/providers/tts"
	"github.com/hirehub/voice-agents/internal/room"
	"github.com/hirehub/voice-agents/internal/utils"
)

const (
	SessionTypeInterview = "interview"
	SessionTypePosting   = "posting"
)

// RoomDialer builds a transport bound to one named room. Injected so tests
// can substitute an in-process transport.
type RoomDialer func(roomName string) room.Transport

type StartInterviewRequest struct {
	Room   string            `json:"room" binding:"required"`
	Job    models.JobContext `json:"job"`
	Resume models.Resume     `json:"resume"`
}

type SessionInfo struct {
	SessionID string `json:"session_id"`
	Type      string `json:"type"`
	Room      string `json:"room"`
}

type SessionService interface {
	StartInterview(ctx context.Context, req StartInterviewRequest) (SessionInfo, error)
	StartPosting(ctx context.Context, roomName string) (SessionInfo, error)
	Progress(sessionID string) (models.Progress, error)
	Transcript(sessionID string) ([]models.TranscriptEntry, error)
	End(ctx context.Context, sessionID string) (interview.EndResult, error)
}

// entry tracks one live session and the transport it rides on.
type entry struct {
	info      SessionInfo
	transport room.Transport
	interview *interview.Session
	posting   *posting.Session
}

type sessionService struct {
	dial     RoomDialer
	llm      llm.Provider
	stt      stt.Provider
	tts      tts.Provider
	redis    *redis.Client
	analysis interview.AnalysisQueue
	jobs     posting.Submitter
	log      *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

type Deps struct {
	Dial     RoomDialer
	LLM      llm.Provider
	STT      stt.Provider
	TTS      tts.Provider // optional; without it the platform voices the text
	Redis    *redis.Client
	Analysis interview.AnalysisQueue
	Jobs     posting.Submitter
	Logger   *logrus.Logger
}

func NewSessionService(d Deps) SessionService {
	if d.Logger == nil {
		d.Logger = logrus.New()
	}
	return &sessionService{
		dial:     d.Dial,
		llm:      d.LLM,
		stt:      d.STT,
		tts:      d.TTS,
		redis:    d.Redis,
		analysis: d.Analysis,
		jobs:     d.Jobs,
		log:      d.Logger,
		sessions: make(map[string]*entry),
	}
}

// StartInterview joins the room, registers the interview control procedures,
// and wires candidate audio into the turn pipeline. The interview itself
// starts when a participant invokes start_interview.
func (s *sessionService) StartInterview(ctx context.Context, req StartInterviewRequest) (SessionInfo, error) {
	const op = "SessionService.StartInterview"

	if req.Room == "" {
		return SessionInfo{}, utils.E(utils.CodeInvalidArgument, op, "room is required", nil)
	}

	id := uuid.NewString()
	transport := s.dial(req.Room)

	sess := interview.NewSession(interview.SessionConfig{
		ID:       id,
		Room:     req.Room,
		Job:      req.Job,
		Resume:   req.Resume,
		LLM:      s.llm,
		Audio:    transport,
		Notifier: events.NewRedisPublisher(s.redis, id),
		Analysis: s.analysis,
		Logger:   s.log,
	})

	for _, cmd := range sess.Commands() {
		cmd := cmd
		transport.RegisterRPC(cmd, func(ctx context.Context, inv room.Invocation) (any, error) {
			return sess.Dispatch(ctx, cmd)
		})
	}
	transport.OnAudioChunk(func(participant string, audio []byte, final bool) {
		if !final {
			return
		}
		s.handleCandidateAudio(sess, audio)
	})

	if err := transport.Connect(ctx); err != nil {
		return SessionInfo{}, utils.E(utils.CodeUnavailable, op, "failed to join room", err)
	}

	info := SessionInfo{SessionID: id, Type: SessionTypeInterview, Room: req.Room}
	s.mu.Lock()
	s.sessions[id] = &entry{info: info, transport: transport, interview: sess}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"session_id": id, "room": req.Room}).Info("interview session registered")
	return info, nil
}

// StartPosting joins the room and starts the recruiter conversation: the
// assistant greets the first human participant and every finalized recruiter
// utterance flows through the extraction pipeline.
func (s *sessionService) StartPosting(ctx context.Context, roomName string) (SessionInfo, error) {
	const op = "SessionService.StartPosting"

	if roomName == "" {
		return SessionInfo{}, utils.E(utils.CodeInvalidArgument, op, "room is required", nil)
	}

	id := uuid.NewString()
	transport := s.dial(roomName)

	sess := posting.NewSession(posting.SessionConfig{
		ID:        id,
		Room:      roomName,
		Assistant: posting.NewAssistant(s.jobs, s.log),
		LLM:       s.llm,
		Notifier:  events.NewRedisPublisher(s.redis, id),
		Logger:    s.log,
	})

	transport.OnParticipantJoined(func(identity string) {
		reply, err := sess.HandleParticipantJoined(context.Background(), identity)
		if err != nil {
			s.log.WithError(err).Warn("greeting failed")
			return
		}
		s.deliver(transport, id, reply)
	})
	transport.OnAudioChunk(func(participant string, audio []byte, final bool) {
		if !final {
			return
		}
		s.handleRecruiterAudio(transport, sess, audio)
	})

	if err := transport.Connect(ctx); err != nil {
		return SessionInfo{}, utils.E(utils.CodeUnavailable, op, "failed to join room", err)
	}

	info := SessionInfo{SessionID: id, Type: SessionTypePosting, Room: roomName}
	s.mu.Lock()
	s.sessions[id] = &entry{info: info, transport: transport, posting: sess}
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"session_id": id, "room": roomName}).Info("posting session registered")
	return info, nil
}

func (s *sessionService) Progress(sessionID string) (models.Progress, error) {
	const op = "SessionService.Progress"

	e, err := s.lookup(op, sessionID)
	if err != nil {
		return models.Progress{}, err
	}
	if e.interview != nil {
		return e.interview.Progress(), nil
	}
	return e.posting.Progress(), nil
}

func (s *sessionService) Transcript(sessionID string) ([]models.TranscriptEntry, error) {
	const op = "SessionService.Transcript"

	e, err := s.lookup(op, sessionID)
	if err != nil {
		return nil, err
	}
	if e.interview == nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "posting sessions have no transcript", nil)
	}
	return e.interview.Transcript(), nil
}

// End force-completes an interview session and disconnects the transport.
// The session stays registered so progress and transcript remain readable.
func (s *sessionService) End(ctx context.Context, sessionID string) (interview.EndResult, error) {
	const op = "SessionService.End"

	e, err := s.lookup(op, sessionID)
	if err != nil {
		return interview.EndResult{}, err
	}
	if e.interview == nil {
		return interview.EndResult{}, utils.E(utils.CodeInvalidArgument, op, "not an interview session", nil)
	}

	result, err := e.interview.End(ctx)
	if err != nil {
		return interview.EndResult{}, err
	}
	if cerr := e.transport.Close(); cerr != nil {
		s.log.WithError(cerr).Warn("transport close failed")
	}
	return result, nil
}

func (s *sessionService) lookup(op, sessionID string) (*entry, error) {
	if sessionID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "session_id is required", nil)
	}
	s.mu.Lock()
	e, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, utils.E(utils.CodeNotFound, op, "session not found", nil)
	}
	return e, nil
}

func (s *sessionService) handleCandidateAudio(sess *interview.Session, audio []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text, confidence, err := s.stt.Transcribe(ctx, audio, "en-US")
	if err != nil {
		s.log.WithError(err).Warn("transcription failed")
		return
	}
	s.log.WithField("confidence", confidence).Debug("candidate turn transcribed")
	sess.HandleCandidateTurn(ctx, text)
}

func (s *sessionService) handleRecruiterAudio(transport room.Transport, sess *posting.Session, audio []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text, _, err := s.stt.Transcribe(ctx, audio, "en-US")
	if err != nil {
		s.log.WithError(err).Warn("transcription failed")
		return
	}
	reply, err := sess.HandleRecruiterTurn(ctx, text)
	if err != nil {
		s.log.WithError(err).Warn("recruiter turn failed")
		return
	}
	s.deliver(transport, sess.ID, reply)
}

// deliver publishes the agent's spoken reply onto the room data channel so
// the hosted platform can voice it.
func (s *sessionService) deliver(transport room.Transport, sessionID string, reply string) {
	if reply == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	payload, err := json.Marshal(map[string]any{
		"type":       "agent_speech",
		"session_id": sessionID,
		"content":    reply,
	})
	if err != nil {
		s.log.WithError(err).Warn("marshal reply failed")
		return
	}
	if err := transport.PublishData(ctx, payload); err != nil {
		s.log.WithError(err).Warn("publish reply failed")
	}

	if s.tts == nil {
		return
	}
	audio, err := s.tts.Synthesize(ctx, reply)
	if err != nil {
		s.log.WithError(err).Warn("synthesis failed")
		return
	}
	if len(audio) == 0 {
		return
	}
	if err := transport.PublishAudio(ctx, audio); err != nil {
		s.log.WithError(err).Warn("publish audio failed")
	}
}
