// Package workers runs the deferred LLM analysis of interview answers off the
// request path: answers are queued on a redis stream and a consumer-group pool
// turns them into structured assessments published on the session event
// channel.
package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/hirehub/voice-agents/internal/events"
	"github.com/hirehub/voice-agents/internal/interview"
	"github.com/hirehub/voice-agents/internal/prompts"
	"github.com/hirehub/voice-agents/internal/providers/llm"
)

const DefaultStream = "analysis:stream"

// RedisQueue enqueues analysis jobs onto the stream the pool consumes.
type RedisQueue struct {
	rdb    *redis.Client
	stream string
}

func NewRedisQueue(rdb *redis.Client, stream string) *RedisQueue {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisQueue{rdb: rdb, stream: stream}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job interview.AnalysisJob) error {
	return q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{
			"session_id":  job.SessionID,
			"kind":        job.Kind,
			"question_id": job.QuestionID,
			"question":    job.Question,
			"answer":      job.Answer,
			"transcript":  job.Transcript,
			"ts_unix":     strconv.FormatInt(time.Now().UTC().Unix(), 10),
		},
	}).Err()
}

// AnalysisWorkerPool consumes analysis jobs with a redis consumer group.
type AnalysisWorkerPool struct {
	Redis      *redis.Client
	LLM        llm.Provider
	Logger     *logrus.Logger
	NumWorkers int

	Stream         string
	Group          string
	ConsumerPrefix string

	// LLMTimeout bounds each model call.
	LLMTimeout time.Duration
}

func (p *AnalysisWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.LLM == nil {
		return errors.New("AnalysisWorkerPool missing dependency: Redis/LLM must be set")
	}
	if p.Stream == "" {
		p.Stream = DefaultStream
	}
	if p.Group == "" {
		p.Group = "analysis-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.LLMTimeout <= 0 {
		p.LLMTimeout = 30 * time.Second
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *AnalysisWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *AnalysisWorkerPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	getStr := func(k string) string {
		v, ok := msg.Values[k]
		if !ok || v == nil {
			return ""
		}
		s, _ := v.(string)
		return s
	}

	sessionID := getStr("session_id")
	kind := getStr("kind")
	if sessionID == "" || kind == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id":   msg.ID,
		"session_id": sessionID,
		"kind":       kind,
	})

	var prompt string
	switch kind {
	case interview.AnalysisKindResponse:
		prompt = prompts.ResponseAnalysis(getStr("question"), getStr("answer"))
	case interview.AnalysisKindFinal:
		prompt = prompts.FinalAnalysis(getStr("transcript"))
	default:
		log.Warn("unknown analysis kind")
		return
	}

	genCtx, cancel := context.WithTimeout(ctx, p.LLMTimeout)
	raw, err := p.LLM.Generate(genCtx, prompt)
	cancel()

	// The model producing garbage or failing outright both degrade to the
	// neutral default; an analysis failure never surfaces as an error.
	var event map[string]any
	switch kind {
	case interview.AnalysisKindResponse:
		analysis := interview.NeutralResponseAnalysis()
		if err == nil {
			analysis = interview.ParseResponseAnalysis(raw)
		}
		event = map[string]any{
			"type":        "response_analysis",
			"question_id": getStr("question_id"),
			"analysis":    analysis,
		}
	case interview.AnalysisKindFinal:
		analysis := interview.NeutralFinalAnalysis()
		if err == nil {
			analysis = interview.ParseFinalAnalysis(raw)
		}
		event = map[string]any{
			"type":     "interview_complete",
			"analysis": analysis,
		}
	}
	if err != nil {
		log.WithError(err).Warn("analysis generation failed, using neutral default")
	}

	if perr := events.Publish(ctx, p.Redis, sessionID, event); perr != nil {
		log.WithError(perr).Warn("publish analysis failed")
	}
}
