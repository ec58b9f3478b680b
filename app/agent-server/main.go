package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"

	"github.com/hirehub/voice-agents/config"
	"github.com/hirehub/voice-agents/internal/api/handlers"
	"github.com/hirehub/voice-agents/internal/api/middleware"
	"github.com/hirehub/voice-agents/internal/api/routes"
	"github.com/hirehub/voice-agents/internal/logger"
	"github.com/hirehub/voice-agents/internal/posting"
	"github.com/hirehub/voice-agents/internal/providers/llm"
	"github.com/hirehub/voice-agents/internal/providers/stt"
	"github.com/hirehub/voice-agents/internal/providers/tts"
	"github.com/hirehub/voice-agents/internal/room"
	"github.com/hirehub/voice-agents/internal/services"
	"github.com/hirehub/voice-agents/internal/workers"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	lg := logger.New()
	ctx := context.Background()

	rdb, err := config.InitRedis()
	if err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	lg.Info("Redis connected")

	var model llm.Provider
	switch cfg.LLMProvider {
	case "vertex":
		model, err = llm.NewVertexGemini(ctx, cfg.VertexProject, cfg.VertexRegion, cfg.VertexModel)
	default:
		model, err = llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	if err != nil {
		log.Fatalf("LLM init error: %v", err)
	}
	defer model.Close()

	var sttOpts []option.ClientOption
	if cfg.GoogleCredentials != "" {
		sttOpts = append(sttOpts, option.WithCredentialsFile(cfg.GoogleCredentials))
	}
	speech, err := stt.NewGoogleSpeech(ctx, sttOpts...)
	if err != nil {
		log.Fatalf("Speech init error: %v", err)
	}
	defer speech.Close()

	var synth tts.Provider
	if cfg.ElevenLabsAPIKey != "" {
		synth = tts.NewElevenLabs(cfg.ElevenLabsAPIKey, cfg.ElevenLabsVoice)
	}

	dial := func(roomName string) room.Transport {
		return room.NewWSTransport(cfg.RoomWSURL, roomName, "agent-"+roomName, cfg.RoomToken, lg)
	}

	svc := services.NewSessionService(services.Deps{
		Dial:     dial,
		LLM:      model,
		STT:      speech,
		TTS:      synth,
		Redis:    rdb,
		Analysis: workers.NewRedisQueue(rdb, workers.DefaultStream),
		Jobs:     posting.NewClient(cfg.JobsAPIURL),
		Logger:   lg,
	})

	pool := &workers.AnalysisWorkerPool{
		Redis:          rdb,
		LLM:            model,
		Logger:         lg,
		NumWorkers:     cfg.AnalysisWorkers,
		ConsumerPrefix: "agent",
	}
	if err := pool.Start(ctx); err != nil {
		log.Fatalf("Worker pool error: %v", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(lg))
	r.Use(cors.Default())

	routes.RegisterRoutes(r, routes.Deps{
		Session: handlers.NewSessionHandler(svc),
		WS:      handlers.NewWSHandler(svc, rdb),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
