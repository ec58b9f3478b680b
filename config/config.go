package config

import (
	"os"
	"strconv"
)

// Config is the process configuration, read from the environment once at
// startup.
type Config struct {
	Port string

	// LLMProvider selects the hosted model: "vertex" or "openai".
	LLMProvider   string
	OpenAIAPIKey  string
	OpenAIModel   string
	VertexProject string
	VertexRegion  string
	VertexModel   string

	// GoogleCredentials optionally points at a service account key file for
	// the speech client; when empty the ambient credentials are used.
	GoogleCredentials string

	// ElevenLabsAPIKey enables agent-side speech synthesis; when empty the
	// room platform voices the agent's text.
	ElevenLabsAPIKey string
	ElevenLabsVoice  string

	// JobsAPIURL is the base URL of the web app's jobs API.
	JobsAPIURL string

	// RoomWSURL is the realtime room platform endpoint; RoomToken
	// authenticates the agent.
	RoomWSURL string
	RoomToken string

	AnalysisWorkers int
}

func Load() Config {
	return Config{
		Port:              envOr("PORT", "8080"),
		LLMProvider:       envOr("LLM_PROVIDER", "openai"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       envOr("OPENAI_MODEL", "gpt-4o-mini"),
		VertexProject:     os.Getenv("VERTEX_PROJECT"),
		VertexRegion:      envOr("VERTEX_LOCATION", "us-central1"),
		VertexModel:       envOr("VERTEX_MODEL", "gemini-1.5-flash"),
		GoogleCredentials: os.Getenv("GOOGLE_CREDENTIALS_FILE"),
		ElevenLabsAPIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsVoice:   os.Getenv("ELEVENLABS_VOICE"),
		JobsAPIURL:        envOr("JOBS_API_URL", "http://localhost:3000/api"),
		RoomWSURL:         os.Getenv("ROOM_WS_URL"),
		RoomToken:         os.Getenv("ROOM_TOKEN"),
		AnalysisWorkers:   envInt("ANALYSIS_WORKERS", 5),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
