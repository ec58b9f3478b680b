package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultVoiceID = "21m00Tcm4TlvDq8ikWAM"

// ElevenLabs synthesizes speech through the ElevenLabs REST API.
type ElevenLabs struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	voiceID    string
	modelID    string
}

func NewElevenLabs(apiKey, voiceID string) *ElevenLabs {
	if voiceID == "" {
		voiceID = defaultVoiceID
	}
	return &ElevenLabs{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.elevenlabs.io",
		apiKey:     apiKey,
		voiceID:    voiceID,
		modelID:    "eleven_turbo_v2_5",
	}
}

type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id"`
}

func (e *ElevenLabs) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, nil
	}

	body, err := json.Marshal(synthesizeRequest{Text: text, ModelID: e.modelID})
	if err != nil {
		return nil, err
	}

	url := e.baseURL + "/v1/text-to-speech/" + e.voiceID + "?output_format=pcm_16000"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("elevenlabs: status %d: %s", resp.StatusCode, msg)
	}
	return io.ReadAll(resp.Body)
}

func (e *ElevenLabs) Close() error { return nil }
