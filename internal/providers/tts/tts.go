package tts

import "context"

// Provider synthesizes one utterance into audio. Synthesis is optional in the
// pipeline: when no provider is configured the room platform voices the text
// itself.
type Provider interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Close() error
}
