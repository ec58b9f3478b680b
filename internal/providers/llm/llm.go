package llm

import "context"

// Provider is the hosted model collaborator. The prompt already carries any
// instruction framing; the returned text is what the voice pipeline speaks.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}
