package llm

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

// OpenAI generates through the OpenAI chat API via langchaingo.
type OpenAI struct {
	model llms.Model
}

func NewOpenAI(apiKey, modelName string) (*OpenAI, error) {
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	m, err := lcopenai.New(
		lcopenai.WithToken(apiKey),
		lcopenai.WithModel(modelName),
	)
	if err != nil {
		return nil, err
	}
	return &OpenAI{model: m}, nil
}

func (o *OpenAI) Close() error { return nil }

func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := llms.GenerateFromSinglePrompt(ctx, o.model, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
