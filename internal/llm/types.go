package llm

import (
	"context"
	"fmt"

	"github.com/briefworks/briefgen/internal/config"
)

// Request describes a single completion call to a language model.
type Request struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
	// ForceJSON instructs the backend to require a single JSON object as
	// the response body, with no prose wrapper.
	ForceJSON bool
}

// Completion is the model's reply plus its token accounting, taken verbatim
// from the provider's usage report.
type Completion struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Generator defines a pluggable LLM backend.
type Generator interface {
	Generate(ctx context.Context, req Request) (Completion, error)
}

// New builds a Generator from configuration.
func New(cfg config.LLMConfig) (Generator, error) {
	switch cfg.Mode {
	case "mock":
		return NewMockGenerator(), nil
	case "openai":
		return NewOpenAIGenerator(cfg.Endpoint, cfg.APIKey), nil
	case "exec":
		return NewExecGenerator(cfg.Command)
	default:
		return nil, fmt.Errorf("unknown llm mode %q", cfg.Mode)
	}
}
