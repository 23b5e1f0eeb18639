package llm

import (
	"context"
	"encoding/json"
	"time"
)

type mockGenerator struct{}

// NewMockGenerator returns a backend that produces a canned, well-formed
// brief without calling any provider. Default mode for local development.
func NewMockGenerator() Generator { return &mockGenerator{} }

func (m *mockGenerator) Generate(ctx context.Context, req Request) (Completion, error) {
	select {
	case <-ctx.Done():
		return Completion{}, ctx.Err()
	case <-time.After(20 * time.Millisecond):
	}

	body, _ := json.Marshal(map[string]any{
		"brief": "This campaign introduces the brand to its core audience with a focused creator push. " +
			"Creators share authentic first impressions in short-form posts. " +
			"Each post leads with a hook in the first two seconds. " +
			"A consistent visual motif ties the series together. " +
			"The call to action points viewers to the brand profile.",
		"angles": []string{
			"Day-in-the-life featuring the product",
			"Before-and-after transformation story",
			"Honest first-impression reaction",
		},
		"criteria": []string{
			"Audience overlap with the brand's target demographic",
			"Consistent engagement rate above platform median",
			"Prior branded content in an adjacent category",
		},
	})

	promptTokens := len(req.Prompt) / 4
	return Completion{
		Content:          string(body),
		PromptTokens:     promptTokens,
		CompletionTokens: 120,
		TotalTokens:      promptTokens + 120,
	}, nil
}
