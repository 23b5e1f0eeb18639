// Package brief holds the campaign-brief domain: request validation, prompt
// construction, and contract enforcement on the model's structured output.
package brief

// Request carries the four user-supplied campaign fields, already trimmed.
type Request struct {
	BrandName string `json:"brand_name"`
	Platform  string `json:"platform"`
	Goal      string `json:"goal"`
	Tone      string `json:"tone"`
}

// Telemetry describes a single generation call.
type Telemetry struct {
	LatencyMS        float64 `json:"latency_ms"`
	TokensTotal      int     `json:"tokens_total"`
	TokensPrompt     int     `json:"tokens_prompt"`
	TokensCompletion int     `json:"tokens_completion"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
}

// Result is a validated brief: a 4-6 sentence summary plus exactly three
// content angles and three creator-selection criteria.
type Result struct {
	Brief     string    `json:"brief"`
	Angles    []string  `json:"angles"`
	Criteria  []string  `json:"criteria"`
	Telemetry Telemetry `json:"telemetry"`
}
