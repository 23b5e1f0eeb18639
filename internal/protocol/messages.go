package protocol

import "time"

// UsageEvent describes one completed brief generation, published on the bus
// for downstream accounting. It reports finished work only; the request path
// never waits on consumers.
type UsageEvent struct {
	BrandName        string    `json:"brand_name"`
	Platform         string    `json:"platform"`
	Goal             string    `json:"goal"`
	Tone             string    `json:"tone"`
	Model            string    `json:"model"`
	LatencyMS        float64   `json:"latency_ms"`
	TokensTotal      int       `json:"tokens_total"`
	TokensPrompt     int       `json:"tokens_prompt"`
	TokensCompletion int       `json:"tokens_completion"`
	EstimatedCostUSD float64   `json:"estimated_cost_usd"`
	Timestamp        time.Time `json:"timestamp"`
}

const SubjectUsageGenerated = "brief.usage.generated"
