package httpapi

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/briefworks/briefgen/internal/brief"
)

// Metrics holds the endpoint's instruments. A nil *Metrics is a no-op so
// handler tests don't need a meter provider.
type Metrics struct {
	requests    metric.Int64Counter
	rateLimited metric.Int64Counter
	latency     metric.Float64Histogram
	tokens      metric.Int64Counter
	cost        metric.Float64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requests, err := meter.Int64Counter("briefgen.requests",
		metric.WithDescription("Brief generation requests by outcome"))
	if err != nil {
		return nil, err
	}
	rateLimited, err := meter.Int64Counter("briefgen.rate_limited",
		metric.WithDescription("Requests denied by the rate limiter"))
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram("briefgen.generation_latency",
		metric.WithDescription("Provider call latency"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	tokens, err := meter.Int64Counter("briefgen.tokens",
		metric.WithDescription("Tokens consumed, by kind"))
	if err != nil {
		return nil, err
	}
	cost, err := meter.Float64Counter("briefgen.estimated_cost_usd",
		metric.WithDescription("Estimated provider spend"))
	if err != nil {
		return nil, err
	}
	return &Metrics{
		requests:    requests,
		rateLimited: rateLimited,
		latency:     latency,
		tokens:      tokens,
		cost:        cost,
	}, nil
}

func (m *Metrics) RecordRequest(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.requests.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *Metrics) RecordRateLimited(ctx context.Context) {
	if m == nil {
		return
	}
	m.rateLimited.Add(ctx, 1)
}

func (m *Metrics) RecordGeneration(ctx context.Context, t brief.Telemetry) {
	if m == nil {
		return
	}
	m.latency.Record(ctx, t.LatencyMS)
	m.tokens.Add(ctx, int64(t.TokensPrompt), metric.WithAttributes(attribute.String("kind", "prompt")))
	m.tokens.Add(ctx, int64(t.TokensCompletion), metric.WithAttributes(attribute.String("kind", "completion")))
	m.cost.Add(ctx, t.EstimatedCostUSD)
}
