package brief

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/briefworks/briefgen/internal/config"
	"github.com/briefworks/briefgen/internal/llm"
	"github.com/briefworks/briefgen/internal/protocol"
)

// UsageSink receives a usage event after each successful generation.
// Publishing is best-effort; failures never fail the request.
type UsageSink interface {
	PublishUsage(ctx context.Context, ev protocol.UsageEvent) error
}

type Service struct {
	cfg       config.LLMConfig
	generator llm.Generator
	usage     UsageSink
	logger    *slog.Logger
}

func NewService(cfg config.LLMConfig, generator llm.Generator, usage UsageSink, logger *slog.Logger) *Service {
	return &Service{
		cfg:       cfg,
		generator: generator,
		usage:     usage,
		logger:    logger.With(slog.String("component", "brief-service")),
	}
}

// Generate issues exactly one provider call for the validated request and
// enforces the response contract. No retries: any failure surfaces to the
// caller as one of the typed errors in this package.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	ctx, span := otel.Tracer("briefgen").Start(ctx, "brief.generate")
	defer span.End()
	span.SetAttributes(
		attribute.String("brief.platform", req.Platform),
		attribute.String("brief.goal", req.Goal),
		attribute.String("brief.tone", req.Tone),
		attribute.String("llm.model", s.cfg.Model),
	)

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutSeconds)*time.Second)
	defer cancel()

	start := time.Now()
	comp, err := s.generator.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      buildUserPrompt(req),
		Model:       s.cfg.Model,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
		ForceJSON:   true,
	})
	latency := time.Since(start)
	if err != nil {
		span.RecordError(err)
		return nil, &ServiceError{Err: err}
	}

	briefText, angles, criteria, err := decodeResult(comp.Content)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	totalTokens := comp.TotalTokens
	if totalTokens == 0 {
		totalTokens = comp.PromptTokens + comp.CompletionTokens
	}
	result := &Result{
		Brief:    briefText,
		Angles:   angles,
		Criteria: criteria,
		Telemetry: Telemetry{
			LatencyMS:        roundTo(latency.Seconds()*1000, 2),
			TokensTotal:      totalTokens,
			TokensPrompt:     comp.PromptTokens,
			TokensCompletion: comp.CompletionTokens,
			EstimatedCostUSD: llm.EstimateCost(s.cfg.Model, comp.PromptTokens, comp.CompletionTokens),
		},
	}

	s.logger.Info("brief generated",
		slog.String("platform", req.Platform),
		slog.Float64("latency_ms", result.Telemetry.LatencyMS),
		slog.Int("tokens_total", result.Telemetry.TokensTotal))

	s.publishUsage(ctx, req, result)
	return result, nil
}

func (s *Service) publishUsage(ctx context.Context, req Request, result *Result) {
	if s.usage == nil {
		return
	}
	ev := protocol.UsageEvent{
		BrandName:        req.BrandName,
		Platform:         req.Platform,
		Goal:             req.Goal,
		Tone:             req.Tone,
		Model:            s.cfg.Model,
		LatencyMS:        result.Telemetry.LatencyMS,
		TokensTotal:      result.Telemetry.TokensTotal,
		TokensPrompt:     result.Telemetry.TokensPrompt,
		TokensCompletion: result.Telemetry.TokensCompletion,
		EstimatedCostUSD: result.Telemetry.EstimatedCostUSD,
		Timestamp:        time.Now().UTC(),
	}
	if err := s.usage.PublishUsage(ctx, ev); err != nil {
		s.logger.Warn("failed to publish usage event", slog.String("error", err.Error()))
	}
}

// decodeResult parses the model's reply and enforces the contract: keys
// brief/angles/criteria present, both arrays exactly 3 string items.
func decodeResult(content string) (string, []string, []string, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return "", nil, nil, &MalformedResponseError{Err: err}
	}

	raw, ok := payload["brief"]
	if !ok {
		return "", nil, nil, &ResponseShapeError{Detail: `model response missing key "brief"`}
	}
	var briefText string
	if err := json.Unmarshal(raw, &briefText); err != nil {
		return "", nil, nil, &ResponseShapeError{Detail: `model response key "brief" must be a string`}
	}

	angles, err := decodeTriple(payload, "angles")
	if err != nil {
		return "", nil, nil, err
	}
	criteria, err := decodeTriple(payload, "criteria")
	if err != nil {
		return "", nil, nil, err
	}
	return briefText, angles, criteria, nil
}

func decodeTriple(payload map[string]json.RawMessage, key string) ([]string, error) {
	raw, ok := payload[key]
	if !ok {
		return nil, &ResponseShapeError{Detail: fmt.Sprintf("model response missing key %q", key)}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &ResponseShapeError{Detail: fmt.Sprintf("model response key %q must be an array of strings", key)}
	}
	if len(items) != 3 {
		return nil, &ResponseShapeError{Detail: fmt.Sprintf("model response key %q must contain exactly 3 items, got %d", key, len(items))}
	}
	return items, nil
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
