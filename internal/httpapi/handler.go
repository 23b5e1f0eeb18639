// Package httpapi exposes the brief-generation endpoint and landing page.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/briefworks/briefgen/internal/brief"
	"github.com/briefworks/briefgen/internal/ratelimit"
)

type Handler struct {
	briefs    *brief.Service
	validator *brief.Validator
	limiter   *ratelimit.Limiter
	metrics   *Metrics
	logger    *slog.Logger
}

func NewHandler(briefs *brief.Service, validator *brief.Validator, limiter *ratelimit.Limiter, metrics *Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		briefs:    briefs,
		validator: validator,
		limiter:   limiter,
		metrics:   metrics,
		logger:    logger.With(slog.String("component", "httpapi")),
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handleIndex)
	mux.HandleFunc("/api/generate-brief/", h.handleGenerateBrief)
}

type rateLimitStatus struct {
	Remaining int `json:"remaining"`
}

type generateResponse struct {
	Brief     string          `json:"brief"`
	Angles    []string        `json:"angles"`
	Criteria  []string        `json:"criteria"`
	Telemetry brief.Telemetry `json:"telemetry"`
	RateLimit rateLimitStatus `json:"rate_limit"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Remaining *int   `json:"remaining,omitempty"`
}

func (h *Handler) handleGenerateBrief(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
		return
	}

	ctx := r.Context()
	identity := clientIdentity(r)
	if !h.limiter.Allow(identity) {
		h.metrics.RecordRateLimited(ctx)
		h.metrics.RecordRequest(ctx, "rate_limited")
		zero := 0
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Error:     "Rate limit exceeded. Please try again later.",
			Remaining: &zero,
		})
		return
	}

	var req brief.Request
	dec := json.NewDecoder(r.Body)
	// The body must be a single JSON value; trailing content is malformed.
	if err := dec.Decode(&req); err != nil || dec.More() {
		h.metrics.RecordRequest(ctx, "bad_request")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON in request body"})
		return
	}
	req.BrandName = strings.TrimSpace(req.BrandName)
	req.Platform = strings.TrimSpace(req.Platform)
	req.Goal = strings.TrimSpace(req.Goal)
	req.Tone = strings.TrimSpace(req.Tone)

	if err := h.validator.Validate(req); err != nil {
		h.metrics.RecordRequest(ctx, "invalid")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.briefs.Generate(ctx, req)
	if err != nil {
		status, message, outcome := mapGenerationError(err)
		h.metrics.RecordRequest(ctx, outcome)
		h.logger.Warn("brief generation failed",
			slog.String("outcome", outcome),
			slog.String("error", err.Error()))
		writeJSON(w, status, errorResponse{Error: message})
		return
	}

	h.metrics.RecordRequest(ctx, "ok")
	h.metrics.RecordGeneration(ctx, result.Telemetry)
	writeJSON(w, http.StatusOK, generateResponse{
		Brief:     result.Brief,
		Angles:    result.Angles,
		Criteria:  result.Criteria,
		Telemetry: result.Telemetry,
		RateLimit: rateLimitStatus{Remaining: h.limiter.Remaining(identity)},
	})
}

// mapGenerationError converts a typed generation failure into an HTTP status.
// Malformed and mis-shaped provider replies map to 502: the fault is
// upstream, not the caller's.
func mapGenerationError(err error) (status int, message, outcome string) {
	var validationErr *brief.ValidationError
	var malformedErr *brief.MalformedResponseError
	var shapeErr *brief.ResponseShapeError
	var serviceErr *brief.ServiceError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, validationErr.Reason, "invalid"
	case errors.As(err, &malformedErr), errors.As(err, &shapeErr):
		return http.StatusBadGateway, "Model response error: " + err.Error(), "bad_upstream"
	case errors.As(err, &serviceErr):
		return http.StatusInternalServerError, "Service error: " + serviceErr.Err.Error(), "upstream_failure"
	default:
		return http.StatusInternalServerError, "Unexpected error: " + err.Error(), "error"
	}
}

// clientIdentity prefers the first X-Forwarded-For entry, falling back to
// the socket address.
func clientIdentity(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return "unknown"
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
