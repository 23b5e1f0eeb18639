package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/briefworks/briefgen/internal/brief"
	"github.com/briefworks/briefgen/internal/bus"
	"github.com/briefworks/briefgen/internal/config"
	"github.com/briefworks/briefgen/internal/httpapi"
	"github.com/briefworks/briefgen/internal/llm"
	"github.com/briefworks/briefgen/internal/ratelimit"
)

type Runtime struct {
	cfg            config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	telemetryClose func(context.Context) error
	ready          atomic.Bool
	wg             sync.WaitGroup
}

func New(cfg config.Config, logger *slog.Logger) *Runtime {
	return &Runtime{
		cfg:    cfg,
		logger: logger,
	}
}

func (r *Runtime) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shutdownTelemetry, metricHandler, err := setupTelemetry(r.cfg, r.logger)
	if err != nil {
		return fmt.Errorf("failed to setup telemetry: %w", err)
	}
	r.telemetryClose = shutdownTelemetry

	generator, err := llm.New(r.cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to build llm generator: %w", err)
	}

	var usage brief.UsageSink
	var busClient *bus.Client
	if r.cfg.Bus.Enabled {
		busClient, err = bus.Connect(ctx, r.cfg.Bus, r.logger)
		if err != nil {
			return fmt.Errorf("failed to connect usage bus: %w", err)
		}
		usage = busClient
	}

	window := time.Duration(r.cfg.RateLimit.WindowSeconds * float64(time.Second))
	limiter := ratelimit.New(r.cfg.RateLimit.MaxRequests, window)
	r.startSweeper(ctx, limiter)

	validator := brief.NewValidator(r.cfg.Moderation.BlockedTerms)
	briefs := brief.NewService(r.cfg.LLM, generator, usage, r.logger)

	metrics, err := httpapi.NewMetrics(otel.Meter("briefgen"))
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	mux := http.NewServeMux()
	handler := httpapi.NewHandler(briefs, validator, limiter, metrics, r.logger)
	handler.Register(mux)
	mux.HandleFunc("/healthz", r.handleHealth)
	mux.HandleFunc("/readyz", r.handleReady)
	if metricHandler != nil {
		mux.Handle("/metrics", metricHandler)
	}

	addr := fmt.Sprintf("%s:%d", r.cfg.HTTP.Bind, r.cfg.HTTP.Port)
	r.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		if err := r.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			r.logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	r.ready.Store(true)
	r.logger.Info("briefgen started",
		slog.String("addr", addr),
		slog.String("llm_mode", r.cfg.LLM.Mode),
		slog.Int("rate_limit_max", r.cfg.RateLimit.MaxRequests))

	<-ctx.Done()
	r.logger.Info("briefgen stopping")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := r.httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Error("http shutdown error", slog.String("error", err.Error()))
	}
	r.wg.Wait()

	busClient.Close()

	if r.telemetryClose != nil {
		if err := r.telemetryClose(shutdownCtx); err != nil {
			r.logger.Error("telemetry shutdown error", slog.String("error", err.Error()))
		}
	}

	return nil
}

// startSweeper periodically evicts idle identities from the limiter so the
// per-client map does not grow without bound.
func (r *Runtime) startSweeper(ctx context.Context, limiter *ratelimit.Limiter) {
	interval := time.Duration(r.cfg.RateLimit.SweepIntervalSeconds) * time.Second
	if interval <= 0 {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := limiter.Sweep(); removed > 0 {
					r.logger.Debug("evicted idle rate-limit identities", slog.Int("count", removed))
				}
			}
		}
	}()
}

func (r *Runtime) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (r *Runtime) handleReady(w http.ResponseWriter, _ *http.Request) {
	if r.ready.Load() {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("not ready"))
}
