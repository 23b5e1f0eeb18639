package runtime

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/briefworks/briefgen/internal/config"
)

func TestSetupTelemetryDefaults(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

	shutdown, metricHandler, err := setupTelemetry(config.Default(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metricHandler == nil {
		t.Fatal("expected a metrics handler with the default prometheus exporter")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("telemetry shutdown: %v", err)
	}
}
