package telemetry

import (
	"context"
	"testing"

	"modpanel/internal/bootstrap/config"
)

func TestSetupDisabledReturnsNoop(t *testing.T) {
	for _, cfg := range []config.TelemetryConfig{
		{Enabled: false, Endpoint: "http://localhost:4318"},
		{Enabled: true},
	} {
		shutdown, err := Setup(context.Background(), cfg)
		if err != nil {
			t.Fatalf("Setup(%+v) error = %v", cfg, err)
		}
		if err := shutdown(context.Background()); err != nil {
			t.Fatalf("shutdown() error = %v", err)
		}
	}
}
