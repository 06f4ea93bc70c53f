package metrics

import (
	"context"
	"testing"

	"netflux/internal/config"

	"github.com/prometheus/client_golang/prometheus"
)

func TestStartServerInvalidAddr(t *testing.T) {
	cfg := config.MetricsConfig{
		Address: "bad:addr",
		Path:    "/metrics",
	}
	if err := StartServer(context.Background(), cfg, prometheus.NewRegistry()); err == nil {
		t.Fatalf("expected error for invalid address")
	}
}
