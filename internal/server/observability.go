package server

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/FACorreiaa/negocios-templui/internal/app/observability/metrics"
	"github.com/FACorreiaa/negocios-templui/internal/app/observability/tracer"
	"github.com/FACorreiaa/negocios-templui/internal/pkg/config"
)

// ObservabilityShutdownFunc is the function type returned by InitObservability
type ObservabilityShutdownFunc func(context.Context) error

// InitObservability initializes OpenTelemetry and application metrics
func InitObservability(cfg config.ObservabilityConfig, logger *zap.Logger) (ObservabilityShutdownFunc, error) {
	otelShutdown, err := tracer.InitOtelProviders(cfg.ServiceName, cfg.MetricsAddr, cfg.OTELEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics.InitAppMetrics()
	logger.Info("Observability initialized",
		zap.String("metrics_endpoint", cfg.MetricsAddr+"/metrics"),
		zap.String("otlp_endpoint", cfg.OTELEndpoint))

	return otelShutdown, nil
}
