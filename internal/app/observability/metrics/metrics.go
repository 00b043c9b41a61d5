package metrics

import (
	"context"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	HTTPRequestsTotal       metric.Int64Counter
	HTTPRequestDuration     metric.Float64Histogram
	UpstreamRequestDuration metric.Float64Histogram
	UpstreamErrorsTotal     metric.Int64Counter
	RecommendationSource    metric.Int64Counter
	RatingsSubmittedTotal   metric.Int64Counter
	ChatMessagesTotal       metric.Int64Counter
	StaleResponsesDropped   metric.Int64Counter
	TemplateRenderDuration  metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics creates the instruments once from the global MeterProvider.
// Before the provider is configured the instruments are no-ops.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("negocios-templui")
		m := &AppMetrics{}

		m.HTTPRequestsTotal = mustCounter(meter, "http_requests_total",
			"Total number of HTTP requests completed", "{request}")
		m.HTTPRequestDuration = mustHistogram(meter, "http_request_duration_seconds",
			"Duration of HTTP requests in seconds")
		m.UpstreamRequestDuration = mustHistogram(meter, "upstream_request_duration_seconds",
			"Duration of calls to the business API in seconds")
		m.UpstreamErrorsTotal = mustCounter(meter, "upstream_errors_total",
			"Total number of failed calls to the business API", "{error}")
		m.RecommendationSource = mustCounter(meter, "recommendation_source_total",
			"Recommendation lists served, by source (primary, popular, none)", "{list}")
		m.RatingsSubmittedTotal = mustCounter(meter, "ratings_submitted_total",
			"Total number of rating submissions", "{rating}")
		m.ChatMessagesTotal = mustCounter(meter, "chat_messages_total",
			"Total number of chat messages sent to the assistant", "{message}")
		m.StaleResponsesDropped = mustCounter(meter, "stale_responses_dropped_total",
			"Responses dropped because a newer request was issued", "{response}")
		m.TemplateRenderDuration = mustHistogram(meter, "template_render_duration_seconds",
			"Duration of template rendering in seconds")

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

func mustCounter(meter metric.Meter, name, description, unit string) metric.Int64Counter {
	c, err := meter.Int64Counter(name, metric.WithDescription(description), metric.WithUnit(unit))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return c
}

func mustHistogram(meter metric.Meter, name, description string) metric.Float64Histogram {
	h, err := meter.Float64Histogram(name, metric.WithDescription(description), metric.WithUnit("s"))
	if err != nil {
		log.Fatalf("Metrics: Failed to create %s: %v", name, err)
	}
	return h
}

// Get returns the instruments, initializing them on first use.
func Get() *AppMetrics {
	InitAppMetrics()
	return appMetrics
}

// Inc adds one to counter with the given string attributes as key/value pairs.
func Inc(ctx context.Context, counter metric.Int64Counter, kv ...string) {
	attrs := make([]attribute.KeyValue, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, attribute.String(kv[i], kv[i+1]))
	}
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}
