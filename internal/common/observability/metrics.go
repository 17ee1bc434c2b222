package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability records claim outcomes through OpenTelemetry. A zero value is a no-op.
type Observability struct {
	meterProvider *metric.MeterProvider
	meter         otelmetric.Meter
	claimCounter  otelmetric.Int64Counter
	claimDuration otelmetric.Float64Histogram
	toggleCounter otelmetric.Int64Counter
}

// New wires a MeterProvider backed by the Prometheus exporter, so otel
// instruments appear on the same /metrics endpoint as the client_golang ones.
func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return newWithProvider(provider, serviceName)
}

// NewWithReader is used by tests to collect with a manual reader.
func NewWithReader(reader metric.Reader, serviceName string) *Observability {
	return newWithProvider(metric.NewMeterProvider(metric.WithReader(reader)), serviceName)
}

func newWithProvider(provider *metric.MeterProvider, serviceName string) *Observability {
	meter := provider.Meter(serviceName)

	claimCounter, _ := meter.Int64Counter(
		"claims.processed",
		otelmetric.WithDescription("Number of claim submissions processed"),
	)

	claimDuration, _ := meter.Float64Histogram(
		"claims.duration",
		otelmetric.WithDescription("Claim submission duration"),
		otelmetric.WithUnit("ms"),
	)

	toggleCounter, _ := meter.Int64Counter(
		"schedule.toggles",
		otelmetric.WithDescription("Number of schedule toggle requests"),
	)

	return &Observability{
		meterProvider: provider,
		meter:         meter,
		claimCounter:  claimCounter,
		claimDuration: claimDuration,
		toggleCounter: toggleCounter,
	}
}

func (o *Observability) RecordClaimProcessed(ctx context.Context, outcome string, dryRun bool) {
	if o == nil || o.claimCounter == nil {
		return
	}
	o.claimCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("outcome", outcome),
		attribute.Bool("dry_run", dryRun),
	))
}

func (o *Observability) RecordClaimDuration(ctx context.Context, duration time.Duration, outcome string) {
	if o == nil || o.claimDuration == nil {
		return
	}
	o.claimDuration.Record(ctx, float64(duration.Milliseconds()), otelmetric.WithAttributes(
		attribute.String("outcome", outcome),
	))
}

func (o *Observability) RecordScheduleToggle(ctx context.Context, action, result string) {
	if o == nil || o.toggleCounter == nil {
		return
	}
	o.toggleCounter.Add(ctx, 1, otelmetric.WithAttributes(
		attribute.String("action", action),
		attribute.String("result", result),
	))
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
