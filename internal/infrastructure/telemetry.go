package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ServiceName    = "salespulse"
	ServiceVersion = "1.0.0"
	MeterName      = "salespulse"
)

// Telemetry bundles the meter provider and the instruments the HTTP layer
// and the dashboard service record into. Metrics are exported through the
// Prometheus exporter and scraped from /metrics.
type Telemetry struct {
	MeterProvider *sdkmetric.MeterProvider
	Meter         metric.Meter
	Handler       http.Handler

	RequestCount    metric.Int64Counter
	RequestDuration metric.Float64Histogram
	DatasetRows     metric.Int64Gauge
	DatasetLoads    metric.Int64Counter
	LoadDuration    metric.Float64Histogram
}

// InitializeTelemetry sets up the OpenTelemetry meter provider with a
// Prometheus exporter and registers the service instruments.
func InitializeTelemetry(logger *slog.Logger) (*Telemetry, error) {
	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(MeterName)
	t := &Telemetry{
		MeterProvider: provider,
		Meter:         meter,
		Handler:       promhttp.Handler(),
	}

	if t.RequestCount, err = meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total HTTP requests")); err != nil {
		return nil, err
	}
	if t.RequestDuration, err = meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if t.DatasetRows, err = meter.Int64Gauge("dataset_rows",
		metric.WithDescription("Canonical rows in the loaded dataset")); err != nil {
		return nil, err
	}
	if t.DatasetLoads, err = meter.Int64Counter("dataset_loads_total",
		metric.WithDescription("Dataset load attempts by outcome")); err != nil {
		return nil, err
	}
	if t.LoadDuration, err = meter.Float64Histogram("dataset_load_duration_seconds",
		metric.WithDescription("Dataset load duration"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}

	logger.Info("telemetry initialized",
		slog.String("service", ServiceName),
		slog.String("exporter", "prometheus"))
	return t, nil
}

// RecordRequest records one served HTTP request.
func (t *Telemetry) RecordRequest(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if t == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	)
	t.RequestCount.Add(ctx, 1, attrs)
	t.RequestDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// RecordLoad records one dataset load attempt.
func (t *Telemetry) RecordLoad(ctx context.Context, rows int, elapsed time.Duration, err error) {
	if t == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	t.DatasetLoads.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	t.LoadDuration.Record(ctx, elapsed.Seconds())
	if err == nil {
		t.DatasetRows.Record(ctx, int64(rows))
	}
}

// Shutdown flushes and stops the meter provider.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.MeterProvider == nil {
		return nil
	}
	return t.MeterProvider.Shutdown(ctx)
}
