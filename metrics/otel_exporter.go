package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/marcelsud/webhook-scheduler/webhook"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards.
// It also implements webhook.Recorder.
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	collector     Collector
	registry      *prom.Registry

	// OTel meters and instruments
	meter               metric.Meter
	historySizeGauge    metric.Int64ObservableGauge
	statusCountGauge    metric.Int64ObservableGauge
	lastInvocationGauge metric.Int64ObservableGauge
	invocationCounter   metric.Int64Counter
	durationHistogram   metric.Float64Histogram
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter writing to registry in Prometheus format
func NewOTelExporter(collector Collector, registry *prom.Registry) (*OTelExporter, error) {
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"webhook-scheduler",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		collector:     collector,
		registry:      registry,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.historySizeGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.history.size",
		metric.WithDescription("Number of responses kept in the history"),
		metric.WithUnit("{responses}"),
		metric.WithInt64Callback(oe.observeHistorySize),
	)
	if err != nil {
		return fmt.Errorf("creating history size gauge: %w", err)
	}

	oe.statusCountGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.history.status.count",
		metric.WithDescription("Number of kept responses by status"),
		metric.WithUnit("{responses}"),
		metric.WithInt64Callback(oe.observeStatusCounts),
	)
	if err != nil {
		return fmt.Errorf("creating status count gauge: %w", err)
	}

	oe.lastInvocationGauge, err = oe.meter.Int64ObservableGauge(
		"webhook.history.last_invocation",
		metric.WithDescription("Unix time of the most recent response"),
		metric.WithUnit("s"),
		metric.WithInt64Callback(oe.observeLastInvocation),
	)
	if err != nil {
		return fmt.Errorf("creating last invocation gauge: %w", err)
	}

	oe.invocationCounter, err = oe.meter.Int64Counter(
		"webhook.invocations",
		metric.WithDescription("Number of webhook invocations"),
		metric.WithUnit("{invocations}"),
	)
	if err != nil {
		return fmt.Errorf("creating invocation counter: %w", err)
	}

	oe.durationHistogram, err = oe.meter.Float64Histogram(
		"webhook.invocation.duration",
		metric.WithDescription("Duration of webhook HTTP calls"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("creating duration histogram: %w", err)
	}

	return nil
}

// RecordInvocation counts a finished invocation and its duration
func (oe *OTelExporter) RecordInvocation(ctx context.Context, response webhook.Response) {
	attrs := metric.WithAttributes(
		attribute.String("webhook.target", response.Target),
		attribute.String("webhook.status", response.StatusMessage),
		attribute.String("http.status_code", strconv.Itoa(response.StatusCode)),
	)
	oe.invocationCounter.Add(ctx, 1, attrs)
	if response.Duration > 0 {
		oe.durationHistogram.Record(ctx, response.Duration.Seconds(), metric.WithAttributes(
			attribute.String("webhook.target", response.Target),
		))
	}
}

// observeHistorySize is a callback that reports the history size
func (oe *OTelExporter) observeHistorySize(ctx context.Context, observer metric.Int64Observer) error {
	size, err := oe.collector.GetHistorySize(ctx)
	if err != nil {
		return err
	}
	observer.Observe(size)
	return nil
}

// observeStatusCounts is a callback that reports kept responses by status
func (oe *OTelExporter) observeStatusCounts(ctx context.Context, observer metric.Int64Observer) error {
	statusCounts, err := oe.collector.GetStatusCounts(ctx)
	if err != nil {
		return err
	}

	for status, count := range statusCounts {
		observer.Observe(count, metric.WithAttributes(
			attribute.String("webhook.status", status),
		))
	}
	return nil
}

// observeLastInvocation is a callback that reports the latest response time
func (oe *OTelExporter) observeLastInvocation(ctx context.Context, observer metric.Int64Observer) error {
	last, ok, err := oe.collector.GetLastInvocation(ctx)
	if err != nil {
		return err
	}
	if ok {
		observer.Observe(last.Unix())
	}
	return nil
}

// ServeHTTP returns the handler exposing the registry in Prometheus format
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
