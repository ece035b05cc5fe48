package observability

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
)

type metrics struct {
	storeOpsTotal     metric.Int64Counter
	storeOpDuration   metric.Float64Histogram
	documentsInserted metric.Int64Counter
	stageDuration     metric.Float64Histogram
}

var (
	metricsOnce sync.Once
	m           metrics
)

func buildMeterProvider(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	if !cfg.Enabled || !cfg.MetricsEnabled {
		return sdkmetric.NewMeterProvider(), nil
	}

	exporter, err := otlpmetricgrpc.New(
		ctx,
		otlpmetricgrpc.WithEndpoint(cfg.OTLPEndpoint),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create otlp metric exporter: %w", err)
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironmentName(cfg.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create metric resource: %w", err)
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter),
		),
	), nil
}

func initInstruments() {
	metricsOnce.Do(func() {
		meter := otel.Meter("seeder/store")
		m.storeOpsTotal, _ = meter.Int64Counter("seeder.store.operations_total")
		m.storeOpDuration, _ = meter.Float64Histogram("seeder.store.operation_duration_ms")
		m.documentsInserted, _ = meter.Int64Counter("seeder.store.documents_inserted_total")
		m.stageDuration, _ = meter.Float64Histogram("seeder.stage.duration_ms")
	})
}

func RecordStoreOperation(ctx context.Context, storeName, collection, operation string, success bool, durationMS float64) {
	initInstruments()
	attrs := metric.WithAttributes(
		attribute.String(AttrStoreName, storeName),
		attribute.String(AttrCollection, collection),
		attribute.String(AttrOperation, operation),
		attribute.Bool("success", success),
	)
	m.storeOpsTotal.Add(ctx, 1, attrs)
	m.storeOpDuration.Record(ctx, durationMS, attrs)
}

func RecordDocumentsInserted(ctx context.Context, storeName, collection string, count int) {
	initInstruments()
	m.documentsInserted.Add(ctx, int64(count), metric.WithAttributes(
		attribute.String(AttrStoreName, storeName),
		attribute.String(AttrCollection, collection),
	))
}

func RecordStage(ctx context.Context, stage string, skipped bool, durationMS float64) {
	initInstruments()
	m.stageDuration.Record(ctx, durationMS, metric.WithAttributes(
		attribute.String(AttrStage, stage),
		attribute.Bool("skipped", skipped),
	))
}
