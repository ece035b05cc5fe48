package observability

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/hyperterse/seeder/core/logger"
)

// Providers owns the SDK providers installed for one seeding process.
type Providers struct {
	config Config
	traces *sdktrace.TracerProvider
	meters *sdkmetric.MeterProvider
}

var (
	activeMu sync.RWMutex
	active   *Providers
)

// Setup resolves SEEDER_OTEL_* settings and installs global trace and meter
// providers. A non-empty serviceVersion replaces the "dev" default. When
// export is off the providers have no exporters attached.
func Setup(ctx context.Context, serviceVersion string) (*Providers, error) {
	cfg := ResolveConfig()
	if serviceVersion != "" && cfg.ServiceVersion == "dev" {
		cfg.ServiceVersion = serviceVersion
	}

	traces, err := buildTraceProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	meters, err := buildMeterProvider(ctx, cfg)
	if err != nil {
		_ = traces.Shutdown(ctx)
		return nil, err
	}

	log := logger.New("observability")
	otel.SetTracerProvider(traces)
	otel.SetMeterProvider(meters)
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		if err != nil {
			log.Warnf("Telemetry export: %v", err)
		}
	}))

	p := &Providers{config: cfg, traces: traces, meters: meters}
	activeMu.Lock()
	active = p
	activeMu.Unlock()
	return p, nil
}

// ActiveConfig returns the settings of the installed providers, or the zero
// Config when none are installed.
func ActiveConfig() Config {
	activeMu.RLock()
	defer activeMu.RUnlock()
	if active == nil {
		return Config{}
	}
	return active.config
}

// Shutdown flushes pending metrics, then spans, and uninstalls p from
// ActiveConfig. Errors from both providers are joined.
func (p *Providers) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	activeMu.Lock()
	if active == p {
		active = nil
	}
	activeMu.Unlock()

	var errs []error
	if p.meters != nil {
		errs = append(errs, p.meters.Shutdown(ctx))
	}
	if p.traces != nil {
		errs = append(errs, p.traces.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
