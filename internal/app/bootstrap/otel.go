package bootstrap

import (
	"context"
	"fmt"

	"github.com/stringfold/ally/internal/cfg"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// InitOtel installs the global propagator and, when an OTLP endpoint is
// configured, a tracer provider exporting over gRPC. Without an endpoint
// spans stay in the no-op provider.
func InitOtel(ctx context.Context, obsCfg *cfg.OtelConfig) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !obsCfg.Enabled() {
		return func(context.Context) error { return nil }, nil
	}

	res, err := newResource(ctx, obsCfg.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(obsCfg.OTLPEndpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("setup tracing: %w", err)
	}

	tracerProvider := newTracerProvider(res, sdktrace.WithBatcher(exporter), obsCfg.SamplerRatio)
	otel.SetTracerProvider(tracerProvider)

	shutdown := func(ctx context.Context) error {
		if err := tracerProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("tracer provider: %w", err)
		}
		return nil
	}

	return shutdown, nil
}

func newResource(ctx context.Context, serviceName string) (*resource.Resource, error) {
	return resource.New(ctx,
		resource.WithAttributes(semconv.ServiceNameKey.String(serviceName)),
	)
}

func newTracerProvider(res *resource.Resource, processor sdktrace.TracerProviderOption, samplerRatio float64) *sdktrace.TracerProvider {
	sampler := sdktrace.ParentBased(sdktrace.TraceIDRatioBased(samplerRatio))

	return sdktrace.NewTracerProvider(
		processor,
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)
}
