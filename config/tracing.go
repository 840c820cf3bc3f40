package config

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/akeren/seam-landing/internal/log"
	"github.com/akeren/seam-landing/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

const defaultOTLPTracesPath = "/v1/traces"

// SetupTracing installs an OTLP/HTTP tracer provider when OTEL_TRACES_ENABLED
// is set. The returned shutdown flushes pending visit and signup spans; it is
// nil when tracing is off.
func SetupTracing(logger *log.Logger) (func(context.Context) error, error) {
	if !utils.IsTracingEnabled() {
		return nil, nil
	}

	endpoint := utils.GetEnvTrimmedOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")
	hostport, urlPath, insecure, err := parseOTLPEndpoint(endpoint)
	if err != nil {
		return nil, err
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(hostport),
		otlptracehttp.WithURLPath(urlPath),
	}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("setup tracing exporter: %w", err)
	}

	attrs := tracingResourceAttributes()
	res, err := resource.New(context.Background(), resource.WithAttributes(attrs...))
	if err != nil {
		return nil, fmt.Errorf("setup tracing resource: %w", err)
	}

	ratio := traceSampleRatio(utils.GetEnvTrimmed("OTEL_TRACES_SAMPLER_ARG"))
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(ratio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	logger.Info("Landing tracing enabled",
		"service", utils.OTelServiceName(),
		"environment", string(CurrentEnvironment()),
		"endpoint", endpoint,
		"sample_ratio", ratio)

	return tp.Shutdown, nil
}

func tracingResourceAttributes() []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("service.name", utils.OTelServiceName()),
		attribute.String("service.version", utils.GetEnvTrimmedOrDefault("APP_VERSION", "dev")),
		attribute.String("deployment.environment", string(CurrentEnvironment())),
	}
}

// traceSampleRatio parses OTEL_TRACES_SAMPLER_ARG, sampling everything when
// the value is missing or outside [0, 1].
func traceSampleRatio(raw string) float64 {
	if raw == "" {
		return 1
	}

	ratio, err := strconv.ParseFloat(raw, 64)
	if err != nil || ratio < 0 || ratio > 1 {
		return 1
	}
	return ratio
}

// parseOTLPEndpoint accepts http(s)://host:port[/path] or a bare host:port.
func parseOTLPEndpoint(raw string) (hostport string, urlPath string, insecure bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false, fmt.Errorf("empty OTLP endpoint")
	}

	if !strings.Contains(raw, "://") {
		if strings.ContainsAny(raw, "/?#") {
			return "", "", false, fmt.Errorf("invalid OTLP endpoint %q: a path needs a scheme, e.g. \"http://host:port/path\"", raw)
		}
		return raw, defaultOTLPTracesPath, true, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", false, fmt.Errorf("invalid OTLP endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return "", "", false, fmt.Errorf("invalid OTLP endpoint %q: missing host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", "", false, fmt.Errorf("unsupported OTLP endpoint scheme %q in %q", u.Scheme, raw)
	}

	urlPath = u.EscapedPath()
	if urlPath == "" || urlPath == "/" {
		urlPath = defaultOTLPTracesPath
	}

	return u.Host, urlPath, scheme == "http", nil
}
