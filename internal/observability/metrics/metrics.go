package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	logins          metric.Int64Counter
	loginFailures   metric.Int64Counter
	tokenRefreshes  metric.Int64Counter
	tokenRevokes    metric.Int64Counter
	projectsCreated metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "workbench"
	}
	meter := provider.Meter(name)

	logins, err := meter.Int64Counter("workbench_logins_total")
	if err != nil {
		return nil, err
	}
	loginFailures, err := meter.Int64Counter("workbench_login_failures_total")
	if err != nil {
		return nil, err
	}
	tokenRefreshes, err := meter.Int64Counter("workbench_token_refreshes_total")
	if err != nil {
		return nil, err
	}
	tokenRevokes, err := meter.Int64Counter("workbench_token_revokes_total")
	if err != nil {
		return nil, err
	}
	projectsCreated, err := meter.Int64Counter("workbench_projects_created_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		logins:          logins,
		loginFailures:   loginFailures,
		tokenRefreshes:  tokenRefreshes,
		tokenRevokes:    tokenRevokes,
		projectsCreated: projectsCreated,
	}, nil
}

// RecordLogin increments successful login counts.
func (m *Metrics) RecordLogin(ctx context.Context) {
	if m == nil {
		return
	}
	m.logins.Add(ctx, 1)
}

// RecordLoginFailure increments failed login counts.
func (m *Metrics) RecordLoginFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.loginFailures.Add(ctx, 1)
}

// RecordTokenRefresh increments access token refresh counts.
func (m *Metrics) RecordTokenRefresh(ctx context.Context) {
	if m == nil {
		return
	}
	m.tokenRefreshes.Add(ctx, 1)
}

// RecordTokenRevoke increments refresh token revocation counts.
func (m *Metrics) RecordTokenRevoke(ctx context.Context) {
	if m == nil {
		return
	}
	m.tokenRevokes.Add(ctx, 1)
}

// RecordProjectCreated increments project creation counts.
func (m *Metrics) RecordProjectCreated(ctx context.Context, orgID string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("org_id", strings.TrimSpace(orgID)))
	m.projectsCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"org_id":      {},
	"endpoint":    {},
	"status_code": {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
