package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/dmitrijs2005/gophauth"

// AuthMetrics counts register and login attempts by outcome. A nil
// *AuthMetrics records nothing.
type AuthMetrics struct {
	registerTotal metric.Int64Counter
	loginTotal    metric.Int64Counter
}

// NewAuthMetrics creates the counters on mp. Pass otel.GetMeterProvider()
// to use whatever Setup installed.
func NewAuthMetrics(mp metric.MeterProvider) (*AuthMetrics, error) {
	meter := mp.Meter(meterName)

	registerTotal, err := meter.Int64Counter(
		"auth.register.total",
		metric.WithDescription("Registration attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	loginTotal, err := meter.Int64Counter(
		"auth.login.total",
		metric.WithDescription("Login attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	return &AuthMetrics{registerTotal: registerTotal, loginTotal: loginTotal}, nil
}

func (m *AuthMetrics) RecordRegister(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.registerTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (m *AuthMetrics) RecordLogin(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.loginTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
