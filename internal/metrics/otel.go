package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Recorder пишет бизнес-счётчики регистрации через OTel meter
// Реализует service.MetricsRecorder
type Recorder struct {
	registered      metric.Int64Counter
	registeredUnits metric.Int64Counter
	rejections      metric.Int64Counter
}

// NewRecorder создаёт счётчики на переданном meter
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	registered, err := meter.Int64Counter("products_registered_total",
		metric.WithDescription("Total number of registered products"),
	)
	if err != nil {
		return nil, fmt.Errorf("products_registered_total counter: %w", err)
	}

	registeredUnits, err := meter.Int64Counter("product_units_registered_total",
		metric.WithDescription("Total quantity of units across registered products"),
	)
	if err != nil {
		return nil, fmt.Errorf("product_units_registered_total counter: %w", err)
	}

	rejections, err := meter.Int64Counter("product_rejections_total",
		metric.WithDescription("Total number of rejected registrations by reason"),
	)
	if err != nil {
		return nil, fmt.Errorf("product_rejections_total counter: %w", err)
	}

	return &Recorder{
		registered:      registered,
		registeredUnits: registeredUnits,
		rejections:      rejections,
	}, nil
}

// RecordRegistered учитывает успешную регистрацию
func (r *Recorder) RecordRegistered(ctx context.Context, quantity int) {
	r.registered.Add(ctx, 1)
	r.registeredUnits.Add(ctx, int64(quantity))
}

// RecordRejected учитывает отказ с причиной
func (r *Recorder) RecordRejected(ctx context.Context, reason string) {
	r.rejections.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
