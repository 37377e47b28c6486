package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type MetricOpts struct {
	Name        string
	Description string
	Unit        string
}

// Counter wraps an OTel counter
type Counter struct {
	counter metric.Int64Counter
}

func NewCounter(opts MetricOpts) (*Counter, error) {
	c, err := GetMeter().Int64Counter(opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Counter{counter: c}, nil
}

// Inc is safe on a nil counter.
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	if c == nil {
		return
	}
	c.counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// Histogram wraps an OTel histogram
type Histogram struct {
	histogram metric.Float64Histogram
}

func NewHistogram(opts MetricOpts) (*Histogram, error) {
	h, err := GetMeter().Float64Histogram(opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Histogram{histogram: h}, nil
}

// Record is safe on a nil histogram.
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	if h == nil {
		return
	}
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// Metrics are the application instruments.
type Metrics struct {
	ReservationsCreated  *Counter
	ReservationsRejected *Counter
	PageViews            *Counter
	CreateDuration       *Histogram
}

func NewMetrics() (*Metrics, error) {
	created, err := NewCounter(MetricOpts{
		Name:        "menulink_reservations_created_total",
		Description: "Reservations accepted by the availability engine",
	})
	if err != nil {
		return nil, err
	}
	rejected, err := NewCounter(MetricOpts{
		Name:        "menulink_reservations_rejected_total",
		Description: "Reservation requests rejected, by reason",
	})
	if err != nil {
		return nil, err
	}
	views, err := NewCounter(MetricOpts{
		Name:        "menulink_page_views_total",
		Description: "Public menu page renders",
	})
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(MetricOpts{
		Name:        "menulink_reservation_create_duration_ms",
		Description: "Time spent validating and inserting a reservation",
		Unit:        "ms",
	})
	if err != nil {
		return nil, err
	}
	return &Metrics{
		ReservationsCreated:  created,
		ReservationsRejected: rejected,
		PageViews:            views,
		CreateDuration:       duration,
	}, nil
}

func ReasonAttr(reason string) attribute.KeyValue {
	return attribute.String("reason", reason)
}

func RestaurantAttr(id uint) attribute.KeyValue {
	return attribute.Int64("restaurant.id", int64(id))
}
