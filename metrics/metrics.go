// Package metrics exposes Prometheus collectors for the HTTP layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the engine-facing counters. Construct one per process with
// the registry that /metrics serves; tests pass their own registry.
type Metrics struct {
	ReservationsCreated  prometheus.Counter
	ReservationsRejected *prometheus.CounterVec
	AvailabilityQueries  prometheus.Counter
	QuoteQueries         prometheus.Counter
}

// Rejection reason label values.
const (
	ReasonCapacity       = "capacity"
	ReasonMinStay        = "min_stay"
	ReasonNoAvailability = "no_availability"
	ReasonValidation     = "validation"
)

// New registers the collectors with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReservationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "booking_reservations_created_total",
			Help: "Holds successfully created.",
		}),
		ReservationsRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_reservations_rejected_total",
			Help: "Reservation requests rejected, by precondition.",
		}, []string{"reason"}),
		AvailabilityQueries: f.NewCounter(prometheus.CounterOpts{
			Name: "booking_availability_queries_total",
			Help: "Availability lookups served.",
		}),
		QuoteQueries: f.NewCounter(prometheus.CounterOpts{
			Name: "booking_quote_queries_total",
			Help: "Price quotes served.",
		}),
	}
}
