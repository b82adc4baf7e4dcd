// Package metrics collects and exposes Prometheus counters for the booking
// flow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	bookingsCreated   prometheus.Counter
	bookingConflicts  prometheus.Counter
	bookingsCancelled prometheus.Counter
	bookingsPurged    prometheus.Counter
	sweepFailures     prometheus.Counter
}

func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		bookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "barberflow_bookings_created_total",
			Help: "Total successfully claimed slots.",
		}),
		bookingConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "barberflow_booking_conflicts_total",
			Help: "Total claims rejected by the slot uniqueness constraint.",
		}),
		bookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "barberflow_bookings_cancelled_total",
			Help: "Total bookings cancelled by their owner.",
		}),
		bookingsPurged: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "barberflow_bookings_purged_total",
			Help: "Total bookings removed by the retention sweeper.",
		}),
		sweepFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "barberflow_sweep_failures_total",
			Help: "Total retention sweeps that failed and will be retried.",
		}),
	}

	reg.MustRegister(
		c.bookingsCreated,
		c.bookingConflicts,
		c.bookingsCancelled,
		c.bookingsPurged,
		c.sweepFailures,
	)

	return c
}

func (c *Collector) BookingCreated()   { c.bookingsCreated.Inc() }
func (c *Collector) BookingConflict()  { c.bookingConflicts.Inc() }
func (c *Collector) BookingCancelled() { c.bookingsCancelled.Inc() }

func (c *Collector) BookingsPurged(n int64) {
	c.bookingsPurged.Add(float64(n))
}

func (c *Collector) SweepFailed() { c.sweepFailures.Inc() }

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
