package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "turnolibre"

// Collector groups the service counters. A nil *Collector is valid and
// records nothing, so packages can be used without metrics wired.
type Collector struct {
	registry *prometheus.Registry

	bookingsCreated    *prometheus.CounterVec
	bookingTransitions *prometheus.CounterVec
	stockConsumed      *prometheus.CounterVec
	storeErrors        *prometheus.CounterVec
}

func New() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		registry: reg,
		bookingsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bookings",
				Name:      "created_total",
				Help:      "Bookings created, by shop.",
			},
			[]string{"shop"},
		),
		bookingTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "bookings",
				Name:      "transitions_total",
				Help:      "Booking status transitions, by target status.",
			},
			[]string{"status"},
		),
		stockConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "stock",
				Name:      "consumed_units_total",
				Help:      "Units deducted from stock on booking completion.",
			},
			[]string{"kind"},
		),
		storeErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "store",
				Name:      "errors_total",
				Help:      "Storage operations that failed, by operation.",
			},
			[]string{"op"},
		),
	}

	reg.MustRegister(
		c.bookingsCreated,
		c.bookingTransitions,
		c.stockConsumed,
		c.storeErrors,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

func (c *Collector) BookingCreated(shop string) {
	if c == nil {
		return
	}
	c.bookingsCreated.WithLabelValues(shop).Inc()
}

func (c *Collector) BookingTransition(status string) {
	if c == nil {
		return
	}
	c.bookingTransitions.WithLabelValues(status).Inc()
}

func (c *Collector) StockConsumed(kind string, units int) {
	if c == nil || units <= 0 {
		return
	}
	c.stockConsumed.WithLabelValues(kind).Add(float64(units))
}

func (c *Collector) StoreError(op string) {
	if c == nil {
		return
	}
	c.storeErrors.WithLabelValues(op).Inc()
}

// Handler serves the registry in the prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
