// Package metrics collects Prometheus telemetry of the loyalty and
// checkout engines. A nil *Collector is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
)

const namespace = "salon_bonus"

const (
	OutcomeOK        = "ok"
	OutcomeDuplicate = "duplicate"
	OutcomeNoop      = "noop"
	OutcomeRejected  = "rejected"
	OutcomeContended = "contended"
	OutcomeFailed    = "failed"
)

type Collector struct {
	registry *prometheus.Registry

	accruals            *prometheus.CounterVec
	redemptions         *prometheus.CounterVec
	settlements         *prometheus.CounterVec
	settlementLatency   *prometheus.HistogramVec
	settledRevenue      *prometheus.CounterVec
	settlementsInFlight prometheus.Gauge
}

func New() *Collector {
	c := &Collector{registry: prometheus.NewRegistry()}

	c.accruals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loyalty",
			Name:      "accruals_total",
			Help:      "Point accruals by outcome",
		},
		[]string{"source", "outcome"},
	)

	c.redemptions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "loyalty",
			Name:      "redemptions_total",
			Help:      "Point redemptions by outcome",
		},
		[]string{"outcome"},
	)

	c.settlements = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "settlements_total",
			Help:      "Settlements by purchase type and outcome",
		},
		[]string{"purchase", "outcome"},
	)

	c.settlementLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "settlement_duration_seconds",
			Help:      "Time taken to settle a checkout",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"purchase"},
	)

	c.settledRevenue = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "settled_amount_total",
			Help:      "Sum of settled final amounts",
		},
		[]string{"purchase"},
	)

	c.settlementsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "settlements_in_flight",
			Help:      "Settlements currently holding an admission slot",
		},
	)

	c.registry.MustRegister(
		c.accruals,
		c.redemptions,
		c.settlements,
		c.settlementLatency,
		c.settledRevenue,
		c.settlementsInFlight,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return c
}

// Handler serves the collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

func (c *Collector) RecordAccrual(source, outcome string) {
	if c == nil {
		return
	}
	c.accruals.WithLabelValues(source, outcome).Inc()
}

func (c *Collector) RecordRedemption(outcome string) {
	if c == nil {
		return
	}
	c.redemptions.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordSettlement(purchase, outcome string, took time.Duration, amount decimal.Decimal) {
	if c == nil {
		return
	}
	c.settlements.WithLabelValues(purchase, outcome).Inc()
	c.settlementLatency.WithLabelValues(purchase).Observe(took.Seconds())
	if outcome == OutcomeOK {
		c.settledRevenue.WithLabelValues(purchase).Add(amount.InexactFloat64())
	}
}

func (c *Collector) SettlementStarted() {
	if c == nil {
		return
	}
	c.settlementsInFlight.Inc()
}

func (c *Collector) SettlementDone() {
	if c == nil {
		return
	}
	c.settlementsInFlight.Dec()
}
