package tnc

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the optional Prometheus instrumentation for a Tnc
// handle, registered via WithMetrics. Grounded in the pack's exporter
// collectors (runZeroInc's pkg/exporter), adapted from a custom
// Collector into plain registered counters/gauges since a Tnc's counts
// don't need per-connection label fan-out.
type Metrics struct {
	framesSent           prometheus.Counter
	framesReceived       prometheus.Counter
	parseFailuresSkipped prometheus.Counter
	subscriberCount      prometheus.Gauge
	subscribersEvicted   prometheus.Counter
}

// NewMetrics builds a Metrics set and registers it with reg. callsign is
// attached as a constant label so multiple Tnc handles in one process
// (e.g. axmon watching several TNCs) don't collide in the registry.
func NewMetrics(reg prometheus.Registerer, callsign string) (*Metrics, error) {
	var constLabels = prometheus.Labels{"callsign": callsign}

	var m = &Metrics{
		framesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ax25kiss",
			Subsystem:   "tnc",
			Name:        "frames_sent_total",
			Help:        "AX.25 frames transmitted through this TNC handle.",
			ConstLabels: constLabels,
		}),
		framesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ax25kiss",
			Subsystem:   "tnc",
			Name:        "frames_received_total",
			Help:        "AX.25 frames received and successfully decoded.",
			ConstLabels: constLabels,
		}),
		parseFailuresSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ax25kiss",
			Subsystem:   "tnc",
			Name:        "parse_failures_skipped_total",
			Help:        "Received octet sequences that failed AX.25 decoding and were discarded.",
			ConstLabels: constLabels,
		}),
		subscriberCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ax25kiss",
			Subsystem:   "tnc",
			Name:        "subscribers",
			Help:        "Current number of live fan-out subscriptions.",
			ConstLabels: constLabels,
		}),
		subscribersEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ax25kiss",
			Subsystem:   "tnc",
			Name:        "subscribers_evicted_total",
			Help:        "Subscriptions dropped for falling behind the fan-out queue.",
			ConstLabels: constLabels,
		}),
	}

	for _, c := range []prometheus.Collector{
		m.framesSent, m.framesReceived, m.parseFailuresSkipped, m.subscriberCount, m.subscribersEvicted,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}
