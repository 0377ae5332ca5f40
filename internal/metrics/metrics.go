package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Boarding holds the sequencing counters. A nil *Boarding is valid and records nothing.
type Boarding struct {
	runsGenerated      prometheus.Counter
	validationFailures prometheus.Counter
	cacheHits          prometheus.Counter
	bookingsPerRun     prometheus.Histogram
}

func NewBoarding(reg prometheus.Registerer) *Boarding {
	f := promauto.With(reg)
	return &Boarding{
		runsGenerated: f.NewCounter(prometheus.CounterOpts{
			Name: "boarding_runs_generated_total",
			Help: "Boarding sequences computed.",
		}),
		validationFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "boarding_validation_failures_total",
			Help: "Inputs rejected by booking validation.",
		}),
		cacheHits: f.NewCounter(prometheus.CounterOpts{
			Name: "boarding_cache_hits_total",
			Help: "Sequences served from cache.",
		}),
		bookingsPerRun: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "boarding_bookings_per_run",
			Help:    "Number of bookings in each sequenced run.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 7),
		}),
	}
}

func (m *Boarding) RunGenerated(bookings int) {
	if m == nil {
		return
	}
	m.runsGenerated.Inc()
	m.bookingsPerRun.Observe(float64(bookings))
}

func (m *Boarding) ValidationFailed() {
	if m == nil {
		return
	}
	m.validationFailures.Inc()
}

func (m *Boarding) CacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}
