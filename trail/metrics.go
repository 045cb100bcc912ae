package trail

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts sampler and scheduler activity for one or more trails
type Metrics struct {
	SamplesAccepted prometheus.Counter
	SamplesDropped  prometheus.Counter
	PointsPruned    prometheus.Counter
	Ticks           prometheus.Counter
	LivePoints      prometheus.Gauge
}

// NewMetrics creates the trail metrics and registers them on reg when reg is non-nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SamplesAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pointer_trail_samples_accepted_total",
			Help: "Pointer events accepted by the sampler.",
		}),
		SamplesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pointer_trail_samples_dropped_total",
			Help: "Pointer events dropped by the sampler throttle.",
		}),
		PointsPruned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pointer_trail_points_pruned_total",
			Help: "Sample points removed after exceeding their lifetime.",
		}),
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pointer_trail_ticks_total",
			Help: "Aging scheduler ticks.",
		}),
		LivePoints: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "pointer_trail_live_points",
			Help: "Sample points alive after the last tick.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.SamplesAccepted, m.SamplesDropped, m.PointsPruned, m.Ticks, m.LivePoints)
	}
	return m
}
