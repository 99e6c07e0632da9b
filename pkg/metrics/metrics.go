// Package metrics exposes Prometheus instrumentation for calendar mutations
// and view builds.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "contentcal"

// Recorder holds the calendar collectors. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry

	Mutations        *prometheus.CounterVec
	MutationDuration *prometheus.HistogramVec
	ViewBuilds       *prometheus.CounterVec
	Conflicts        prometheus.Gauge
	Entries          prometheus.Gauge
}

// NewRecorder registers the collectors on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		Mutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_total",
				Help:      "Total number of entry mutations",
			},
			[]string{"op", "outcome"},
		),
		MutationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "mutation_duration_seconds",
				Help:      "Mutation duration in seconds, including persistence",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
		ViewBuilds: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "view_builds_total",
				Help:      "Total number of calendar views built",
			},
			[]string{"mode"},
		),
		Conflicts: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "conflicting_entries",
				Help:      "Conflicting entries in the most recent view",
			},
		),
		Entries: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "entries",
				Help:      "Entries held in the store",
			},
		),
	}
}

// Mutation records one mutation and how long it took.
func (r *Recorder) Mutation(op string, started time.Time, err error) {
	if r == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.Mutations.WithLabelValues(op, outcome).Inc()
	r.MutationDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// ViewBuilt records a view build and the number of conflicts it carried.
func (r *Recorder) ViewBuilt(mode string, conflicts int) {
	if r == nil {
		return
	}
	r.ViewBuilds.WithLabelValues(mode).Inc()
	r.Conflicts.Set(float64(conflicts))
}

// StoreSize records the number of entries in the store.
func (r *Recorder) StoreSize(n int) {
	if r == nil {
		return
	}
	r.Entries.Set(float64(n))
}

// Registry returns the registry the collectors live on.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the collectors in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}
