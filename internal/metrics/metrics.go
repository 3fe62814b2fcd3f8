// Package metrics exports gallery activity as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/colonyops/gallery/internal/core/gallery"
)

// Recorder implements gallery.Observer on top of a Prometheus registry.
type Recorder struct {
	loads        *prometheus.CounterVec
	loadDuration prometheus.Histogram
	photos       prometheus.Gauge
	indexChanges *prometheus.CounterVec
	activeIndex  prometheus.Gauge
}

var _ gallery.Observer = (*Recorder)(nil)

// New registers the gallery collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gallery",
			Name:      "loads_total",
			Help:      "Completed photo loads by outcome.",
		}, []string{"phase"}),
		loadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "gallery",
			Name:      "load_duration_seconds",
			Help:      "Time spent fetching the photo sequence.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 8),
		}),
		photos: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "gallery",
			Name:      "photos",
			Help:      "Number of photos in the loaded sequence.",
		}),
		indexChanges: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gallery",
			Name:      "index_changes_total",
			Help:      "Active index changes by originating view.",
		}, []string{"origin"}),
		activeIndex: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "gallery",
			Name:      "active_index",
			Help:      "Currently active photo index.",
		}),
	}
}

// LoadFinished records the outcome of the one-shot load.
func (r *Recorder) LoadFinished(st gallery.LoadState, took time.Duration) {
	r.loads.WithLabelValues(st.Phase.String()).Inc()
	r.loadDuration.Observe(took.Seconds())
	r.photos.Set(float64(len(st.Sequence)))
}

// IndexChanged records an accepted active index change.
func (r *Recorder) IndexChanged(index int, origin gallery.Origin) {
	r.indexChanges.WithLabelValues(origin.String()).Inc()
	r.activeIndex.Set(float64(index))
}
