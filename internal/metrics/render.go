package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renderTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cvpress",
			Subsystem: "render",
			Name:      "renders_total",
			Help:      "Layout passes by engine, template and outcome.",
		},
		[]string{"engine", "template", "outcome"},
	)

	renderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cvpress",
			Subsystem: "render",
			Name:      "render_duration_seconds",
			Help:      "Layout pass duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"engine", "template"},
	)

	renderPages = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cvpress",
			Subsystem: "render",
			Name:      "render_pages",
			Help:      "Pages produced per layout pass.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12},
		},
		[]string{"engine", "template"},
	)
)

// ObserveRender records one layout pass.
func ObserveRender(engine, templateName string, start time.Time, pages int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	renderTotal.WithLabelValues(engine, templateName, outcome).Inc()
	if err == nil {
		renderDuration.WithLabelValues(engine, templateName).Observe(time.Since(start).Seconds())
		renderPages.WithLabelValues(engine, templateName).Observe(float64(pages))
	}
}
