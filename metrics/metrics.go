package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "postboard"

var (
	FetchRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_requests_total",
		Help:      "Placeholder API requests by endpoint and outcome.",
	}, []string{"endpoint", "outcome"})

	FetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Placeholder API request latency by endpoint.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "render_duration_seconds",
		Help:      "Time to build and append a batch of posts.",
		Buckets:   prometheus.DefBuckets,
	})

	CommentToggles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comment_toggles_total",
		Help:      "Comment toggle clicks handled.",
	})

	ClickListeners = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "click_listeners",
		Help:      "Post button click listeners currently attached across all pages.",
	})

	Sessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions",
		Help:      "Live page sessions.",
	})
)

const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
