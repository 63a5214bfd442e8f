package resolution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var resolutionsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modpanel_resolutions_total",
	Help: "The total number of resolving operations by outcome",
}, []string{"operation", "outcome"})

var resolutionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "modpanel_resolution_duration_seconds",
	Help:    "A histogram of resolving operation latencies",
	Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
}, []string{"operation"})

// A partial commit leaves a mutated punishment without an audit record.
var partialCommitsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "modpanel_partial_commits_total",
	Help: "Server store commits whose central store phase failed afterwards",
}, []string{"operation"})
