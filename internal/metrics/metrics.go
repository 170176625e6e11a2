// Package metrics contains prometheus metrics of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// nolint:gochecknoglobals
var (
	// ViewsTotal counts view requests by result.
	ViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_views_total",
			Help: "Total number of profile view requests",
		},
		[]string{"result"},
	)

	// ProfileSavesTotal counts saved profiles.
	ProfileSavesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "resume_profile_saves_total",
			Help: "Total number of profile saves",
		},
	)

	// IndexerRequestDuration tracks requests to the NFT indexer.
	IndexerRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "resume_indexer_request_duration_seconds",
			Help:    "NFT indexer request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)

	// AvatarRendersTotal counts avatar requests by cache result.
	AvatarRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_avatar_renders_total",
			Help: "Total number of avatar requests",
		},
		[]string{"cache"},
	)
)

// Label values.
const (
	ResultRecorded  = "recorded"
	ResultDuplicate = "duplicate"

	StatusOK    = "ok"
	StatusError = "error"

	CacheHit  = "hit"
	CacheMiss = "miss"
)
