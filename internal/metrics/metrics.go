package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yougallery_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yougallery_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	GalleryPublicViews = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yougallery_gallery_public_views_total",
			Help: "Public gallery views served.",
		},
	)

	PhotoUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yougallery_photo_uploads_total",
			Help: "Uploaded files by result.",
		},
		[]string{"result"},
	)

	ObjectDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yougallery_object_deletes_total",
			Help: "Object storage deletions by result.",
		},
		[]string{"result"},
	)
)
