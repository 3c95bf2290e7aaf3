// Package observability provides metrics and tracing for the application.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BlogViews counts public blog fetches by slug.
	BlogViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_blog_views_total",
		Help: "Total number of public blog fetches",
	}, []string{"slug"})

	// ContactMessages counts inbound contact submissions.
	ContactMessages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portfolio_contact_messages_total",
		Help: "Total number of contact form submissions",
	})

	// UploadsTotal counts stored uploads by kind.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_uploads_total",
		Help: "Total number of stored uploads by kind",
	}, []string{"kind"})

	// UploadRejections counts uploads rejected before any disk write.
	UploadRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_upload_rejections_total",
		Help: "Total number of rejected uploads by reason",
	}, []string{"reason"})

	// AuthFailures counts rejected requests at the auth gate.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_auth_failures_total",
		Help: "Total number of authentication failures by reason",
	}, []string{"reason"})
)
