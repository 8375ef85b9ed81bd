package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SocialActions counts mutating actions by name and outcome.
	SocialActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nano_social_actions_total",
		Help: "Total number of social actions by action and outcome",
	}, []string{"action", "outcome"})

	// NotificationsCreated counts notifications fanned out, by type.
	NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nano_social_notifications_created_total",
		Help: "Total number of notifications created by type",
	}, []string{"type"})

	// HTTPRequests counts served requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nano_social_http_requests_total",
		Help: "Total HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
)

// RecordAction increments SocialActions; a nil err counts as "ok".
func RecordAction(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	SocialActions.WithLabelValues(action, outcome).Inc()
}
