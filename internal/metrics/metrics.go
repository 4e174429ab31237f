// Package metrics holds the Prometheus collectors of the web app.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Requests  *prometheus.CounterVec
	Visits    prometheus.Counter
	Documents *prometheus.CounterVec
	Logins    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ugel_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		Visits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ugel_visits_created_total",
			Help: "Visit records created.",
		}),
		Documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ugel_documents_generated_total",
			Help: "Documents generated by kind.",
		}, []string{"kind"}),
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ugel_login_attempts_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.Requests, m.Visits, m.Documents, m.Logins)
	return m
}

// Noop returns collectors that are not registered anywhere.
func Noop() *Metrics {
	return New(prometheus.NewRegistry())
}
