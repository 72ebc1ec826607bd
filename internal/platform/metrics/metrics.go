package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersCreated      prometheus.Counter
	Logins            prometheus.Counter
	AuthFailures      prometheus.Counter
	TokensIssued      prometheus.Counter
	CandidatesCreated prometheus.Counter
	CompaniesCreated  prometheus.Counter
	JobsCreated       prometheus.Counter
	EndpointLatency   *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talenthub_users_created_total",
			Help: "Total number of users registered",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talenthub_logins_total",
			Help: "Total number of successful logins",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talenthub_auth_failures_total",
			Help: "Total number of authentication failures",
		}),
		TokensIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talenthub_tokens_issued_total",
			Help: "Total number of access tokens issued",
		}),
		CandidatesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talenthub_candidates_created_total",
			Help: "Total number of candidates created",
		}),
		CompaniesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talenthub_companies_created_total",
			Help: "Total number of companies created",
		}),
		JobsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "talenthub_jobs_created_total",
			Help: "Total number of jobs created",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "talenthub_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// IncrementUsersCreated records a successful registration.
func (m *Metrics) IncrementUsersCreated() {
	if m != nil {
		m.UsersCreated.Inc()
	}
}

// IncrementLogins records a successful login.
func (m *Metrics) IncrementLogins() {
	if m != nil {
		m.Logins.Inc()
	}
}

// IncrementAuthFailures records a failed authentication attempt.
func (m *Metrics) IncrementAuthFailures() {
	if m != nil {
		m.AuthFailures.Inc()
	}
}

// IncrementTokensIssued records an issued access token.
func (m *Metrics) IncrementTokensIssued() {
	if m != nil {
		m.TokensIssued.Inc()
	}
}

// IncrementCandidatesCreated records a created candidate profile.
func (m *Metrics) IncrementCandidatesCreated() {
	if m != nil {
		m.CandidatesCreated.Inc()
	}
}

// IncrementCompaniesCreated records a created company.
func (m *Metrics) IncrementCompaniesCreated() {
	if m != nil {
		m.CompaniesCreated.Inc()
	}
}

// IncrementJobsCreated records a created job posting.
func (m *Metrics) IncrementJobsCreated() {
	if m != nil {
		m.JobsCreated.Inc()
	}
}

// ObserveEndpointLatency records handler latency for an endpoint label.
func (m *Metrics) ObserveEndpointLatency(endpoint string, seconds float64) {
	if m != nil {
		m.EndpointLatency.WithLabelValues(endpoint).Observe(seconds)
	}
}
