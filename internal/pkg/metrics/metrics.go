package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rental_escrow"

// Webhook outcomes.
const (
	WebhookProcessed = "processed"
	WebhookDuplicate = "duplicate"
	WebhookIgnored   = "ignored"
	WebhookRejected  = "rejected"
)

// Registry owns a private prometheus registry so tests can build as many as they like.
type Registry struct {
	registry *prometheus.Registry

	bookingTransitions *prometheus.CounterVec
	escrowTransitions  *prometheus.CounterVec
	webhookEvents      *prometheus.CounterVec
	sweepRuns          *prometheus.CounterVec
	sweepDuration      prometheus.Histogram
	payoutRequests     prometheus.Counter
}

func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Booking status transitions committed, by target status.",
		},
		[]string{"status"},
	)
	r.escrowTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "escrow_transitions_total",
			Help:      "Escrow ledger actions committed, by action.",
		},
		[]string{"action"},
	)
	r.webhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_webhook_events_total",
			Help:      "Payment processor webhook deliveries, by outcome.",
		},
		[]string{"outcome"},
	)
	r.sweepRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeper_runs_total",
			Help:      "Sweeper passes, by job and result.",
		},
		[]string{"job", "result"},
	)
	r.sweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweeper_duration_seconds",
			Help:      "Duration of a full sweeper pass.",
			Buckets:   prometheus.DefBuckets,
		},
	)
	r.payoutRequests = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payout_requests_total",
			Help:      "Payout requests created.",
		},
	)

	r.registry.MustRegister(
		r.bookingTransitions,
		r.escrowTransitions,
		r.webhookEvents,
		r.sweepRuns,
		r.sweepDuration,
		r.payoutRequests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Registry) BookingTransition(status string) {
	r.bookingTransitions.WithLabelValues(status).Inc()
}

func (r *Registry) EscrowTransition(action string) {
	r.escrowTransitions.WithLabelValues(action).Inc()
}

func (r *Registry) WebhookEvent(outcome string) {
	r.webhookEvents.WithLabelValues(outcome).Inc()
}

func (r *Registry) SweepRun(job string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.sweepRuns.WithLabelValues(job, result).Inc()
}

func (r *Registry) ObserveSweep(seconds float64) {
	r.sweepDuration.Observe(seconds)
}

func (r *Registry) PayoutRequested(n int) {
	r.payoutRequests.Add(float64(n))
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the registry to tests.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
