package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Requests  *prometheus.CounterVec // resource, verb, outcome
	PollTicks *prometheus.CounterVec // name
	PollSkips *prometheus.CounterVec // name
	PollErrs  *prometheus.CounterVec // name
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_client_requests_total",
			Help: "API requests by resource, verb and outcome.",
		}, []string{"resource", "verb", "outcome"}),
		PollTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_client_poll_ticks_total",
			Help: "Poll ticks that launched a fetch.",
		}, []string{"poller"}),
		PollSkips: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_client_poll_skips_total",
			Help: "Poll ticks skipped because a fetch was still in flight.",
		}, []string{"poller"}),
		PollErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hostel_client_poll_errors_total",
			Help: "Fetch failures swallowed by the poll loop.",
		}, []string{"poller"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.PollTicks, m.PollSkips, m.PollErrs)
	}
	return m
}

// Nop returns an unregistered set, safe to use when metrics are not exported.
func Nop() *Metrics {
	return New(nil)
}
