package waitlist

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeCreated   = "created"
	outcomeInvalid   = "invalid"
	outcomeDuplicate = "duplicate"
	outcomeError     = "error"
)

// Metrics counts signup attempts by outcome. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	signups *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		signups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "waitlist_signups_total",
				Help: "Waitlist signup attempts by outcome.",
			},
			[]string{"outcome"},
		),
	}

	for _, outcome := range []string{outcomeCreated, outcomeInvalid, outcomeDuplicate, outcomeError} {
		m.signups.WithLabelValues(outcome)
	}
	return m
}

func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.signups}
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.signups.WithLabelValues(outcome).Inc()
}
