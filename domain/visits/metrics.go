package visits

import (
	"github.com/akeren/seam-landing/pkg/circuitbreaker"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeRecorded    = "recorded"
	outcomeError       = "error"
	outcomeCircuitOpen = "circuit_open"
)

// Metrics tracks the landing visit counter. A nil *Metrics records nothing.
type Metrics struct {
	recorded     *prometheus.CounterVec
	circuitState prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		recorded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "landing_visits_recorded_total",
				Help: "Landing page visit increments by outcome.",
			},
			[]string{"outcome"},
		),
		circuitState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "visit_counter_circuit_state",
			Help: "Visit counter circuit breaker state (0 closed, 1 open, 2 half-open).",
		}),
	}

	for _, outcome := range []string{outcomeRecorded, outcomeError, outcomeCircuitOpen} {
		m.recorded.WithLabelValues(outcome)
	}
	return m
}

func (m *Metrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.recorded, m.circuitState}
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.recorded.WithLabelValues(outcome).Inc()
}

func (m *Metrics) setCircuitState(state circuitbreaker.CircuitState) {
	if m == nil {
		return
	}
	m.circuitState.Set(float64(state))
}
