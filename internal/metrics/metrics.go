package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "agora"

// Metrics are the engine's counters. The zero value is not usable, build it with New.
type Metrics struct {
	Operations  *prometheus.CounterVec
	Transitions *prometheus.CounterVec
	Rejections  *prometheus.CounterVec
	Claims      *prometheus.CounterVec
}

// New creates the counters and registers them with reg when it is not nil.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Accepted engine operations.",
		}, []string{"op"}),
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Committed dispute status transitions.",
		}, []string{"from", "to"}),
		Rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rejections_total",
			Help:      "Rejected engine operations by error kind.",
		}, []string{"op", "kind"}),
		Claims: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "claims_total",
			Help:      "Settled claims by outcome.",
		}, []string{"outcome"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Operations, m.Transitions, m.Rejections, m.Claims} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) Operation(op string) {
	m.Operations.WithLabelValues(op).Inc()
}

func (m *Metrics) Transition(from, to string) {
	m.Transitions.WithLabelValues(from, to).Inc()
}

func (m *Metrics) Rejection(op, kind string) {
	m.Rejections.WithLabelValues(op, kind).Inc()
}

func (m *Metrics) Claim(outcome string) {
	m.Claims.WithLabelValues(outcome).Inc()
}
