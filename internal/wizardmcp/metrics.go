package wizardmcp

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics counts wizard activity per feature. They are served at /metrics
// next to the MCP endpoint.
type metrics struct {
	started   *prometheus.CounterVec
	blocked   *prometheus.CounterVec
	submitted *prometheus.CounterVec
	cancelled *prometheus.CounterVec
	active    prometheus.Gauge
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		started: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "wizard_sessions_started_total",
			Help:      "Wizard sessions opened through start_wizard",
		}, []string{"feature"}),

		// step is the 1-based step that failed validation
		blocked: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "wizard_steps_blocked_total",
			Help:      "Forward moves or submits rejected by step validation",
		}, []string{"feature", "step"}),

		submitted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "wizard_submissions_total",
			Help:      "Wizards submitted successfully",
		}, []string{"feature"}),

		cancelled: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "augur",
			Name:      "wizard_sessions_cancelled_total",
			Help:      "Wizard sessions discarded through cancel_wizard",
		}, []string{"feature"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "augur",
			Name:      "wizard_sessions_active",
			Help:      "Wizard sessions currently held in memory",
		}),
	}
}

func (m *metrics) stepBlocked(feature string, step int) {
	m.blocked.WithLabelValues(feature, strconv.Itoa(step+1)).Inc()
}
