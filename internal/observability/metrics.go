package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// Metrics holds the pipeline's Prometheus collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	StepDuration *prometheus.HistogramVec
	Runs         *prometheus.CounterVec
	Rejections   prometheus.Counter
	InFlight     prometheus.Gauge
	Tokens       *prometheus.CounterVec
	Cost         prometheus.Counter
}

// NewMetrics registers the pipeline collectors plus the Go and process collectors
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "resu_step_duration_seconds",
				Help:    "Duration of pipeline steps in seconds",
				Buckets: []float64{0.05, 0.25, 1, 2.5, 5, 10, 20, 40, 80, 120},
			},
			[]string{"step", "outcome"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resu_runs_total",
				Help: "Total number of pipeline operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		Rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resu_concurrency_rejections_total",
			Help: "Total number of operations rejected because a run was in flight",
		}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "resu_run_in_flight",
			Help: "1 while a pipeline operation holds the lease",
		}),
		Tokens: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "resu_tokens_total",
				Help: "Total tokens consumed by completion calls",
			},
			[]string{"step", "kind"},
		),
		Cost: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resu_cost_usd_total",
			Help: "Estimated completion spend in USD",
		}),
	}

	reg.MustRegister(
		m.StepDuration, m.Runs, m.Rejections, m.InFlight, m.Tokens, m.Cost,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// InitSteps creates the success and failure duration series for each step so
// they are exported at zero before the first run
func (m *Metrics) InitSteps(steps ...string) {
	for _, step := range steps {
		m.StepDuration.WithLabelValues(step, OutcomeSuccess)
		m.StepDuration.WithLabelValues(step, OutcomeFailure)
	}
}

// ObserveStep records one step's duration
func (m *Metrics) ObserveStep(step, outcome string, d time.Duration) {
	m.StepDuration.WithLabelValues(step, outcome).Observe(d.Seconds())
}

// ObserveRun counts one Start or Confirm by outcome
func (m *Metrics) ObserveRun(operation, outcome string) {
	m.Runs.WithLabelValues(operation, outcome).Inc()
	if outcome == OutcomeRejected {
		m.Rejections.Inc()
	}
}

// ObserveUsage adds a completion's tokens and cost
func (m *Metrics) ObserveUsage(step string, promptTokens, completionTokens int, cost float64) {
	m.Tokens.WithLabelValues(step, "prompt").Add(float64(promptTokens))
	m.Tokens.WithLabelValues(step, "completion").Add(float64(completionTokens))
	m.Cost.Add(cost)
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
