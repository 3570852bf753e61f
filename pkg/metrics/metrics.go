package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess    = "success"
	OutcomeValidation = "validation_error"
	OutcomeExtraction = "extraction_error"
	OutcomeRequest    = "request_error"
	OutcomeBusy       = "busy"
)

// Recorder counts analysis outcomes and timings.
type Recorder struct {
	analyses *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRecorder registers the collectors on reg. Pass prometheus.NewRegistry()
// in tests to keep them isolated from the default registry.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fin_analyst",
			Name:      "analyses_total",
			Help:      "Analysis invocations by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "fin_analyst",
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one analysis invocation, by stage.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),
	}
	reg.MustRegister(r.analyses, r.duration)
	return r
}

func (r *Recorder) Outcome(outcome string) {
	if r == nil {
		return
	}
	r.analyses.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Stage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.duration.WithLabelValues(stage).Observe(d.Seconds())
}
