package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder(prometheus.NewRegistry())

	r.Outcome(OutcomeSuccess)
	r.Outcome(OutcomeSuccess)
	r.Outcome(OutcomeBusy)
	r.Stage("extract", 120*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.analyses.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.analyses.WithLabelValues(OutcomeBusy)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.analyses.WithLabelValues(OutcomeRequest)))
}

func TestRecorder_NilIsNoop(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.Outcome(OutcomeSuccess)
		r.Stage("request", time.Second)
	})
}
