package metrics

import (
	"testing"
	"time"

	"github.com/poiesic/minutes/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordRun(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordRun(ResultSuccess, 250*time.Millisecond)
	m.RecordRun(ResultSuccess, time.Second)
	m.RecordRun(ResultNoTranscripts, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(ResultSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(ResultNoTranscripts)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RunsTotal.WithLabelValues(ResultFailed)))
}

func TestRecordStages(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordStages([]core.StageReport{
		{Stage: "themes", Outcome: core.StageFailed, Reason: "timeout"},
		{Stage: "decisions", Outcome: core.StageOK},
		{Stage: "themes", Outcome: core.StageFailed},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StageOutcomes.WithLabelValues("themes", "failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StageOutcomes.WithLabelValues("decisions", "ok")))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
