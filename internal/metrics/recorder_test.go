package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ Recorder = NoopRecorder{}
var _ Recorder = (*PrometheusRecorder)(nil)

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.ObserveStageDuration("emit", time.Second)
		r.ObserveBuildDuration(time.Second)
		r.IncStageResult("emit", ResultSuccess)
		r.IncBuildOutcome(BuildSuccess)
		r.SetEmitChanged("astro", true)
	})
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.ObserveStageDuration("emit", time.Second)
		pr.IncBuildOutcome(BuildFailed)
		pr.SetEmitChanged("hugo", false)
	})
	assert.NoError(t, pr.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStageDuration("emit", 150*time.Millisecond)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncStageResult("emit", ResultSuccess)
	pr.IncStageResult("generate", ResultSkipped)
	pr.IncBuildOutcome(BuildSuccess)
	pr.SetEmitChanged("astro", true)

	assert.InDelta(t, 1, testutil.ToFloat64(pr.stageResults.WithLabelValues("emit", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.stageResults.WithLabelValues("generate", "skipped")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.buildOutcome.WithLabelValues("success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(pr.emitChanged.WithLabelValues("astro")), 0)
	assert.Positive(t, testutil.ToFloat64(pr.lastSuccess))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncBuildOutcome(BuildFailed)

	path := filepath.Join(t.TempDir(), "textfile", "docsite.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, `docsite_build_outcomes_total{outcome="failed"} 1`), text)
	assert.Contains(t, text, "# TYPE docsite_build_duration_seconds histogram")
}
