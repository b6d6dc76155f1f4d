package report

import (
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/vk/prismc/internal/unit"
)

func TestSummarize(t *testing.T) {
	results := map[string]unit.Result{
		"/a.ts": {Success: true, Elapsed: 100 * time.Millisecond},
		"/b.ts": {Success: true, Elapsed: 200 * time.Millisecond},
		"/c.ts": {Success: false, Elapsed: 60 * time.Millisecond},
	}

	s := Summarize("run-1", results, 120*time.Millisecond)

	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Succeeded)
	assert.Equal(t, 1, s.Failed)
	assert.Equal(t, 120*time.Millisecond, s.MeanElapsed)
	assert.InDelta(t, 2.0/3.0, s.SuccessRate, 1e-9)
	// 360ms of compile time packed into 120ms of wall time.
	assert.InDelta(t, 3.0, s.EstimatedSpeedup, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize("run-2", map[string]unit.Result{}, time.Second)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.MeanElapsed)
	assert.Zero(t, s.SuccessRate)
	assert.Zero(t, s.EstimatedSpeedup)
}

func TestSummarizeZeroWallTime(t *testing.T) {
	s := Summarize("run-3", map[string]unit.Result{
		"/a.ts": {Success: true, Elapsed: time.Millisecond},
	}, 0)
	assert.Zero(t, s.EstimatedSpeedup)
}

func TestRenderGolden(t *testing.T) {
	s := Summary{
		RunID:            "0f0e0d0c-aaaa-bbbb-cccc-123456789abc",
		Total:            4,
		Succeeded:        3,
		Failed:           1,
		TotalElapsed:     250 * time.Millisecond,
		MeanElapsed:      125 * time.Millisecond,
		EstimatedSpeedup: 2.0,
		SuccessRate:      0.75,
	}

	g := goldie.New(t)
	g.Assert(t, "summary", []byte(Render(s)))
}
