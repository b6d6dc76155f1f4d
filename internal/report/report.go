// Package report aggregates final batch results into summary statistics.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/vk/prismc/internal/unit"
)

// Summary holds the aggregate outcome of one batch run. EstimatedSpeedup is
// a rough measure of parallelism achieved: the sum of per-attempt elapsed
// time over the batch wall time.
type Summary struct {
	RunID            string
	Total            int
	Succeeded        int
	Failed           int
	TotalElapsed     time.Duration
	MeanElapsed      time.Duration
	EstimatedSpeedup float64
	SuccessRate      float64
}

// Summarize computes the batch summary from the final results map.
func Summarize(runID string, results map[string]unit.Result, totalElapsed time.Duration) Summary {
	s := Summary{
		RunID:        runID,
		Total:        len(results),
		TotalElapsed: totalElapsed,
	}
	var sum time.Duration
	for _, res := range results {
		sum += res.Elapsed
		if res.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	if s.Total > 0 {
		s.MeanElapsed = sum / time.Duration(s.Total)
		s.SuccessRate = float64(s.Succeeded) / float64(s.Total)
	}
	if totalElapsed > 0 {
		s.EstimatedSpeedup = float64(sum) / float64(totalElapsed)
	}
	return s
}

// Render formats the summary for the CLI.
func Render(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Batch %s\n", s.RunID)
	fmt.Fprintf(&b, "  files:        %d\n", s.Total)
	fmt.Fprintf(&b, "  succeeded:    %d\n", s.Succeeded)
	fmt.Fprintf(&b, "  failed:       %d\n", s.Failed)
	fmt.Fprintf(&b, "  success rate: %.1f%%\n", s.SuccessRate*100)
	fmt.Fprintf(&b, "  wall time:    %s\n", s.TotalElapsed)
	fmt.Fprintf(&b, "  mean compile: %s\n", s.MeanElapsed)
	fmt.Fprintf(&b, "  est. speedup: %.2fx\n", s.EstimatedSpeedup)
	return b.String()
}
