// Package aggregate reduces the accepted rows of an upload into the
// session summary statistics.
package aggregate

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"

	"github.com/race50/race50-service-go/pkg/model"
)

// Summarize computes the session statistics over a non-empty set of
// accepted rows. Pure function; callers reject empty uploads before
// getting here.
//
// Invariants: BestLapMS <= AvgLapMS <= WorstLapMS and
// TheoreticalBestMS <= BestLapMS.
func Summarize(rows []model.LapRow) model.SessionSummary {
	best := lo.MinBy(rows, func(a, b model.LapRow) bool {
		return a.TotalMS < b.TotalMS
	})
	worst := lo.MaxBy(rows, func(a, b model.LapRow) bool {
		return a.TotalMS > b.TotalMS
	})

	totals := lo.Map(rows, func(r model.LapRow, _ int) float64 {
		return float64(r.TotalMS)
	})
	mean, _ := stats.Mean(totals)
	stddev, _ := stats.StandardDeviationPopulation(totals)

	return model.SessionSummary{
		LapsCount:     len(rows),
		BestLapMS:     best.TotalMS,
		BestLapNumber: best.LapNumber,
		WorstLapMS:    worst.TotalMS,
		// round half up; totals are positive by validation
		AvgLapMS:           int(math.Floor(mean + 0.5)),
		TheoreticalBestMS:  theoreticalBest(rows),
		ConsistencyPercent: (1 - stddev/mean) * 100,
	}
}

// theoreticalBest sums the best sector times independently; the
// sectors need not come from the same lap.
func theoreticalBest(rows []model.LapRow) int {
	s1 := lo.Min(lo.Map(rows, func(r model.LapRow, _ int) int { return r.S1MS }))
	s2 := lo.Min(lo.Map(rows, func(r model.LapRow, _ int) int { return r.S2MS }))
	s3 := lo.Min(lo.Map(rows, func(r model.LapRow, _ int) int { return r.S3MS }))
	return s1 + s2 + s3
}
