package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/race50/race50-service-go/pkg/model"
)

func lapRow(lap, s1, s2, s3, total int) model.LapRow {
	return model.LapRow{
		SessionKey: "S1",
		Track:      "Brands Hatch",
		LapNumber:  lap,
		S1MS:       s1,
		S2MS:       s2,
		S3MS:       s3,
		TotalMS:    total,
	}
}

func TestSummarize(t *testing.T) {
	rows := []model.LapRow{
		lapRow(1, 30000, 30000, 30000, 90000),
		lapRow(2, 31000, 30500, 30500, 92000),
		lapRow(3, 30500, 30000, 30500, 91000),
	}
	got := Summarize(rows)

	assert.Equal(t, 3, got.LapsCount)
	assert.Equal(t, 90000, got.BestLapMS)
	assert.Equal(t, 1, got.BestLapNumber)
	assert.Equal(t, 92000, got.WorstLapMS)
	assert.Equal(t, 91000, got.AvgLapMS)
	// best sectors: 30000 + 30000 + 30000
	assert.Equal(t, 90000, got.TheoreticalBestMS)
	// population stddev of [90000 92000 91000] is ~816.5
	assert.InDelta(t, 99.10, got.ConsistencyPercent, 0.01)
}

func TestSummarizeInvariants(t *testing.T) {
	rows := []model.LapRow{
		lapRow(4, 29000, 31000, 30500, 90500),
		lapRow(5, 30000, 29500, 31000, 90500),
		lapRow(6, 31000, 30000, 29000, 90000),
	}
	got := Summarize(rows)

	assert.LessOrEqual(t, got.BestLapMS, got.AvgLapMS)
	assert.LessOrEqual(t, got.AvgLapMS, got.WorstLapMS)
	assert.LessOrEqual(t, got.TheoreticalBestMS, got.BestLapMS)
	// best sectors come from three different laps here
	assert.Equal(t, 29000+29500+29000, got.TheoreticalBestMS)
}

func TestSummarizeEqualTotals(t *testing.T) {
	rows := []model.LapRow{
		lapRow(1, 30000, 30000, 30000, 90000),
		lapRow(2, 30000, 30000, 30000, 90000),
	}
	got := Summarize(rows)

	assert.Equal(t, 90000, got.BestLapMS)
	assert.Equal(t, 90000, got.WorstLapMS)
	assert.Equal(t, 90000, got.AvgLapMS)
	// stddev 0 means perfect consistency
	assert.Equal(t, 100.0, got.ConsistencyPercent)
}

func TestSummarizeRoundsHalfUp(t *testing.T) {
	rows := []model.LapRow{
		lapRow(1, 30000, 30000, 30000, 90000),
		lapRow(2, 30000, 30000, 30001, 90001),
	}
	got := Summarize(rows)
	// mean 90000.5 rounds up
	assert.Equal(t, 90001, got.AvgLapMS)
}

func TestSummarizeBestLapTieKeepsFirst(t *testing.T) {
	rows := []model.LapRow{
		lapRow(3, 30000, 30000, 30000, 90000),
		lapRow(1, 30000, 30000, 30000, 90000),
	}
	got := Summarize(rows)
	assert.Equal(t, 3, got.BestLapNumber)
}

func TestSummarizeIdempotent(t *testing.T) {
	rows := []model.LapRow{
		lapRow(1, 30000, 30000, 30000, 90000),
		lapRow(2, 31000, 30500, 30500, 92000),
	}
	first := Summarize(rows)
	second := Summarize(rows)
	assert.Equal(t, first, second)
}

func TestSummarizeSingleLap(t *testing.T) {
	rows := []model.LapRow{lapRow(1, 28000, 31000, 30000, 89000)}
	got := Summarize(rows)

	assert.Equal(t, 1, got.LapsCount)
	assert.Equal(t, 89000, got.BestLapMS)
	assert.Equal(t, 89000, got.WorstLapMS)
	assert.Equal(t, 89000, got.AvgLapMS)
	assert.Equal(t, 89000, got.TheoreticalBestMS)
	assert.Equal(t, 100.0, got.ConsistencyPercent)
}
