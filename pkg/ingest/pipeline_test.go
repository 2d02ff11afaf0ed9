package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/race50/race50-service-go/pkg/ingest/parse"
)

const sampleHeader = "SessionID,Track,Date,Lap,LapTime_ms,S1_ms,S2_ms,S3_ms,Notes"

func TestProcessHappyPath(t *testing.T) {
	content := strings.Join([]string{
		sampleHeader,
		"S1,Brands Hatch,2026-04-12,1,90000,30000,30000,30000,",
		"S1,Brands Hatch,2026-04-12,2,92000,31000,30500,30500,traffic",
		"S1,Brands Hatch,2026-04-12,3,91000,30500,30000,30500,",
	}, "\n")

	res, err := Process("session.csv", strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, res.Rows, 3)
	assert.Empty(t, res.RowErrors)
	assert.Equal(t, "S1", res.First().SessionKey)
	assert.Equal(t, "Brands Hatch", res.First().Track)
	assert.Equal(t, 90000, res.Summary.BestLapMS)
	assert.Equal(t, 92000, res.Summary.WorstLapMS)
	assert.Equal(t, 91000, res.Summary.AvgLapMS)
	assert.Equal(t, "traffic", res.Rows[1].Notes)
}

func TestProcessSemicolonDialect(t *testing.T) {
	content := strings.Join([]string{
		"SessionID;Track;Date;Lap;LapTime_ms;S1_ms;S2_ms;S3_ms;Notes",
		"S1;Brands Hatch;2026-04-12;1;90000;30000;30000;30000;",
	}, "\n")

	res, err := Process("session.txt", strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, 90000, res.Rows[0].TotalMS)
}

func TestProcessCollectsRowErrorsInOrder(t *testing.T) {
	content := strings.Join([]string{
		sampleHeader,
		"S1,Brands Hatch,2026-04-12,1,90000,30000,30000,30000,",
		"S1,Brands Hatch,2026-04-12,2,90000,30000,30000,30005,", // delta 5
		"S1,,2026-04-12,3,90000,30000,30000,30000,",             // missing track
		"S2,Brands Hatch,2026-04-12,4,90000,30000,30000,30000,", // other session
	}, "\n")

	res, err := Process("session.csv", strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	require.Len(t, res.RowErrors, 3)
	assert.Equal(t, 3, res.RowErrors[0].RowIndex)
	assert.Equal(t, "S1+S2+S3 != LapTime (delta 5 ms)", res.RowErrors[0].Message)
	assert.Equal(t, 4, res.RowErrors[1].RowIndex)
	assert.Equal(t, "missing required fields", res.RowErrors[1].Message)
	assert.Equal(t, 5, res.RowErrors[2].RowIndex)
	assert.Equal(t, "inconsistent SessionID", res.RowErrors[2].Message)
}

func TestProcessFatalInputs(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
		wantErr  error
	}{
		{
			name:     "unsupported extension",
			filename: "session.xlsx",
			content:  sampleHeader,
			wantErr:  ErrUnsupportedExtension,
		},
		{
			name:     "binary content",
			filename: "session.csv",
			content:  "PK\x03\x04\x00\x00",
			wantErr:  ErrBinaryContent,
		},
		{
			name:     "missing header",
			filename: "session.csv",
			content:  "\n\n",
			wantErr:  parse.ErrMissingHeader,
		},
		{
			name:     "header but no data rows",
			filename: "session.csv",
			content:  sampleHeader + "\n",
			wantErr:  ErrNoDataRows,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Process(tt.filename, strings.NewReader(tt.content))
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProcessFileTooLarge(t *testing.T) {
	huge := strings.NewReader(strings.Repeat("a", MaxUploadSize+1))
	_, err := Process("session.csv", huge)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestProcessAllRowsInvalid(t *testing.T) {
	content := strings.Join([]string{
		sampleHeader,
		"S1,Brands Hatch,2026-04-12,1,500,100,200,200,",
		"S1,Brands Hatch,not-a-date,2,90000,30000,30000,30000,",
	}, "\n")

	res, err := Process("session.csv", strings.NewReader(content))
	assert.Nil(t, res)

	var noValid *NoValidRowsError
	require.ErrorAs(t, err, &noValid)
	require.Len(t, noValid.RowErrors, 2)
	assert.Equal(t, "out of expected range", noValid.RowErrors[0].Message)
	assert.Equal(t, "invalid date", noValid.RowErrors[1].Message)
}
