package model

import "time"

// LapRow is one accepted upload row after validation. Values are
// normalized (trimmed, parsed) and immutable once built.
type LapRow struct {
	SessionKey string
	Track      string
	Date       time.Time
	LapNumber  int
	S1MS       int
	S2MS       int
	S3MS       int
	TotalMS    int
	Notes      string
}

// RowError ties a rejection reason to the 1-based row position in the
// uploaded file (the header counts as row 1).
type RowError struct {
	RowIndex int    `json:"row"`
	Message  string `json:"message"`
}
