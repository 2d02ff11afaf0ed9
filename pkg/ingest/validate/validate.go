// Package validate applies the per-row rules that turn raw upload
// lines into accepted lap rows.
package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/race50/race50-service-go/pkg/ingest/parse"
	"github.com/race50/race50-service-go/pkg/model"
)

// required column names, exact match
const (
	ColSessionID = "SessionID"
	ColTrack     = "Track"
	ColDate      = "Date"
	ColLap       = "Lap"
	ColLapTime   = "LapTime_ms"
	ColS1        = "S1_ms"
	ColS2        = "S2_ms"
	ColS3        = "S3_ms"
	ColNotes     = "Notes" // optional
)

var requiredColumns = []string{
	ColSessionID, ColTrack, ColDate, ColLap, ColLapTime, ColS1, ColS2, ColS3,
}

const (
	// plausible lap time window: 10s .. 5min
	MinLapTimeMS = 10_000
	MaxLapTimeMS = 300_000
	// rounding tolerance between sector sum and lap time
	SectorToleranceMS = 2
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"01/02/2006",
}

// Validator checks upload rows one at a time, in file order. The
// session identifier of the first accepted row pins the identifier
// all later rows must carry.
type Validator struct {
	sessionKey string
	pinned     bool
}

func New() *Validator {
	return &Validator{}
}

// Row validates a single raw row. Exactly one of the results is
// non-nil: an accepted lap row or the rejection for rowIndex. The
// rules short-circuit at the first failure; a rejection never stops
// the scan of later rows.
//
//nolint:cyclop // rule sequence reads best in one place
func (v *Validator) Row(raw parse.RawRow, rowIndex int) (*model.LapRow, *model.RowError) {
	reject := func(msg string) (*model.LapRow, *model.RowError) {
		return nil, &model.RowError{RowIndex: rowIndex, Message: msg}
	}

	for _, col := range requiredColumns {
		if strings.TrimSpace(raw[col]) == "" {
			return reject("missing required fields")
		}
	}

	lapNumber, okLap := parsePositiveInt(raw[ColLap])
	total, okTotal := parsePositiveInt(raw[ColLapTime])
	s1, okS1 := parsePositiveInt(raw[ColS1])
	s2, okS2 := parsePositiveInt(raw[ColS2])
	s3, okS3 := parsePositiveInt(raw[ColS3])
	if !okLap || !okTotal || !okS1 || !okS2 || !okS3 {
		return reject("values must be positive")
	}

	date, ok := parseDate(raw[ColDate])
	if !ok {
		return reject("invalid date")
	}

	if total < MinLapTimeMS || total > MaxLapTimeMS {
		return reject("out of expected range")
	}

	if delta := abs(s1 + s2 + s3 - total); delta > SectorToleranceMS {
		return reject(fmt.Sprintf("S1+S2+S3 != LapTime (delta %d ms)", delta))
	}

	sessionKey := strings.TrimSpace(raw[ColSessionID])
	if v.pinned && sessionKey != v.sessionKey {
		return reject("inconsistent SessionID")
	}

	if !v.pinned {
		v.sessionKey = sessionKey
		v.pinned = true
	}
	return &model.LapRow{
		SessionKey: sessionKey,
		Track:      strings.TrimSpace(raw[ColTrack]),
		Date:       date,
		LapNumber:  lapNumber,
		S1MS:       s1,
		S2MS:       s2,
		S3MS:       s3,
		TotalMS:    total,
		Notes:      strings.TrimSpace(raw[ColNotes]),
	}, nil
}

func parsePositiveInt(s string) (int, bool) {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || val <= 0 {
		return 0, false
	}
	return val, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
