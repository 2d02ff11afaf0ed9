package model

import "time"

// DbSession is a persisted timing session (one race/track/day).
//
//nolint:tagliatelle // client compatibility
type DbSession struct {
	ID          int            `json:"id"`
	UserID      int            `json:"userId"`
	ExternalID  *string        `json:"externalId"`
	Track       string         `json:"track"`
	Date        time.Time      `json:"date"`
	Summary     SessionSummary `json:"summary"`
	Notes       string         `json:"notes"`
	RecordStamp time.Time      `json:"recordStamp"`
}

// DbLap belongs to exactly one session. LapNumber is unique within
// the session.
type DbLap struct {
	ID        int    `json:"id"`
	SessionID int    `json:"sessionId"`
	LapNumber int    `json:"lap"`
	S1MS      int    `json:"s1Ms"`
	S2MS      int    `json:"s2Ms"`
	S3MS      int    `json:"s3Ms"`
	TotalMS   int    `json:"totalMs"`
	Notes     string `json:"notes"`
}

// SessionSummary holds the statistics computed once per upload.
type SessionSummary struct {
	LapsCount          int     `json:"lapsCount"`
	BestLapMS          int     `json:"bestLapMs"`
	BestLapNumber      int     `json:"bestLapNumber"`
	WorstLapMS         int     `json:"worstLapMs"`
	AvgLapMS           int     `json:"avgLapMs"`
	TheoreticalBestMS  int     `json:"theoreticalBestMs"`
	ConsistencyPercent float64 `json:"consistencyPercent"`
}
