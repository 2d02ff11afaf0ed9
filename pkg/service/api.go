package service

import "github.com/race50/race50-service-go/pkg/model"

// UploadResult is handed back to the caller after a successful
// upload. RowErrors lists the rejected rows of an otherwise accepted
// file.
type UploadResult struct {
	Session   *model.DbSession `json:"session"`
	RowErrors []model.RowError `json:"rowErrors"`
}

// SessionDetail bundles a session with its ordered laps.
type SessionDetail struct {
	Session *model.DbSession `json:"session"`
	Laps    []*model.DbLap   `json:"laps"`
}

// Comparison aligns a primary session with an optional secondary one
// for side-by-side inspection. Candidates are the user's other
// sessions on the same track, newest first.
type Comparison struct {
	Primary    *SessionDetail     `json:"primary"`
	Secondary  *SessionDetail     `json:"secondary,omitempty"`
	Candidates []*model.DbSession `json:"candidates"`
}
