package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

type DbUser struct {
	ID          int       `json:"id"`
	ExternalID  uuid.UUID `json:"externalId"`
	Username    string    `json:"username"`
	APIKey      string    `json:"-"`
	RecordStamp time.Time `json:"recordStamp"`
}
