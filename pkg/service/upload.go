package service

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/lo"

	"github.com/race50/race50-service-go/log"
	"github.com/race50/race50-service-go/pkg/ingest"
	"github.com/race50/race50-service-go/pkg/model"
	sessionrepos "github.com/race50/race50-service-go/pkg/repository/session"
)

type UploadService struct {
	pool *pgxpool.Pool
	log  *log.Logger
}

func NewUploadService(pool *pgxpool.Pool) *UploadService {
	return &UploadService{pool: pool, log: log.GetLogger("service.upload")}
}

// ProcessUpload runs the ingestion pipeline over the uploaded file
// and commits the session with its laps atomically. Fatal pipeline
// errors and repository.ErrConflict pass through to the caller; row
// rejections of an accepted upload are part of the result.
func (s *UploadService) ProcessUpload(
	ctx context.Context,
	user *model.DbUser,
	filename string,
	reader io.Reader,
) (*UploadResult, error) {
	res, err := ingest.Process(filename, reader)
	if err != nil {
		return nil, err
	}

	first := res.First()
	draft := &model.DbSession{
		UserID:     user.ID,
		ExternalID: externalID(first.SessionKey),
		Track:      first.Track,
		Date:       first.Date,
		Summary:    res.Summary,
		Notes:      first.Notes,
	}
	laps := lo.Map(res.Rows, func(r model.LapRow, _ int) *model.DbLap {
		return &model.DbLap{
			LapNumber: r.LapNumber,
			S1MS:      r.S1MS,
			S2MS:      r.S2MS,
			S3MS:      r.S3MS,
			TotalMS:   r.TotalMS,
			Notes:     r.Notes,
		}
	})

	stored, err := sessionrepos.CreateWithLaps(ctx, s.pool, draft, laps)
	if err != nil {
		return nil, err
	}
	s.log.Info("upload stored",
		log.Int("sessionId", stored.ID),
		log.Int("laps", len(laps)),
		log.Int("rejectedRows", len(res.RowErrors)))

	return &UploadResult{Session: stored, RowErrors: res.RowErrors}, nil
}

func externalID(key string) *string {
	if key == "" {
		return nil
	}
	return &key
}
