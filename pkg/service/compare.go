package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/race50/race50-service-go/pkg/model"
	"github.com/race50/race50-service-go/pkg/repository"
	lapRepos "github.com/race50/race50-service-go/pkg/repository/lap"
	sessionRepos "github.com/race50/race50-service-go/pkg/repository/session"
)

type CompareService struct {
	pool *pgxpool.Pool
}

func NewCompareService(pool *pgxpool.Pool) *CompareService {
	return &CompareService{pool: pool}
}

// Compare resolves the lap sets of the primary session and, when
// given, a secondary session. A secondary id that does not exist or
// belongs to another user yields no comparison instead of failing
// the primary lookup. secondaryID == 0 means none requested.
func (s *CompareService) Compare(
	ctx context.Context,
	user *model.DbUser,
	primaryID int,
	secondaryID int,
) (*Comparison, error) {
	primary, err := s.loadDetail(ctx, user, primaryID)
	if err != nil {
		return nil, err
	}

	ret := &Comparison{Primary: primary}
	if secondaryID != 0 {
		secondary, err := s.loadDetail(ctx, user, secondaryID)
		switch {
		case err == nil:
			ret.Secondary = secondary
		case errors.Is(err, repository.ErrNoData):
			// no comparison, primary lookup still served
		default:
			return nil, err
		}
	}

	candidates, err := sessionRepos.LoadOthersOnTrack(ctx, s.pool,
		user.ID, primary.Session.Track, primaryID)
	if err != nil {
		return nil, err
	}
	ret.Candidates = candidates
	return ret, nil
}

func (s *CompareService) loadDetail(
	ctx context.Context,
	user *model.DbUser,
	id int,
) (*SessionDetail, error) {
	item, err := sessionRepos.LoadByIDForUser(ctx, s.pool, id, user.ID)
	if err != nil {
		return nil, err
	}
	laps, err := lapRepos.LoadBySessionID(ctx, s.pool, item.ID)
	if err != nil {
		return nil, err
	}
	return &SessionDetail{Session: item, Laps: laps}, nil
}
