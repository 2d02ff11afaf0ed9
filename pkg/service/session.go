package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/race50/race50-service-go/pkg/model"
	"github.com/race50/race50-service-go/pkg/repository"
	lapRepos "github.com/race50/race50-service-go/pkg/repository/lap"
	sessionRepos "github.com/race50/race50-service-go/pkg/repository/session"
)

type SessionService struct {
	pool *pgxpool.Pool
}

func NewSessionService(pool *pgxpool.Pool) *SessionService {
	return &SessionService{pool: pool}
}

func (s *SessionService) List(ctx context.Context, user *model.DbUser) (
	[]*model.DbSession, error,
) {
	return sessionRepos.LoadByUser(ctx, s.pool, user.ID)
}

func (s *SessionService) Get(ctx context.Context, user *model.DbUser, id int) (
	*SessionDetail, error,
) {
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

func (s *SessionService) Delete(ctx context.Context, user *model.DbUser, id int) error {
	if _, err := sessionRepos.LoadByIDForUser(ctx, s.pool, id, user.ID); err != nil {
		return err
	}
	rows, err := sessionRepos.DeleteByID(ctx, s.pool, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNoData
	}
	return nil
}
