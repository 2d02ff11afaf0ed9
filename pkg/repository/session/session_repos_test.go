//nolint:errcheck // ok for test code
package session

import (
	"context"
	"fmt"
	"log"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/race50/race50-service-go/pkg/model"
	"github.com/race50/race50-service-go/pkg/repository"
	lapRepos "github.com/race50/race50-service-go/pkg/repository/lap"
	userRepos "github.com/race50/race50-service-go/pkg/repository/user"
	"github.com/race50/race50-service-go/testsupport/testdb"
)

func initTestDb(t *testing.T) (*pgxpool.Pool, *model.DbUser) {
	t.Helper()
	pool := testdb.InitTestDb()
	usr, err := userRepos.Create(context.Background(), pool, &model.DbUser{
		Username: "driver",
		APIKey:   "test-key",
	})
	if err != nil {
		log.Fatalf("initTestDb: %v\n", err)
	}
	return pool, usr
}

func sampleSession(userID int) *model.DbSession {
	extID := "S1"
	return &model.DbSession{
		UserID:     userID,
		ExternalID: &extID,
		Track:      "Brands Hatch",
		Date:       time.Date(2026, 4, 12, 0, 0, 0, 0, time.UTC),
		Summary: model.SessionSummary{
			LapsCount:          2,
			BestLapMS:          90000,
			BestLapNumber:      1,
			WorstLapMS:         92000,
			AvgLapMS:           91000,
			TheoreticalBestMS:  89500,
			ConsistencyPercent: 98.9,
		},
	}
}

func sampleLaps() []*model.DbLap {
	return []*model.DbLap{
		{LapNumber: 1, S1MS: 30000, S2MS: 30000, S3MS: 30000, TotalMS: 90000},
		{LapNumber: 2, S1MS: 31000, S2MS: 30500, S3MS: 30500, TotalMS: 92000},
	}
}

func TestSessionRepository_CreateWithLaps(t *testing.T) {
	pool, usr := initTestDb(t)

	stored, err := CreateWithLaps(context.Background(), pool,
		sampleSession(usr.ID), sampleLaps())
	require.NoError(t, err)
	assert.Greater(t, stored.ID, 0)
	assert.NotZero(t, stored.RecordStamp)

	laps, err := lapRepos.LoadBySessionID(context.Background(), pool, stored.ID)
	require.NoError(t, err)
	require.Len(t, laps, 2)
	assert.Equal(t, 1, laps[0].LapNumber)
	assert.Equal(t, 2, laps[1].LapNumber)
}

func TestSessionRepository_CreateWithLapsAtomic(t *testing.T) {
	pool, usr := initTestDb(t)

	// second lap violates the (session, lap_number) constraint;
	// the session row must not survive either
	laps := sampleLaps()
	laps[1].LapNumber = 1

	_, err := CreateWithLaps(context.Background(), pool, sampleSession(usr.ID), laps)
	require.ErrorIs(t, err, repository.ErrConflict)

	var sessions, lapRows int
	row := pool.QueryRow(context.Background(), "select count(*) from session")
	require.NoError(t, row.Scan(&sessions))
	row = pool.QueryRow(context.Background(), "select count(*) from lap")
	require.NoError(t, row.Scan(&lapRows))
	assert.Equal(t, 0, sessions)
	assert.Equal(t, 0, lapRows)
}

func TestSessionRepository_LoadByIDForUser(t *testing.T) {
	pool, usr := initTestDb(t)
	stored, err := CreateWithLaps(context.Background(), pool,
		sampleSession(usr.ID), sampleLaps())
	require.NoError(t, err)

	other, err := userRepos.Create(context.Background(), pool, &model.DbUser{
		Username: "rival",
		APIKey:   "other-key",
	})
	require.NoError(t, err)

	got, err := LoadByIDForUser(context.Background(), pool, stored.ID, usr.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brands Hatch", got.Track)
	assert.Equal(t, 90000, got.Summary.BestLapMS)

	_, err = LoadByIDForUser(context.Background(), pool, stored.ID, other.ID)
	assert.ErrorIs(t, err, repository.ErrNoData)
}

func TestSessionRepository_LoadOthersOnTrack(t *testing.T) {
	pool, usr := initTestDb(t)

	var ids []int
	for i := 0; i < 3; i++ {
		item := sampleSession(usr.ID)
		key := fmt.Sprintf("S%d", i+1)
		item.ExternalID = &key
		stored, err := CreateWithLaps(context.Background(), pool, item,
			[]*model.DbLap{
				{LapNumber: 1, S1MS: 30000, S2MS: 30000, S3MS: 30000, TotalMS: 90000},
			})
		require.NoError(t, err)
		ids = append(ids, stored.ID)
	}
	otherTrack := sampleSession(usr.ID)
	otherTrack.Track = "Spa"
	_, err := CreateWithLaps(context.Background(), pool, otherTrack, sampleLaps())
	require.NoError(t, err)

	got, err := LoadOthersOnTrack(context.Background(), pool,
		usr.ID, "Brands Hatch", ids[0])
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, item := range got {
		assert.NotEqual(t, ids[0], item.ID)
		assert.Equal(t, "Brands Hatch", item.Track)
	}
}

func TestSessionRepository_DeleteCascadesLaps(t *testing.T) {
	pool, usr := initTestDb(t)
	stored, err := CreateWithLaps(context.Background(), pool,
		sampleSession(usr.ID), sampleLaps())
	require.NoError(t, err)

	deleted, err := DeleteByID(context.Background(), pool, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	laps, err := lapRepos.LoadBySessionID(context.Background(), pool, stored.ID)
	require.NoError(t, err)
	assert.Empty(t, laps)
}

func TestSessionRepository_UpdateNotes(t *testing.T) {
	pool, usr := initTestDb(t)
	stored, err := CreateWithLaps(context.Background(), pool,
		sampleSession(usr.ID), sampleLaps())
	require.NoError(t, err)

	rows, err := UpdateNotes(context.Background(), pool, stored.ID, "wet track")
	require.NoError(t, err)
	assert.Equal(t, 1, rows)

	got, err := LoadByID(context.Background(), pool, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "wet track", got.Notes)
}
