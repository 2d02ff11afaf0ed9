package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/race50/race50-service-go/pkg/model"
	"github.com/race50/race50-service-go/pkg/repository"
	"github.com/race50/race50-service-go/pkg/repository/lap"
)

var selector = `select s.id, s.user_id, s.external_id, s.track, s.session_date,
	s.laps_count, s.best_lap_ms, s.best_lap_number, s.worst_lap_ms, s.avg_lap_ms,
	s.tbl_ms, s.consistency_percent, s.notes, s.record_stamp
	from session s`

// CreateWithLaps writes the session and all its laps in one
// transaction. Either every record is durably written or none is; a
// constraint violation maps to repository.ErrConflict.
func CreateWithLaps(
	ctx context.Context,
	pool *pgxpool.Pool,
	item *model.DbSession,
	laps []*model.DbLap,
) (*model.DbSession, error) {
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if err := Create(ctx, tx, item); err != nil {
			return err
		}
		for _, l := range laps {
			l.SessionID = item.ID
			if err := lap.Create(ctx, tx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return item, nil
}

func Create(ctx context.Context, conn repository.Querier, item *model.DbSession) error {
	row := conn.QueryRow(ctx, `
	insert into session (user_id, external_id, track, session_date,
		laps_count, best_lap_ms, best_lap_number, worst_lap_ms, avg_lap_ms,
		tbl_ms, consistency_percent, notes)
	values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	returning id, record_stamp
	`, item.UserID, item.ExternalID, item.Track, item.Date,
		item.Summary.LapsCount, item.Summary.BestLapMS, item.Summary.BestLapNumber,
		item.Summary.WorstLapMS, item.Summary.AvgLapMS, item.Summary.TheoreticalBestMS,
		item.Summary.ConsistencyPercent, item.Notes)

	return row.Scan(&item.ID, &item.RecordStamp)
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.DbSession, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where s.id=$1", selector), id)
	return readData(row)
}

// LoadByIDForUser loads a session only when it belongs to the user.
func LoadByIDForUser(ctx context.Context, conn repository.Querier, id, userID int) (
	*model.DbSession, error,
) {
	row := conn.QueryRow(ctx,
		fmt.Sprintf("%s where s.id=$1 and s.user_id=$2", selector), id, userID)
	return readData(row)
}

func LoadByUser(ctx context.Context, conn repository.Querier, userID int) (
	[]*model.DbSession, error,
) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf("%s where s.user_id=$1 order by s.record_stamp desc", selector),
		userID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// LoadOthersOnTrack lists the user's other sessions on the same
// track, newest first. Candidates for a head-to-head comparison.
func LoadOthersOnTrack(
	ctx context.Context,
	conn repository.Querier,
	userID int,
	track string,
	excludeID int,
) ([]*model.DbSession, error) {
	rows, err := conn.Query(ctx,
		fmt.Sprintf(`%s where s.user_id=$1 and s.track=$2 and s.id<>$3
		order by s.record_stamp desc`, selector),
		userID, track, excludeID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func UpdateNotes(ctx context.Context, conn repository.Querier, id int, notes string) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx,
		"update session set notes=$1 where id=$2", notes, id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

// deletes an entry from the database, returns number of rows deleted.
// Laps are removed by the cascade.
func DeleteByID(ctx context.Context, conn repository.Querier, id int) (int, error) {
	cmdTag, err := conn.Exec(ctx, "delete from session where id=$1", id)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}

func collect(rows pgx.Rows) ([]*model.DbSession, error) {
	ret := make([]*model.DbSession, 0)
	defer rows.Close()
	for rows.Next() {
		item, err := readData(rows)
		if err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

func readData(row pgx.Row) (*model.DbSession, error) {
	var item model.DbSession
	if err := row.Scan(&item.ID, &item.UserID, &item.ExternalID, &item.Track,
		&item.Date, &item.Summary.LapsCount, &item.Summary.BestLapMS,
		&item.Summary.BestLapNumber, &item.Summary.WorstLapMS,
		&item.Summary.AvgLapMS, &item.Summary.TheoreticalBestMS,
		&item.Summary.ConsistencyPercent, &item.Notes,
		&item.RecordStamp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoData
		}
		return nil, err
	}
	return &item, nil
}
