package lap

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/race50/race50-service-go/pkg/model"
	"github.com/race50/race50-service-go/pkg/repository"
)

func Create(ctx context.Context, conn repository.Querier, item *model.DbLap) error {
	row := conn.QueryRow(ctx, `
	insert into lap (session_id, lap_number, s1_ms, s2_ms, s3_ms, total_ms, notes)
	values ($1,$2,$3,$4,$5,$6,$7)
	returning id
	`, item.SessionID, item.LapNumber, item.S1MS, item.S2MS, item.S3MS,
		item.TotalMS, item.Notes)

	return row.Scan(&item.ID)
}

func LoadBySessionID(ctx context.Context, conn repository.Querier, sessionID int) (
	[]*model.DbLap, error,
) {
	rows, err := conn.Query(ctx, `
	select id, session_id, lap_number, s1_ms, s2_ms, s3_ms, total_ms, notes
	from lap where session_id=$1 order by lap_number asc
	`, sessionID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows,
		func(row pgx.CollectableRow) (*model.DbLap, error) {
			return pgx.RowToAddrOfStructByPos[model.DbLap](row)
		})
}

// deletes all laps of a session, returns number of rows deleted.
func DeleteBySessionID(ctx context.Context, conn repository.Querier, sessionID int) (
	int, error,
) {
	cmdTag, err := conn.Exec(ctx, "delete from lap where session_id=$1", sessionID)
	if err != nil {
		return 0, err
	}
	return int(cmdTag.RowsAffected()), nil
}
