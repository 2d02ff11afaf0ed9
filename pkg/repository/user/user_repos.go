package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/race50/race50-service-go/pkg/model"
	"github.com/race50/race50-service-go/pkg/repository"
)

var selector = `select u.id, u.external_id, u.username, u.api_key, u.record_stamp
	from r50user u`

func Create(ctx context.Context, conn repository.Querier, user *model.DbUser) (
	*model.DbUser, error,
) {
	row := conn.QueryRow(ctx, `
	insert into r50user (username, api_key)
	values ($1,$2)
	returning id, external_id, record_stamp
	`, user.Username, user.APIKey)

	if err := row.Scan(&user.ID, &user.ExternalID, &user.RecordStamp); err != nil {
		return nil, err
	}
	return user, nil
}

func LoadByID(ctx context.Context, conn repository.Querier, id int) (
	*model.DbUser, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where u.id=$1", selector), id)
	return readData(row)
}

func LoadByAPIKey(ctx context.Context, conn repository.Querier, apiKey string) (
	*model.DbUser, error,
) {
	row := conn.QueryRow(ctx, fmt.Sprintf("%s where u.api_key=$1", selector), apiKey)
	return readData(row)
}

func readData(row pgx.Row) (*model.DbUser, error) {
	var item model.DbUser
	if err := row.Scan(&item.ID, &item.ExternalID, &item.Username,
		&item.APIKey, &item.RecordStamp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoData
		}
		return nil, err
	}
	return &item, nil
}
