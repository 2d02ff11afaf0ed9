package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/race50/race50-service-go/pkg/model"
	"github.com/race50/race50-service-go/pkg/repository"
	"github.com/race50/race50-service-go/testsupport/testdb"
)

func TestUserRepository(t *testing.T) {
	pool := testdb.InitTestDb()

	created, err := Create(context.Background(), pool, &model.DbUser{
		Username: "driver",
		APIKey:   "test-key",
	})
	require.NoError(t, err)
	assert.Greater(t, created.ID, 0)
	assert.NotEqual(t, "", created.ExternalID.String())

	byID, err := LoadByID(context.Background(), pool, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "driver", byID.Username)

	byKey, err := LoadByAPIKey(context.Background(), pool, "test-key")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byKey.ID)

	_, err = LoadByAPIKey(context.Background(), pool, "unknown")
	assert.ErrorIs(t, err, repository.ErrNoData)
}
