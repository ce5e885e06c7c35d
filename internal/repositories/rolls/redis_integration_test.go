//go:build integration

package rolls

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/dungeon-generator/internal/entities"
	"github.com/KirkDiggler/dungeon-generator/internal/testutils"
)

func TestRedisIntegration_History(t *testing.T) {
	client := testutils.CreateTestRedisClient(t)
	repo := NewRedis(client, RealTimeProvider{})
	ctx := context.Background()

	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, &entities.TableRoll{
			ID:        id,
			TableID:   100,
			Roll:      i * 10,
			Columns:   []string{"roll"},
			Values:    map[string]string{"roll": id},
			CreatedAt: start.Add(time.Duration(i) * time.Second),
		}))
	}

	latest, err := repo.ListByTable(ctx, 100, 2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "c", latest[0].ID)
	assert.Equal(t, "b", latest[1].ID)

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Roll)
	assert.True(t, start.Equal(got.CreatedAt))

	_, err = repo.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrRollNotFound)
}
