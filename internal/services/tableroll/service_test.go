package tableroll_test

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/dungeon-generator/internal/dice/mock"
	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
	"github.com/KirkDiggler/dungeon-generator/internal/repositories/rolls"
	"github.com/KirkDiggler/dungeon-generator/internal/repositories/tablesources"
	"github.com/KirkDiggler/dungeon-generator/internal/services/tableroll"
	"github.com/KirkDiggler/dungeon-generator/internal/tables"
	mocktables "github.com/KirkDiggler/dungeon-generator/internal/tables/mock"
	"github.com/KirkDiggler/dungeon-generator/internal/uuid"
)

const monsters = "roll,monster,count\n10,Rat,6\n50,Goblin,4\n100,Ogre,1\n"

func body(text string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(text))
}

func TestService_RequiresSource(t *testing.T) {
	_, err := tableroll.NewService(nil)
	assert.True(t, apperr.IsInvalidArgument(err))

	_, err = tableroll.NewService(&tableroll.ServiceConfig{})
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestService_BadDice(t *testing.T) {
	_, err := tableroll.NewService(&tableroll.ServiceConfig{
		Source: tablesources.NewInMemory(),
		Dice:   "lots",
	})
	assert.True(t, apperr.IsInvalidArgument(err))
}

func TestService_Roll(t *testing.T) {
	ctx := context.Background()
	source := tablesources.NewInMemory()
	require.NoError(t, source.Put(ctx, 100, []byte(monsters)))

	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{37})
	history := rolls.NewInMemory(nil)

	svc, err := tableroll.NewService(&tableroll.ServiceConfig{
		Source:        source,
		Roller:        roller,
		History:       history,
		UUIDGenerator: uuid.NewSequenceGenerator("roll-1"),
	})
	require.NoError(t, err)

	outcome, err := svc.Roll(ctx, 100)
	require.NoError(t, err)

	assert.Equal(t, 37, outcome.Dice.Total)
	assert.Equal(t, 37, outcome.Result.Roll())
	assert.Equal(t, 100, outcome.Result.TableID())
	assert.Equal(t, "Goblin", outcome.Result.Strings()["monster"])

	require.NotNil(t, outcome.Record)
	assert.Equal(t, "roll-1", outcome.Record.ID)
	assert.Equal(t, "1d100", outcome.Record.Dice)
	assert.Equal(t, "37", outcome.Record.Value("roll"))
	assert.False(t, outcome.Record.CreatedAt.IsZero())

	recorded, err := svc.History(ctx, 100, 10)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "Goblin", recorded[0].Value("monster"))
}

func TestService_RollWithCustomDice(t *testing.T) {
	ctx := context.Background()
	source := tablesources.NewInMemory()
	require.NoError(t, source.Put(ctx, 8, []byte("roll,trap\n4,pit\n8,darts\n12,gas\n")))

	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{3, 4})

	svc, err := tableroll.NewService(&tableroll.ServiceConfig{
		Source: source,
		Roller: roller,
		Dice:   "2d6",
	})
	require.NoError(t, err)

	outcome, err := svc.Roll(ctx, 8)
	require.NoError(t, err)

	assert.Equal(t, 7, outcome.Result.Roll())
	assert.Equal(t, "darts", outcome.Result.Strings()["trap"])
	assert.Nil(t, outcome.Record, "no history configured")

	history, err := svc.History(ctx, 8, 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestService_RollAboveTable(t *testing.T) {
	ctx := context.Background()
	source := tablesources.NewInMemory()
	require.NoError(t, source.Put(ctx, 20, []byte("roll,payload\n10,A\n20,B\n")))

	roller := mockdice.NewManualMockRoller()
	roller.SetRolls([]int{21})
	history := rolls.NewInMemory(nil)

	svc, err := tableroll.NewService(&tableroll.ServiceConfig{
		Source:  source,
		Roller:  roller,
		History: history,
	})
	require.NoError(t, err)

	_, err = svc.Roll(ctx, 20)
	assert.ErrorIs(t, err, tables.ErrNoMatchingThreshold)

	recorded, err := history.ListByTable(ctx, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, recorded, "failed rolls are not recorded")
}

func TestService_RollOn(t *testing.T) {
	ctx := context.Background()
	source := tablesources.NewInMemory()
	require.NoError(t, source.Put(ctx, 100, []byte(monsters)))

	svc, err := tableroll.NewService(&tableroll.ServiceConfig{Source: source})
	require.NoError(t, err)

	table, err := svc.LoadTable(ctx, 100)
	require.NoError(t, err)

	result, err := svc.RollOn(ctx, table, 100)
	require.NoError(t, err)
	assert.Equal(t, "Ogre", result.Strings()["monster"])

	_, err = svc.LoadTable(ctx, 404)
	assert.ErrorIs(t, err, tables.ErrSourceNotFound)
}

func TestService_NoCacheReloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocktables.NewMockSource(ctrl)

	source.EXPECT().Open(gomock.Any(), 100).
		DoAndReturn(func(context.Context, int) (io.ReadCloser, error) {
			return body(monsters), nil
		}).
		Times(2)

	svc, err := tableroll.NewService(&tableroll.ServiceConfig{Source: source})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := svc.LoadTable(context.Background(), 100)
		require.NoError(t, err)
	}
}

func TestService_CacheLoadsOncePerTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocktables.NewMockSource(ctrl)

	var opens atomic.Int32
	release := make(chan struct{})
	source.EXPECT().Open(gomock.Any(), 100).
		DoAndReturn(func(context.Context, int) (io.ReadCloser, error) {
			opens.Add(1)
			<-release
			return body(monsters), nil
		}).
		Times(1)

	svc, err := tableroll.NewService(&tableroll.ServiceConfig{
		Source: source,
		Cache:  true,
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	loaded := make([]*tables.Table, 8)
	for i := range loaded {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			table, err := svc.LoadTable(context.Background(), 100)
			assert.NoError(t, err)
			loaded[i] = table
		}(i)
	}

	// let the callers pile up on the in-flight load
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), opens.Load())
	for _, table := range loaded {
		assert.Same(t, loaded[0], table)
	}

	again, err := svc.LoadTable(context.Background(), 100)
	require.NoError(t, err)
	assert.Same(t, loaded[0], again)
}

func TestService_CacheSkipsFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	source := mocktables.NewMockSource(ctrl)

	gomock.InOrder(
		source.EXPECT().Open(gomock.Any(), 5).Return(body("roll,name\n"), nil),
		source.EXPECT().Open(gomock.Any(), 5).Return(body("roll,name\n100,Bat\n"), nil),
	)

	svc, err := tableroll.NewService(&tableroll.ServiceConfig{
		Source: source,
		Cache:  true,
	})
	require.NoError(t, err)

	_, err = svc.LoadTable(context.Background(), 5)
	assert.ErrorIs(t, err, tables.ErrMalformedSource)

	table, err := svc.LoadTable(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Rows())
}
