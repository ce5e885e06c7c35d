package tablesources

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
	"github.com/KirkDiggler/dungeon-generator/internal/tables"
)

func TestFilesystem_OpenUsesNamingConvention(t *testing.T) {
	dir := t.TempDir()
	csv := "roll,name\n10,Goblin\n100,Orc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tab_100.csv"), []byte(csv), 0o644))

	repo := NewFilesystem(dir)

	rc, err := repo.Open(context.Background(), 100)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, csv, string(data))
}

func TestFilesystem_OpenMissing(t *testing.T) {
	repo := NewFilesystem(t.TempDir())

	_, err := repo.Open(context.Background(), 404)
	require.Error(t, err)
	assert.ErrorIs(t, err, tables.ErrSourceNotFound)
	assert.True(t, apperr.IsNotFound(err))
}

func TestFilesystem_OpenCancelled(t *testing.T) {
	repo := NewFilesystem(t.TempDir())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Open(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFilesystem_PutAndList(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tables")
	repo := NewFilesystem(dir)
	ctx := context.Background()

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids, "missing directory lists nothing")

	require.NoError(t, repo.Put(ctx, 200, []byte("roll,name\n100,Bat\n")))
	require.NoError(t, repo.Put(ctx, 7, []byte("roll,name\n100,Rat\n")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tab_007.csv"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "tab_9.csv"), 0o755))

	ids, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 200}, ids)

	table, err := tables.NewLoader(repo).Load(ctx, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, table.ID())
}

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name   string
		wantID int
		wantOK bool
	}{
		{name: "tab_100.csv", wantID: 100, wantOK: true},
		{name: "tab_0.csv", wantID: 0, wantOK: true},
		{name: "tab_.csv"},
		{name: "tab_12.txt"},
		{name: "table_12.csv"},
		{name: "tab_012.csv"},
		{name: "tab_+12.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseFileName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestInMemory(t *testing.T) {
	repo := NewInMemory()
	ctx := context.Background()

	data := []byte("roll,name\n100,Rat\n")
	require.NoError(t, repo.Put(ctx, 1, data))
	data[0] = 'X'

	table, err := tables.NewLoader(repo).Load(ctx, 1)
	require.NoError(t, err)
	assert.True(t, table.HasRollColumn(), "stored text is a copy")

	_, err = repo.Open(ctx, 2)
	assert.ErrorIs(t, err, tables.ErrSourceNotFound)

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)
}

func TestFilesystem_BundledTables(t *testing.T) {
	repo := NewFilesystem(filepath.Join("..", "..", "..", "data", "tables"))
	ctx := context.Background()

	ids, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, ids)

	loader := tables.NewLoader(repo)
	for _, id := range ids {
		table, err := loader.Load(ctx, id)
		require.NoError(t, err, "table %d", id)

		thresholds := table.Thresholds()
		require.NotEmpty(t, thresholds, "table %d", id)
		assert.Equal(t, 100, thresholds[len(thresholds)-1], "table %d covers a d100", id)
	}
}
