package tables_test

import (
	"math"
	"testing"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
	"github.com/KirkDiggler/dungeon-generator/internal/tables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruncate(t *testing.T) {
	n, err := tables.Truncate(37.9)
	require.NoError(t, err)
	assert.Equal(t, 37, n)

	n, err = tables.Truncate(-1.5)
	require.NoError(t, err)
	assert.Equal(t, -1, n)

	n, err = tables.Truncate(float32(99.99))
	require.NoError(t, err)
	assert.Equal(t, 99, n)

	n, err = tables.Truncate(int8(-7))
	require.NoError(t, err)
	assert.Equal(t, -7, n)

	n, err = tables.Truncate(uint16(100))
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestTruncate_NotANumber(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), 1e300, -1e300} {
		_, err := tables.Truncate(f)
		require.Error(t, err, "%v", f)
		assert.ErrorIs(t, err, tables.ErrNotANumber)
		assert.True(t, apperr.IsInvalidArgument(err))
	}

	_, err := tables.Truncate(uint64(math.MaxUint64))
	assert.ErrorIs(t, err, tables.ErrNotANumber)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{input: "37", want: 37},
		{input: " 37 ", want: 37},
		{input: "37.9", want: 37},
		{input: "-1.5", want: -1},
		{input: "1e2", want: 100},
		{input: "", wantErr: true},
		{input: "d100", wantErr: true},
		{input: "NaN", wantErr: true},
		{input: "inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := tables.ParseNumber(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, tables.ErrNotANumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
