package tables

import (
	"strconv"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
)

// RollOn selects the first row whose threshold is at least roll and returns
// the values of that row. The roll column of the result holds roll itself.
func RollOn(t *Table, roll int) (*Result, error) {
	if t == nil {
		return nil, apperr.InvalidArgument("table is required")
	}

	if !t.hasRoll {
		return nil, apperr.WrapWithCode(ErrMissingRollColumn, apperr.CodeValidation,
			"cannot roll on table "+strconv.Itoa(t.id)).
			WithMeta("table_id", t.id).
			WithMeta("columns", t.Columns())
	}

	row := -1
	for i, threshold := range t.thresholds {
		if threshold >= roll {
			row = i
			break
		}
	}
	if row < 0 {
		return nil, apperr.WrapWithCode(ErrNoMatchingThreshold, apperr.CodeNotFound,
			"cannot roll on table "+strconv.Itoa(t.id)).
			WithMeta("table_id", t.id).
			WithMeta("roll", roll)
	}

	values := make(map[string]Value, len(t.order))
	for _, name := range t.order {
		values[name] = t.columns[name][row]
	}
	values[RollColumn] = IntValue(roll)

	return &Result{
		tableID: t.id,
		roll:    roll,
		order:   t.Columns(),
		values:  values,
	}, nil
}

// RollOnNumber truncates roll toward zero and rolls on the table
func RollOnNumber[N Number](t *Table, roll N) (*Result, error) {
	n, err := Truncate(roll)
	if err != nil {
		return nil, err
	}
	return RollOn(t, n)
}
