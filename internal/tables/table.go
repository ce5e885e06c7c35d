// Package tables loads CSV random tables and resolves dice rolls against them.
//
// A table is column oriented. Its roll column holds ascending inclusive
// upper thresholds: thresholds 10, 25, 100 map rolls 1-10 to the first row,
// 11-25 to the second and 26-100 to the third.
package tables

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
)

// RollColumn is the header of the threshold column
const RollColumn = "roll"

// Table is one loaded lookup table. It is read-only once built and safe to
// share between goroutines.
type Table struct {
	id      int
	order   []string
	columns map[string][]Value
	rows    int

	hasRoll    bool
	thresholds []int
}

// ID returns the table identifier
func (t *Table) ID() int {
	return t.id
}

// Columns returns the column names in header order
func (t *Table) Columns() []string {
	return slices.Clone(t.order)
}

// Column returns a copy of the values of the named column
func (t *Table) Column(name string) ([]Value, bool) {
	values, ok := t.columns[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(values), true
}

// Rows returns the number of data rows
func (t *Table) Rows() int {
	return t.rows
}

// HasRollColumn reports whether the table can be rolled on
func (t *Table) HasRollColumn() bool {
	return t.hasRoll
}

// Thresholds returns the roll column as integers, nil without a roll column
func (t *Table) Thresholds() []int {
	return slices.Clone(t.thresholds)
}

// newTable builds a table from parsed CSV records, the first being the header
func newTable(id int, records [][]string) (*Table, error) {
	if len(records) < 2 {
		return nil, malformed(id, "need a header and at least one data row").
			WithMeta("lines", len(records))
	}

	header, data := records[0], records[1:]
	t := &Table{
		id:      id,
		columns: make(map[string][]Value, len(header)),
		rows:    len(data),
	}

	for col, raw := range header {
		name := strings.TrimSpace(raw)

		values := make([]Value, 0, len(data))
		for _, record := range data {
			values = append(values, parseCell(record[col]))
		}

		// a repeated header keeps its first position, the last one wins
		if _, dup := t.columns[name]; !dup {
			t.order = append(t.order, name)
		}
		t.columns[name] = values
	}

	if rolls, ok := t.columns[RollColumn]; ok {
		thresholds, err := parseThresholds(id, rolls)
		if err != nil {
			return nil, err
		}
		t.hasRoll = true
		t.thresholds = thresholds
	}

	return t, nil
}

// parseCell stores digit-only text as an int and anything else as a string
// without trailing whitespace
func parseCell(raw string) Value {
	text := strings.TrimRightFunc(raw, unicode.IsSpace)
	digits := strings.TrimLeftFunc(text, unicode.IsSpace)

	if isDigits(digits) {
		if n, err := strconv.Atoi(digits); err == nil {
			return IntValue(n)
		}
	}
	return StringValue(text)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseThresholds(id int, rolls []Value) ([]int, error) {
	thresholds := make([]int, len(rolls))
	for i, v := range rolls {
		n, ok := v.Int()
		if !ok {
			return nil, malformed(id, "roll column holds a non-integer threshold").
				WithMeta("row", i+1).
				WithMeta("value", v.String())
		}
		if i > 0 && n < thresholds[i-1] {
			return nil, malformed(id, "roll thresholds must not decrease").
				WithMeta("row", i+1).
				WithMeta("value", n)
		}
		thresholds[i] = n
	}
	return thresholds, nil
}

func malformed(id int, reason string) *apperr.Error {
	return apperr.WrapWithCode(ErrMalformedSource, apperr.CodeValidation,
		"table "+strconv.Itoa(id)+": "+reason).
		WithMeta("table_id", id)
}
