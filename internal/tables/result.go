package tables

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Result is the outcome of one roll on a table. It is a snapshot and shares
// nothing with the table it came from.
type Result struct {
	tableID int
	roll    int
	order   []string
	values  map[string]Value
}

// TableID returns the identifier of the table rolled on
func (r *Result) TableID() int {
	return r.tableID
}

// Roll returns the rolled value, not the threshold it matched
func (r *Result) Roll() int {
	return r.roll
}

// Columns returns the column names in table order
func (r *Result) Columns() []string {
	return slices.Clone(r.order)
}

// Values returns a copy of the resolved value of every column
func (r *Result) Values() map[string]Value {
	return maps.Clone(r.values)
}

// Value returns the resolved value of one column
func (r *Result) Value(column string) (Value, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Strings renders every resolved value as text, keyed by column
func (r *Result) Strings() map[string]string {
	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v.String()
	}
	return out
}

func (r *Result) String() string {
	parts := make([]string, 0, len(r.order))
	for _, name := range r.order {
		parts = append(parts, fmt.Sprintf("%s=%s", name, r.values[name]))
	}
	return fmt.Sprintf("table %d, roll %d: %s", r.tableID, r.roll, strings.Join(parts, ", "))
}
