package entities

import "time"

// TableRoll is one recorded roll on a random table
type TableRoll struct {
	ID      string
	TableID int
	// Roll is the rolled value, not the threshold it matched
	Roll      int
	Dice      string
	Columns   []string
	Values    map[string]string
	CreatedAt time.Time
}

// Value returns the resolved text of one column
func (r *TableRoll) Value(column string) string {
	if r.Values == nil {
		return ""
	}
	return r.Values[column]
}
