package tables

import "strconv"

// Value is one table cell: either an integer or a string
type Value struct {
	num     int
	text    string
	numeric bool
}

// IntValue creates an integer cell
func IntValue(n int) Value {
	return Value{num: n, numeric: true}
}

// StringValue creates a string cell
func StringValue(s string) Value {
	return Value{text: s}
}

// IsInt reports whether the cell holds an integer
func (v Value) IsInt() bool {
	return v.numeric
}

// Int returns the integer held by the cell and whether it is one
func (v Value) Int() (int, bool) {
	return v.num, v.numeric
}

// String renders the cell as text
func (v Value) String() string {
	if v.numeric {
		return strconv.Itoa(v.num)
	}
	return v.text
}
