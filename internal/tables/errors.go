package tables

import "errors"

// Sentinel errors returned (wrapped in coded errors) by the loader and the
// resolver. Match them with errors.Is.
var (
	// ErrNotANumber is returned when a roll or identifier cannot be read as a number
	ErrNotANumber = errors.New("not a number")

	// ErrSourceNotFound is returned when no source exists for a table identifier
	ErrSourceNotFound = errors.New("table source not found")

	// ErrMalformedSource is returned when a source has no header or no data
	// rows, ragged rows, or an unusable roll column
	ErrMalformedSource = errors.New("malformed table source")

	// ErrMissingRollColumn is returned when rolling on a table without a roll column
	ErrMissingRollColumn = errors.New("table has no roll column")

	// ErrNoMatchingThreshold is returned when the roll is above every threshold
	ErrNoMatchingThreshold = errors.New("roll exceeds every threshold")
)
