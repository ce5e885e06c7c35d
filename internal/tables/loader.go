package tables

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
)

// Loader reads tables from a Source
type Loader struct {
	source Source
}

// NewLoader creates a loader over the given source
func NewLoader(source Source) *Loader {
	if source == nil {
		panic("table source is required")
	}

	return &Loader{
		source: source,
	}
}

// Load opens the source of the identified table and parses it.
// The source is closed on every path.
func (l *Loader) Load(ctx context.Context, id int) (*Table, error) {
	rc, err := l.source.Open(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSourceNotFound) {
			return nil, apperr.Wrapf(err, "failed to load table %d", id)
		}
		return nil, apperr.Wrapf(err, "failed to open table %d", id)
	}
	defer rc.Close()

	return Parse(id, rc)
}

// Parse reads CSV text into a table with the given identifier
func Parse(id int, r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	// every row must match the header width
	reader.FieldsPerRecord = 0

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperr.WrapWithCode(fmt.Errorf("%w: %w", ErrMalformedSource, err), apperr.CodeValidation,
			fmt.Sprintf("failed to parse table %d", id)).
			WithMeta("table_id", id)
	}

	return newTable(id, records)
}
