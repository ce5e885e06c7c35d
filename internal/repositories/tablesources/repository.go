package tablesources

import (
	"context"
	"fmt"

	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
	"github.com/KirkDiggler/dungeon-generator/internal/tables"
)

// Repository stores the CSV text of tables by identifier
type Repository interface {
	tables.Source

	// Put stores the CSV text of a table, replacing any previous text
	Put(ctx context.Context, id int, data []byte) error

	// List returns the identifiers of every stored table in ascending order
	List(ctx context.Context) ([]int, error)
}

// FileName returns the file name of a table: tab_<id>.csv
func FileName(id int) string {
	return fmt.Sprintf("tab_%d.csv", id)
}

func notFound(id int, where string) error {
	return apperr.WrapWithCode(tables.ErrSourceNotFound, apperr.CodeNotFound,
		fmt.Sprintf("no table %d in %s", id, where)).
		WithMeta("table_id", id)
}
