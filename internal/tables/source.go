package tables

//go:generate mockgen -destination=mock/mock_source.go -package=mocktables -source=source.go

import (
	"context"
	"io"
)

// Source locates the raw CSV text of a table by its identifier.
// Implementations return an error wrapping ErrSourceNotFound when the
// identifier has no source.
type Source interface {
	// Open returns a reader over the table text. The caller closes it.
	Open(ctx context.Context, id int) (io.ReadCloser, error)
}
