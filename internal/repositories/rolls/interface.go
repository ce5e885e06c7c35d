package rolls

import (
	"context"

	"github.com/KirkDiggler/dungeon-generator/internal/entities"
)

// Repository stores the history of table rolls
type Repository interface {
	// Create records a roll. The roll ID must be set; CreatedAt is stamped
	// when zero.
	Create(ctx context.Context, roll *entities.TableRoll) error

	// Get retrieves a roll by ID
	Get(ctx context.Context, id string) (*entities.TableRoll, error)

	// ListByTable returns the rolls made on a table, newest first.
	// A limit of zero or less returns every roll.
	ListByTable(ctx context.Context, tableID int, limit int) ([]*entities.TableRoll, error)
}
