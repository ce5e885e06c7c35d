package rolls

import (
	"github.com/KirkDiggler/dungeon-generator/internal/entities"
	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
)

// ErrRollNotFound is returned (with code not_found) when a roll ID is unknown
var ErrRollNotFound = apperr.New(apperr.CodeNotFound, "roll not found")

func rollNotFound(id string) error {
	return apperr.Wrapf(ErrRollNotFound, "no roll %s", id).WithMeta("roll_id", id)
}

func validate(roll *entities.TableRoll) error {
	if roll == nil {
		return apperr.InvalidArgument("roll cannot be nil")
	}
	if roll.ID == "" {
		return apperr.InvalidArgument("roll ID cannot be empty")
	}
	return nil
}
