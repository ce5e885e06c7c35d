package rolls

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/KirkDiggler/dungeon-generator/internal/entities"
	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
)

// inMemoryRepo implements Repository using in-memory storage
type inMemoryRepo struct {
	mu           sync.RWMutex
	rolls        map[string]*entities.TableRoll
	byTable      map[int][]string
	timeProvider TimeProvider
}

// NewInMemory creates a new in-memory roll history
func NewInMemory(timeProvider TimeProvider) Repository {
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}

	return &inMemoryRepo{
		rolls:        make(map[string]*entities.TableRoll),
		byTable:      make(map[int][]string),
		timeProvider: timeProvider,
	}
}

func (r *inMemoryRepo) Create(ctx context.Context, roll *entities.TableRoll) error {
	if err := validate(roll); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rolls[roll.ID]; exists {
		return apperr.AlreadyExistsf("roll %s already exists", roll.ID)
	}

	if roll.CreatedAt.IsZero() {
		roll.CreatedAt = r.timeProvider.Now()
	}

	r.rolls[roll.ID] = copyRoll(roll)
	r.byTable[roll.TableID] = append(r.byTable[roll.TableID], roll.ID)

	return nil
}

func (r *inMemoryRepo) Get(ctx context.Context, id string) (*entities.TableRoll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	roll, exists := r.rolls[id]
	if !exists {
		return nil, rollNotFound(id)
	}

	return copyRoll(roll), nil
}

func (r *inMemoryRepo) ListByTable(ctx context.Context, tableID int, limit int) ([]*entities.TableRoll, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byTable[tableID]
	rolls := make([]*entities.TableRoll, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		if limit > 0 && len(rolls) == limit {
			break
		}
		rolls = append(rolls, copyRoll(r.rolls[ids[i]]))
	}

	return rolls, nil
}

func copyRoll(roll *entities.TableRoll) *entities.TableRoll {
	rollCopy := *roll
	rollCopy.Columns = slices.Clone(roll.Columns)
	rollCopy.Values = maps.Clone(roll.Values)
	return &rollCopy
}
