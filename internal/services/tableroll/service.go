package tableroll

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/dungeon-generator/internal/dice"
	"github.com/KirkDiggler/dungeon-generator/internal/entities"
	apperr "github.com/KirkDiggler/dungeon-generator/internal/errors"
	"github.com/KirkDiggler/dungeon-generator/internal/repositories/rolls"
	"github.com/KirkDiggler/dungeon-generator/internal/tables"
	"github.com/KirkDiggler/dungeon-generator/internal/uuid"
)

// Service rolls on random tables for the command line tools
type Service interface {
	// LoadTable loads a table by identifier
	LoadTable(ctx context.Context, id int) (*tables.Table, error)

	// RollOn resolves a given roll against a loaded table
	RollOn(ctx context.Context, table *tables.Table, roll int) (*tables.Result, error)

	// Roll loads a table, rolls the configured dice on it and records the outcome
	Roll(ctx context.Context, id int) (*Outcome, error)

	// History lists recorded rolls on a table, newest first
	History(ctx context.Context, id int, limit int) ([]*entities.TableRoll, error)
}

// Outcome is the result of Roll
type Outcome struct {
	Result *tables.Result
	Dice   *dice.RollResult
	// Record is nil when no history is configured
	Record *entities.TableRoll
}

type service struct {
	loader        *tables.Loader
	roller        dice.Roller
	notation      dice.Notation
	history       rolls.Repository
	uuidGenerator uuid.Generator
	logger        *slog.Logger

	cacheEnabled bool
	mu           sync.RWMutex
	cache        map[int]*tables.Table
	loads        singleflight.Group
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Source        tables.Source    // Required
	Roller        dice.Roller      // Optional - random roller when nil
	Dice          string           // Optional - 1d100 when empty
	History       rolls.Repository // Optional - rolls are not recorded when nil
	UUIDGenerator uuid.Generator   // Optional
	Logger        *slog.Logger     // Optional - discards when nil
	// Cache keeps loaded tables for the life of the service
	Cache bool
}

// NewService creates a new table roll service
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil || cfg.Source == nil {
		return nil, apperr.InvalidArgument("table source is required")
	}

	notation := dice.Notation{Count: 1, Sides: dice.Percentile}
	if cfg.Dice != "" {
		parsed, err := dice.ParseNotation(cfg.Dice)
		if err != nil {
			return nil, err
		}
		notation = parsed
	}

	svc := &service{
		loader:        tables.NewLoader(cfg.Source),
		roller:        cfg.Roller,
		notation:      notation,
		history:       cfg.History,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        cfg.Logger,
		cacheEnabled:  cfg.Cache,
		cache:         make(map[int]*tables.Table),
	}

	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGenerator()
	}
	if svc.logger == nil {
		svc.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return svc, nil
}

// LoadTable loads a table, sharing one load per identifier when caching
func (s *service) LoadTable(ctx context.Context, id int) (*tables.Table, error) {
	if !s.cacheEnabled {
		return s.load(ctx, id)
	}

	if table, ok := s.cached(id); ok {
		return table, nil
	}

	v, err, _ := s.loads.Do(strconv.Itoa(id), func() (any, error) {
		if table, ok := s.cached(id); ok {
			return table, nil
		}

		table, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cache[id] = table
		s.mu.Unlock()

		return table, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*tables.Table), nil
}

func (s *service) cached(id int) (*tables.Table, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.cache[id]
	return table, ok
}

func (s *service) load(ctx context.Context, id int) (*tables.Table, error) {
	table, err := s.loader.Load(ctx, id)
	if err != nil {
		s.logger.Warn("failed to load table", "table_id", id, "error", err)
		return nil, err
	}

	s.logger.Debug("loaded table",
		"table_id", id,
		"rows", table.Rows(),
		"columns", table.Columns())
	return table, nil
}

// RollOn implements Service.RollOn
func (s *service) RollOn(ctx context.Context, table *tables.Table, roll int) (*tables.Result, error) {
	result, err := tables.RollOn(table, roll)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("rolled on table", "table_id", result.TableID(), "roll", roll)
	return result, nil
}

// Roll implements Service.Roll
func (s *service) Roll(ctx context.Context, id int) (*Outcome, error) {
	table, err := s.LoadTable(ctx, id)
	if err != nil {
		return nil, err
	}

	if thresholds := table.Thresholds(); len(thresholds) > 0 && thresholds[len(thresholds)-1] < s.notation.Max() {
		s.logger.Warn("table does not cover every dice result",
			"table_id", id,
			"dice", s.notation.String(),
			"highest_threshold", thresholds[len(thresholds)-1])
	}

	rolled, err := dice.RollNotation(s.roller, s.notation)
	if err != nil {
		return nil, apperr.Wrapf(err, "failed to roll %s", s.notation)
	}

	result, err := s.RollOn(ctx, table, rolled.Total)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Result: result,
		Dice:   rolled,
	}

	if s.history != nil {
		record := &entities.TableRoll{
			ID:      s.uuidGenerator.New(),
			TableID: result.TableID(),
			Roll:    result.Roll(),
			Dice:    s.notation.String(),
			Columns: result.Columns(),
			Values:  result.Strings(),
		}
		if err := s.history.Create(ctx, record); err != nil {
			return nil, apperr.Wrapf(err, "failed to record roll on table %d", id)
		}
		outcome.Record = record
	}

	return outcome, nil
}

// History implements Service.History
func (s *service) History(ctx context.Context, id int, limit int) ([]*entities.TableRoll, error) {
	if s.history == nil {
		return []*entities.TableRoll{}, nil
	}

	return s.history.ListByTable(ctx, id, limit)
}
