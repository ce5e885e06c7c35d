package rolls

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/dungeon-generator/internal/entities"
)

// Data is the stored form of a roll
type Data struct {
	ID        string            `json:"id"`
	TableID   int               `json:"table_id"`
	Roll      int               `json:"roll"`
	Dice      string            `json:"dice,omitempty"`
	Columns   []string          `json:"columns"`
	Values    map[string]string `json:"values"`
	CreatedAt time.Time         `json:"created_at"`
}

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
}

// NewRedis creates a Redis-backed roll history
func NewRedis(client redis.UniversalClient, timeProvider TimeProvider) Repository {
	if client == nil {
		panic("redis client is required")
	}
	if timeProvider == nil {
		timeProvider = RealTimeProvider{}
	}

	return &redisRepo{
		client:       client,
		timeProvider: timeProvider,
	}
}

func rollKey(id string) string {
	return fmt.Sprintf("roll:%s", id)
}

func tableRollsKey(tableID int) string {
	return fmt.Sprintf("table:%d:rolls", tableID)
}

func (r *redisRepo) Create(ctx context.Context, roll *entities.TableRoll) error {
	if err := validate(roll); err != nil {
		return err
	}

	if roll.CreatedAt.IsZero() {
		roll.CreatedAt = r.timeProvider.Now()
	}

	jsonData, err := json.Marshal(toData(roll))
	if err != nil {
		return fmt.Errorf("failed to marshal roll data: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, rollKey(roll.ID), string(jsonData), 0)
	pipe.ZAdd(ctx, tableRollsKey(roll.TableID), redis.Z{
		Score:  float64(roll.CreatedAt.UnixMilli()),
		Member: roll.ID,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store roll in Redis: %w", err)
	}

	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*entities.TableRoll, error) {
	jsonData, err := r.client.Get(ctx, rollKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, rollNotFound(id)
		}
		return nil, fmt.Errorf("failed to get roll from Redis: %w", err)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal roll data: %w", err)
	}

	return fromData(&data), nil
}

func (r *redisRepo) ListByTable(ctx context.Context, tableID int, limit int) ([]*entities.TableRoll, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := r.client.ZRevRange(ctx, tableRollsKey(tableID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rolls for table %d: %w", tableID, err)
	}
	if len(ids) == 0 {
		return []*entities.TableRoll{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = rollKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get rolls from Redis: %w", err)
	}

	rolls := make([]*entities.TableRoll, 0, len(values))
	for _, value := range values {
		// expired or deleted rolls leave a nil behind
		raw, ok := value.(string)
		if !ok {
			continue
		}

		var data Data
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			continue
		}
		rolls = append(rolls, fromData(&data))
	}

	return rolls, nil
}

func toData(roll *entities.TableRoll) Data {
	return Data{
		ID:        roll.ID,
		TableID:   roll.TableID,
		Roll:      roll.Roll,
		Dice:      roll.Dice,
		Columns:   roll.Columns,
		Values:    roll.Values,
		CreatedAt: roll.CreatedAt,
	}
}

func fromData(data *Data) *entities.TableRoll {
	return &entities.TableRoll{
		ID:        data.ID,
		TableID:   data.TableID,
		Roll:      data.Roll,
		Dice:      data.Dice,
		Columns:   data.Columns,
		Values:    data.Values,
		CreatedAt: data.CreatedAt,
	}
}
