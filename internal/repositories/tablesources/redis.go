package tablesources

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const indexKey = "tables"

// redisRepository implements Repository using Redis
type redisRepository struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis-backed table repository
func NewRedis(client redis.UniversalClient) Repository {
	if client == nil {
		panic("redis client is required")
	}

	return &redisRepository{
		client: client,
	}
}

func tableKey(id int) string {
	return fmt.Sprintf("table:%d", id)
}

// Open implements tables.Source
func (r *redisRepository) Open(ctx context.Context, id int) (io.ReadCloser, error) {
	data, err := r.client.Get(ctx, tableKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(id, "redis")
		}
		return nil, fmt.Errorf("failed to get table %d from Redis: %w", id, err)
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Put implements Repository.Put
func (r *redisRepository) Put(ctx context.Context, id int, data []byte) error {
	pipe := r.client.Pipeline()
	pipe.Set(ctx, tableKey(id), string(data), 0)
	pipe.SAdd(ctx, indexKey, strconv.Itoa(id))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store table %d in Redis: %w", id, err)
	}

	return nil
}

// List implements Repository.List
func (r *redisRepository) List(ctx context.Context) ([]int, error) {
	members, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list tables from Redis: %w", err)
	}

	ids := make([]int, 0, len(members))
	for _, member := range members {
		id, err := strconv.Atoi(member)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids, nil
}
