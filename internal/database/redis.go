package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	invocationKeyPrefix = "gomagick:invocation:"
	invocationIndexKey  = "gomagick:invocations"
)

// RedisDatabase stores each invocation as a JSON string and orders them in a sorted set
type RedisDatabase struct {
	client *redis.Client
}

// NewRedisDatabase connects to the redis URL in connectionString, e.g. redis://localhost:6379/0
func NewRedisDatabase(connectionString string) (DatabaseService, error) {
	options, err := redis.ParseURL(connectionString)
	if err != nil {
		return nil, fmt.Errorf("invalid redis connection string: %w", err)
	}
	return &RedisDatabase{client: redis.NewClient(options)}, nil
}

// CreateDatabase only checks connectivity; redis needs no schema
func (r *RedisDatabase) CreateDatabase(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisDatabase) DoesDatabaseExist(ctx context.Context) bool {
	return r.client.Ping(ctx).Err() == nil
}

func (r *RedisDatabase) Close() error {
	return r.client.Close()
}

func (r *RedisDatabase) CreateInvocation(ctx context.Context, inv *Invocation) (string, error) {
	if err := prepareInvocation(inv); err != nil {
		return "", err
	}

	data, err := json.Marshal(inv)
	if err != nil {
		return "", fmt.Errorf("failed to encode invocation: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, invocationKeyPrefix+inv.ID, data, 0)
		pipe.ZAdd(ctx, invocationIndexKey, redis.Z{
			Score:  float64(inv.CreatedAt.UnixNano()),
			Member: inv.ID,
		})
		return nil
	})
	if err != nil {
		return "", err
	}
	return inv.ID, nil
}

func (r *RedisDatabase) GetInvocations(ctx context.Context, limit int) ([]*Invocation, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ids, err := r.client.ZRevRange(ctx, invocationIndexKey, 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = invocationKeyPrefix + id
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	invocations := make([]*Invocation, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// index entry without payload; skip it
			continue
		}
		var inv Invocation
		if err := json.Unmarshal([]byte(raw), &inv); err != nil {
			return nil, fmt.Errorf("failed to decode invocation %s: %w", ids[i], err)
		}
		invocations = append(invocations, &inv)
	}
	return invocations, nil
}

func (r *RedisDatabase) GetInvocationByID(ctx context.Context, id string) (*Invocation, error) {
	raw, err := r.client.Get(ctx, invocationKeyPrefix+id).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var inv Invocation
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		return nil, fmt.Errorf("failed to decode invocation %s: %w", id, err)
	}
	return &inv, nil
}

func (r *RedisDatabase) DeleteInvocation(ctx context.Context, id string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, invocationKeyPrefix+id)
		pipe.ZRem(ctx, invocationIndexKey, id)
		return nil
	})
	return err
}
