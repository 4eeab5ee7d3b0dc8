package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/limaJavier/classgrid/internal/models"
	"github.com/limaJavier/classgrid/pkg/cache"
	appErrors "github.com/limaJavier/classgrid/pkg/errors"
)

// CacheRepository stores timetables in Redis as JSON documents that expire after the TTL.
type CacheRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCacheRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *CacheRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRepository{client: client, ttl: ttl, logger: logger}
}

func timetableKey(id string) string {
	return cache.Key("timetable", id)
}

func (r *CacheRepository) Save(ctx context.Context, record *models.TimetableRecord) error {
	if r.client == nil {
		return fmt.Errorf("redis client is not configured")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal timetable %s: %w", record.ID, err)
	}

	if err := r.client.Set(ctx, timetableKey(record.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", record.ID, err)
	}
	return nil
}

func (r *CacheRepository) Get(ctx context.Context, id string) (*models.TimetableRecord, error) {
	var record models.TimetableRecord
	if err := r.get(ctx, timetableKey(id), &record); err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, notFound(id)
		}
		return nil, err
	}
	return &record, nil
}

func (r *CacheRepository) get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		r.logger.Warn("dropping unreadable timetable", zap.String("key", key), zap.Error(err))
		_ = r.client.Del(ctx, key).Err()
		return appErrors.ErrCacheMiss
	}
	return nil
}

func (r *CacheRepository) Delete(ctx context.Context, id string) error {
	if r.client == nil {
		return notFound(id)
	}
	removed, err := r.client.Del(ctx, timetableKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis delete %s: %w", id, err)
	}
	if removed == 0 {
		return notFound(id)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *CacheRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
