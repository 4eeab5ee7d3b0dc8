package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/limaJavier/classgrid/pkg/config"
)

// Namespace prefixes every key written by the service
const Namespace = "classgrid"

const defaultPingTimeout = 2 * time.Second

// NewRedis returns a Redis client that answered a ping within cfg.PingTimeout. Dial, read and write share that deadline.
func NewRedis(cfg config.RedisConfig) (*redis.Client, error) {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", client.Options().Addr, err)
	}

	return client, nil
}

// Key joins parts under the service namespace: Key("timetable", id) is "classgrid:timetable:<id>"
func Key(parts ...string) string {
	return Namespace + ":" + strings.Join(parts, ":")
}
