package database

import (
	"context"
	"fmt"
	"newel_classroom/internal/config"
	"newel_classroom/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// redisPingTimeout bounds startup when the session store points at a dead Redis.
const redisPingTimeout = 5 * time.Second

// InitRedis connects the client backing the Redis session store.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
		DialTimeout:  redisPingTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect session redis at %s: %w", addr, err)
	}

	logger.Log.Info("Redis session store connected", zap.String("addr", addr), zap.Int("db", cfg.DB))
	return rdb, nil
}
