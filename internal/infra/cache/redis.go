// Package cache holds the shared fast-path state: processed webhook ids and worker leases.
package cache

import (
	"context"
	"log/slog"
	"time"

	"rental-escrow/internal/pkg/config"
	"rental-escrow/internal/pkg/errs"
	"rental-escrow/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease key only while it still holds the caller's token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: cfg.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errs.Wrap(err, "failed to connect to redis")
	}
	return client, nil
}

type RedisEventCache struct {
	client    redis.UniversalClient
	keyPrefix string
	timeout   time.Duration
}

var _ shared.ProcessedEventCache = (*RedisEventCache)(nil)

func NewRedisEventCache(client redis.UniversalClient, cfg config.RedisConfig) *RedisEventCache {
	return &RedisEventCache{
		client:    client,
		keyPrefix: cfg.KeyPrefix + ":event:processed:",
		timeout:   cfg.OperationLimit,
	}
}

func (c *RedisEventCache) Seen(ctx context.Context, eventID string) (bool, error) {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	n, err := c.client.Exists(ctx, c.keyPrefix+eventID).Result()
	if err != nil {
		return false, errs.Wrap(err, "failed to check processed event")
	}
	return n > 0, nil
}

func (c *RedisEventCache) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.client.SetNX(ctx, c.keyPrefix+eventID, "1", ttl).Err(); err != nil {
		return errs.Wrap(err, "failed to mark event as processed")
	}
	return nil
}

// RedisLocker leases are SET NX PX keys holding a random token, so one replica cannot release
// another's lease after its own expired.
type RedisLocker struct {
	client    redis.UniversalClient
	keyPrefix string
	timeout   time.Duration
	logger    *slog.Logger
}

var _ shared.Locker = (*RedisLocker)(nil)

func NewRedisLocker(client redis.UniversalClient, cfg config.RedisConfig, logger *slog.Logger) *RedisLocker {
	return &RedisLocker{
		client:    client,
		keyPrefix: cfg.KeyPrefix + ":lease:",
		timeout:   cfg.OperationLimit,
		logger:    logger,
	}
}

func (l *RedisLocker) TryAcquire(ctx context.Context, name string, ttl time.Duration) (func(context.Context), bool, error) {
	key := l.keyPrefix + name
	token := uuid.NewString()

	opCtx, cancel := withTimeout(ctx, l.timeout)
	defer cancel()
	ok, err := l.client.SetNX(opCtx, key, token, ttl).Result()
	if err != nil {
		return nil, false, errs.Wrap(err, "failed to acquire lease")
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) {
		ctx, cancel := withTimeout(ctx, l.timeout)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			l.logger.Warn("Failed to release lease", "lease", name, "error", err)
		}
	}
	return release, true, nil
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
