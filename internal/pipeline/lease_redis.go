package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis lease defaults
const (
	DefaultLeaseKey = "resu:generation:lease"
	DefaultLeaseTTL = 10 * time.Minute
)

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLease is a single-slot lease shared by every replica using the same key.
// The TTL bounds how long a crashed holder can block others; it must exceed
// the longest run.
type RedisLease struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisLease creates a lease on key. Empty key and zero ttl take the defaults.
func NewRedisLease(client redis.UniversalClient, key string, ttl time.Duration, logger *zap.Logger) *RedisLease {
	if key == "" {
		key = DefaultLeaseKey
	}
	if ttl <= 0 {
		ttl = DefaultLeaseTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisLease{client: client, key: key, ttl: ttl, logger: logger}
}

// TryAcquire implements Lease
func (l *RedisLease) TryAcquire(ctx context.Context) (func(), error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lease: %w", err)
	}
	if !ok {
		return nil, ErrConcurrencyRejected
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The caller's context may already be canceled; release regardless
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.client, []string{l.key}, token).Err(); err != nil {
				l.logger.Warn("failed to release lease", zap.String("key", l.key), zap.Error(err))
			}
		})
	}, nil
}

// Busy implements Lease
func (l *RedisLease) Busy(ctx context.Context) (bool, error) {
	n, err := l.client.Exists(ctx, l.key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check lease: %w", err)
	}
	return n > 0, nil
}
