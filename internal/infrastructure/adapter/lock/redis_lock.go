package lock

import (
	"context"
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/error"
	coreport "github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/core"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/bookkeeping-validation/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces lock keys
const DefaultKeyPrefix = "bookkeeping:lock:"

// releaseScript deletes the key only while it still holds our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewRedisClient returns a configured and reachable Redis client
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}

// RedisLockRepository leases per-transaction locks shared by every replica
type RedisLockRepository struct {
	client    redis.UniversalClient
	keyPrefix string
	logger    coreport.Logger
}

var _ persistence.TransactionLockRepository = (*RedisLockRepository)(nil)

// NewRedisLockRepository creates a lock repository on client
func NewRedisLockRepository(client redis.UniversalClient, keyPrefix string, logger coreport.Logger) *RedisLockRepository {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisLockRepository{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger.With(map[string]any{"component": "redis_lock"}),
	}
}

func (r *RedisLockRepository) key(transactionID string) string {
	return r.keyPrefix + transactionID
}

// AcquireLock sets the key to a fresh token if absent with a TTL of duration
func (r *RedisLockRepository) AcquireLock(ctx context.Context, transactionID string, duration time.Duration) (string, error) {
	token := uuid.NewString()

	ok, err := r.client.SetNX(ctx, r.key(transactionID), token, duration).Result()
	if err != nil {
		r.logger.Error("Redis error acquiring lock", map[string]any{
			"transaction_id": transactionID,
			"error":          err.Error(),
		})
		return "", fmt.Errorf("%w: redis setnx %s: %s", errs.ErrDatabaseConnection, r.key(transactionID), err.Error())
	}
	if !ok {
		return "", errs.ErrTransactionLocked
	}
	return token, nil
}

// ReleaseLock deletes the key if it still carries owner
func (r *RedisLockRepository) ReleaseLock(ctx context.Context, transactionID string, owner string) error {
	if owner == "" {
		return nil
	}

	deleted, err := releaseScript.Run(ctx, r.client, []string{r.key(transactionID)}, owner).Int()
	if err != nil {
		r.logger.Error("Redis error releasing lock", map[string]any{
			"transaction_id": transactionID,
			"error":          err.Error(),
		})
		return fmt.Errorf("%w: redis release %s: %s", errs.ErrDatabaseConnection, r.key(transactionID), err.Error())
	}
	if deleted == 0 {
		r.logger.Warn("Lock expired before release", map[string]any{
			"transaction_id": transactionID,
		})
	}
	return nil
}
