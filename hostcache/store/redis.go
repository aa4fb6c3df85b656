package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisConfig configures the Redis-backed Provider.
type RedisConfig struct {
	// Endpoint is either a single address or a comma-separated list of
	// cluster node addresses.
	Endpoint string

	Username string
	Password string
	DB       int

	// MaxItemSize skips storing values larger than this many bytes. Zero
	// means unbounded.
	MaxItemSize int
}

var errRedisNoEndpoint = errors.New("hostcache/store: no redis endpoint configured")

var _ Provider = (*Redis)(nil)

// Redis is a Provider backed by a Redis (or Redis-compatible) server.
type Redis struct {
	client redis.UniversalClient
	cfg    RedisConfig
}

// NewRedis creates a Redis-backed Provider and verifies connectivity.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if cfg.Endpoint == "" {
		return nil, errRedisNoEndpoint
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    strings.Split(cfg.Endpoint, ","),
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &Redis{client: client, cfg: cfg}, nil
}

// newRedisWithClient wires an already-constructed client, used by tests
// against miniredis.
func newRedisWithClient(client redis.UniversalClient, cfg RedisConfig) *Redis {
	return &Redis{client: client, cfg: cfg}
}

// Get retrieves key, returning nil on a miss or error.
func (r *Redis) Get(ctx context.Context, key string) []byte {
	res, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Error().Err(err).Str("key", key).Msg("hostcache: redis get failed")
		}
		return nil
	}
	return res
}

// Set stores value under key. Oversized values and write failures are
// logged and dropped rather than propagated: storage is advisory.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if r.cfg.MaxItemSize > 0 && len(value) > r.cfg.MaxItemSize {
		log.Debug().Str("key", key).Msg("hostcache: item exceeds max item size, dropped")
		return
	}
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		log.Error().Err(err).Str("key", key).Msg("hostcache: redis set failed")
	}
}

// Delete removes key, reporting whether it was present.
func (r *Redis) Delete(ctx context.Context, key string) bool {
	n, err := r.client.Del(ctx, key).Result()
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("hostcache: redis delete failed")
		return false
	}
	return n > 0
}

// Size returns the number of keys in the selected database. Expensive;
// intended for the debug endpoint, not the hot path.
func (r *Redis) Size() int {
	n, err := r.client.DBSize(context.Background()).Result()
	if err != nil {
		return 0
	}
	return int(n)
}
