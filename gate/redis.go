package gate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const keyPrefix = "gamblebot:gate:"

// releaseScript deletes the key only while it still carries our token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGate shares holds between bot replicas. Holds expire after ttl so a
// crashed replica cannot lock a user out.
type RedisGate struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisGate connects to redisURL and verifies the connection
func NewRedisGate(ctx context.Context, redisURL string, ttl time.Duration) (*RedisGate, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisGate{client: client, ttl: ttl}, nil
}

func (g *RedisGate) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, keyPrefix+key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire gate %s: %w", key, err)
	}
	if !ok {
		return nil, ErrBusy
	}

	return func() {
		// The command's context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(releaseCtx, g.client, []string{keyPrefix + key}, token).Err(); err != nil {
			log.WithFields(log.Fields{
				"key":   key,
				"error": err,
			}).Warn("Failed to release gate, it will expire on its own")
		}
	}, nil
}

func (g *RedisGate) Close() error {
	return g.client.Close()
}
