package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/collabhub/project-match/internal/notifications/domain"
)

const dedupKeyPrefix = "match:notify:" // match:notify:{lo}:{hi}:to:{recipient project}

// DedupKey identifies an intent by its unordered project pair and the
// project whose owner receives it.
func DedupKey(in domain.Intent) string {
	lo, hi := in.Project.ID, in.Match.ID
	if hi < lo {
		lo, hi = hi, lo
	}
	return fmt.Sprintf("%s%s:%s:to:%s", dedupKeyPrefix, lo, hi, in.Project.ID)
}

// RedisDeduper claims keys with SET NX and a TTL.
type RedisDeduper struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDeduper(client *redis.Client, ttl time.Duration) *RedisDeduper {
	return &RedisDeduper{client: client, ttl: ttl}
}

func (r *RedisDeduper) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := r.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim %s: %w", key, err)
	}
	return ok, nil
}

func (r *RedisDeduper) Release(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release %s: %w", key, err)
	}
	return nil
}
