package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	limiterKeyPrefix = "pwdreset:rl:"
	limiterWindow    = time.Hour
	limiterMax       = 3
)

// ResetLimiter throttles password-reset requests per account using a
// fixed window counter. Key format: pwdreset:rl:<email>.
type ResetLimiter struct {
	client *redis.Client
}

func NewResetLimiter(client *redis.Client) *ResetLimiter {
	return &ResetLimiter{client: client}
}

// Allow reports whether another reset request may be issued for email.
func (l *ResetLimiter) Allow(ctx context.Context, email string) (bool, error) {
	key := limiterKeyPrefix + email

	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("reset limiter: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, limiterWindow).Err(); err != nil {
			return false, fmt.Errorf("reset limiter expire: %w", err)
		}
	}
	return n <= limiterMax, nil
}
