package resettoken

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pwd:reset:token:"

// Redis keeps tokens in Redis so they survive restarts and are shared
// across processes. A non-zero TTL lets the deployment enforce the expiry
// window promised in the reset email.
type Redis struct {
	rdb *redis.Client
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Put(ctx context.Context, token, email string, ttl time.Duration) error {
	return r.rdb.Set(ctx, keyPrefix+token, email, ttl).Err()
}

func (r *Redis) Redeem(ctx context.Context, token string) (string, bool, error) {
	email, err := r.rdb.GetDel(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return email, true, nil
}

var _ Store = (*Redis)(nil)
var _ Store = (*Memory)(nil)
