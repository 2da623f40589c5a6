package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

type LoginChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewLoginChecker(ttl time.Duration, redisClient *redis.Client) *LoginChecker {
	return &LoginChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (lc *LoginChecker) UserID(ctx context.Context, token string) (int, error) {
	if token == "" {
		return 0, ErrNotLogged
	}

	cmd := lc.redisClient.Get(ctx, sessionKeyPrefix+token)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotLogged
		}
		return 0, err
	}

	session, err := decodeLoginSession(cmd.Val())
	if err != nil {
		return 0, err
	}

	if time.Since(session.CreatedAt) > lc.ttl {
		return 0, ErrNotLogged
	}

	return session.UserID, nil
}
