package auth

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

var _ Checker = (*SessionChecker)(nil)

type Checker interface {
	// UserID resolves a session token to the logged-in user id,
	// or returns ErrNotLoggedIn.
	UserID(ctx context.Context, token string) (int, error)
}

type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (c *SessionChecker) UserID(ctx context.Context, token string) (int, error) {
	sessionKey := sessionKeyPrefix + token
	sessionVal, err := c.redisClient.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNotLoggedIn
		}
		return 0, err
	}

	userID, createdAt, err := parseSessionValue(sessionVal)
	if err != nil {
		return 0, err
	}

	if time.Since(createdAt) > c.ttl {
		return 0, ErrNotLoggedIn
	}

	return userID, nil
}
