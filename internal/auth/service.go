package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fitfolio/backend/internal/telemetry/tracing"
	"github.com/fitfolio/backend/pkg"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fitfolio-service-session||"
	tokensSetKey     = "fitfolio-service-sessions"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("not logged in")
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type User struct {
	ID           int
	Username     string
	PasswordHash string
}

type userStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Service struct {
	users       userStore
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(users userStore, ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		users:          users,
		redisClient:    redisClient,
		ttl:            ttl,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

// Login checks the credentials against the users store and, if valid,
// creates a new session token bound to the user id.
func (s *Service) Login(ctx context.Context, credentials Credentials) (_ string, _ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.login")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	user, err := s.users.GetByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", 0, ErrInvalidCredentials
		}
		return "", 0, fmt.Errorf("get user: %w", err)
	}

	if !pkg.CheckPasswordHash(credentials.Password, user.PasswordHash) {
		return "", 0, ErrInvalidCredentials
	}

	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", 0, fmt.Errorf("generate token: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	sessionVal := sessionValue(user.ID, time.Now())
	if err := s.redisClient.Set(ctx, sessionKey, sessionVal, 0).Err(); err != nil {
		return "", 0, fmt.Errorf("store session: %w", err)
	}

	// add token to the list of sessions
	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", 0, fmt.Errorf("add session to set: %w", err)
	}

	return token, user.ID, nil
}

func (s *Service) Logout(ctx context.Context, token string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "auth.logout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.Get(ctx, sessionKey).Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotLoggedIn
		}
		return err
	}

	if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return err
	}

	// remove token from the list of sessions
	return s.redisClient.SRem(ctx, tokensSetKey, token).Err()
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *Service) ScanAndClean(ctx context.Context) {
	cmd := s.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("auth service, scan and clean, get sessions: %s", err)
		return
	}

	sessionTokens := cmd.Val()
	if len(sessionTokens) == 0 {
		return
	}

	log.Debugf("auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	var removed int
	for _, token := range sessionTokens {
		sessionKey := sessionKeyPrefix + token
		sessionVal, err := s.redisClient.Get(ctx, sessionKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			log.Errorf("auth service, scan and clean token %s: %s", token, err)
			continue
		}

		_, createdAt, parseErr := parseSessionValue(sessionVal)
		expired := errors.Is(err, redis.Nil) || parseErr != nil || time.Since(createdAt) > s.ttl
		if !expired {
			continue
		}

		if err := s.redisClient.Del(ctx, sessionKey).Err(); err != nil {
			log.Errorf("auth service, scan and clean, del session %s: %s", token, err)
			continue
		}
		if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
			log.Errorf("auth service, scan and clean, srem session %s: %s", token, err)
			continue
		}
		removed++
	}

	log.Debugf("auth service, scan and clean done, removed %d of %d", removed, len(sessionTokens))
}

func sessionValue(userID int, createdAt time.Time) string {
	return strconv.Itoa(userID) + ":" + strconv.FormatInt(createdAt.Unix(), 10)
}

func parseSessionValue(val string) (userID int, createdAt time.Time, err error) {
	var createdAtUnix int64
	if _, err := fmt.Sscanf(val, "%d:%d", &userID, &createdAtUnix); err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed session value: %w", err)
	}
	return userID, time.Unix(createdAtUnix, 0), nil
}
