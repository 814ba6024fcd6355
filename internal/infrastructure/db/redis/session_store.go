package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gigsly/gigsly-client/internal/core/domain"
)

const (
	tokenKey  = "gigsly_token"
	userKey   = "gigsly_user"
	opTimeout = 2 * time.Second
)

// SessionStore keeps the session token and cached user in Redis so several
// processes of one installation share a login.
// Key format: <prefix>gigsly_token, <prefix>gigsly_user
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	log    zerolog.Logger
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client redis.UniversalClient, prefix string, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		client: client,
		prefix: prefix,
		log:    log.With().Str("component", "redis_session_store").Logger(),
	}
}

func (s *SessionStore) Token() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tok, err := s.client.Get(ctx, s.prefix+tokenKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("read token")
		}
		return "", false
	}
	return tok, tok != ""
}

func (s *SessionStore) SetToken(token string) {
	if token == "" {
		s.del(tokenKey)
		return
	}
	s.set(tokenKey, token)
}

func (s *SessionStore) User() (*domain.User, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.prefix+userKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("read cached user")
		}
		return nil, false
	}

	var u *domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		s.log.Warn().Err(err).Msg("cached user is corrupt, ignoring")
		return nil, false
	}
	return u, u != nil
}

func (s *SessionStore) SetUser(u *domain.User) {
	if u == nil {
		s.del(userKey)
		return
	}
	data, err := json.Marshal(u)
	if err != nil {
		s.log.Warn().Err(err).Msg("encode cached user")
		return
	}
	s.set(userKey, data)
}

func (s *SessionStore) Clear() {
	s.SetToken("")
	s.SetUser(nil)
}

func (s *SessionStore) set(key string, value any) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("write session key")
	}
}

func (s *SessionStore) del(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, s.prefix+key).Err(); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("delete session key")
	}
}
