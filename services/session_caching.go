package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"zenflow/model"
)

// SessionCache is a Redis read-through cache in front of the sessions
// collection. Misses and failures fall back to Mongo, so it is safe to
// run without it.
type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// GlobalSessionCache is nil when Redis is not configured.
var GlobalSessionCache *SessionCache

func NewSessionCache(redisURL string, ttl time.Duration) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &SessionCache{client: client, ttl: ttl}, nil
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func userSessionsKey(userID string) string {
	return "user_sessions:" + userID
}

// SetSession caches one session document and records its membership in
// the user's session set for invalidation.
func (sc *SessionCache) SetSession(session *model.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	ctx := context.Background()
	pipe := sc.client.Pipeline()
	pipe.Set(ctx, sessionKey(session.SessionID), data, sc.ttl)
	pipe.SAdd(ctx, userSessionsKey(session.UserID), session.SessionID)
	pipe.Expire(ctx, userSessionsKey(session.UserID), sc.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// GetSession returns the cached session or (nil, nil) on a miss.
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	data, err := sc.client.Get(context.Background(), sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession evicts one session from the cache.
func (sc *SessionCache) DeleteSession(sessionID string) error {
	return sc.client.Del(context.Background(), sessionKey(sessionID)).Err()
}

// InvalidateUserSessions evicts every cached session of the user.
func (sc *SessionCache) InvalidateUserSessions(userID string) error {
	ctx := context.Background()
	ids, err := sc.client.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, sessionKey(id))
	}
	keys = append(keys, userSessionsKey(userID))
	return sc.client.Del(ctx, keys...).Err()
}

func (sc *SessionCache) Close() error {
	return sc.client.Close()
}
