package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

type RedisTokenBlacklist struct {
	Client *redis.Client
}

// TokenBlacklist is the global instance, nil when Redis is not
// configured (blacklisting is then a no-op).
var TokenBlacklist *RedisTokenBlacklist

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(redisURL string) (*RedisTokenBlacklist, error) {
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

	return &RedisTokenBlacklist{Client: client}, nil
}

// BlacklistTokens invalidates both tokens of a session until they would
// have expired anyway.
func BlacklistTokens(accessToken, refreshToken string) error {
	if TokenBlacklist == nil {
		return nil
	}
	if err := TokenBlacklist.blacklistToken(accessToken, "access"); err != nil {
		return fmt.Errorf("failed to blacklist access token: %w", err)
	}
	if err := TokenBlacklist.blacklistToken(refreshToken, "refresh"); err != nil {
		return fmt.Errorf("failed to blacklist refresh token: %w", err)
	}
	return nil
}

func (tb *RedisTokenBlacklist) blacklistToken(tokenString, tokenType string) error {
	if tokenString == "" {
		return nil
	}

	// An already-expired token needs no blacklist entry; parse errors
	// other than expiry still get a default TTL so a malformed token
	// cannot dodge the list.
	expiration := time.Now().Add(24 * time.Hour)
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err == nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if exp, ok := claims["exp"].(float64); ok {
				expiration = time.Unix(int64(exp), 0)
			}
		}
	}
	ttl := time.Until(expiration)
	if ttl <= 0 {
		return nil
	}

	key := fmt.Sprintf("blacklist:%s:%s", tokenType, tokenString)
	return tb.Client.Set(context.Background(), key, "true", ttl).Err()
}

// IsTokenBlacklisted checks whether a token has been invalidated.
func IsTokenBlacklisted(tokenString string) bool {
	if TokenBlacklist == nil {
		return false
	}
	ctx := context.Background()
	for _, tokenType := range []string{"access", "refresh"} {
		key := fmt.Sprintf("blacklist:%s:%s", tokenType, tokenString)
		if exists, err := TokenBlacklist.Client.Exists(ctx, key).Result(); err == nil && exists > 0 {
			return true
		}
	}
	return false
}

func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}
