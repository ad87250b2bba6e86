package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrTokenInvalid indicates a missing, expired, or revoked bearer token.
var ErrTokenInvalid = errors.New("auth: invalid token")

// TokenManager issues and resolves opaque bearer tokens backed by Redis.
type TokenManager struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTokenManager constructs a TokenManager.
func NewTokenManager(client *redis.Client, ttl time.Duration) *TokenManager {
	return &TokenManager{client: client, ttl: ttl}
}

// Issue creates a fresh token for the user and stores it with the TTL.
func (tm *TokenManager) Issue(ctx context.Context, userID int64) (string, error) {
	token := strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
	if err := tm.client.Set(ctx, tm.key(token), strconv.FormatInt(userID, 10), tm.ttl).Err(); err != nil {
		return "", fmt.Errorf("auth: store token: %w", err)
	}
	return token, nil
}

// Resolve returns the user ID behind a token, refreshing its TTL.
func (tm *TokenManager) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrTokenInvalid
	}
	val, err := tm.client.GetEx(ctx, tm.key(token), tm.ttl).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrTokenInvalid
		}
		return 0, fmt.Errorf("auth: resolve token: %w", err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, ErrTokenInvalid
	}
	return userID, nil
}

// Revoke deletes a token. Revoking an unknown token is not an error.
func (tm *TokenManager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := tm.client.Del(ctx, tm.key(token)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("auth: revoke token: %w", err)
	}
	return nil
}

func (tm *TokenManager) key(token string) string {
	return "finsight:token:" + token
}
