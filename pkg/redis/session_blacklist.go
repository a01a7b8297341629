package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/learnhub/learnhub-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const sessionBlacklistPrefix = "session:revoked:"

// SessionBlacklist remembers logged-out session IDs until the session would have
// expired anyway.
type SessionBlacklist struct {
	client *redis.Client
}

func NewSessionBlacklist(client *redis.Client) *SessionBlacklist {
	return &SessionBlacklist{client: client}
}

func sessionKey(sessionID string) string {
	return sessionBlacklistPrefix + sessionID
}

// Revoke blacklists the session for ttl. A non-positive ttl means the session has
// already expired and nothing is stored.
func (b *SessionBlacklist) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if sessionID == "" {
		return errors.New("empty session id")
	}
	if ttl <= 0 {
		return nil
	}

	logger.Debug("Adding session to blacklist", map[string]interface{}{
		"expiry": ttl.String(),
	})

	if err := b.client.Set(ctx, sessionKey(sessionID), "revoked", ttl).Err(); err != nil {
		logger.Error("Failed to blacklist session", err)
		return fmt.Errorf("failed to blacklist session: %w", err)
	}
	return nil
}

// IsRevoked checks whether the session was logged out.
func (b *SessionBlacklist) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	val, err := b.client.Get(ctx, sessionKey(sessionID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logger.Error("Failed to check session blacklist", err)
		return false, fmt.Errorf("failed to check session blacklist: %w", err)
	}
	return val == "revoked", nil
}
