package report

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// VoteGuard remembers which reports a browser session has already voted
// on or flagged. Deduplication is session-scoped only: it is not tied
// to a user account and does not survive a new session, so it is a
// documented soft limit, not an enforcement mechanism.
type VoteGuard interface {
	// Remember records the action and reports whether it was the first
	// occurrence for this session.
	Remember(ctx context.Context, sessionID, action string, reportID uuid.UUID) (bool, error)
}

const guardTTL = 24 * time.Hour

// RedisVoteGuard keeps session action markers in Redis.
type RedisVoteGuard struct {
	client *redis.Client
}

// NewRedisVoteGuard creates a redis-backed vote guard
func NewRedisVoteGuard(client *redis.Client) *RedisVoteGuard {
	return &RedisVoteGuard{client: client}
}

func (g *RedisVoteGuard) Remember(ctx context.Context, sessionID, action string, reportID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("dedup:%s:%s:%s", sessionID, action, reportID)
	fresh, err := g.client.SetNX(ctx, key, 1, guardTTL).Result()
	if err != nil {
		// Dedup is advisory; on Redis trouble let the vote through.
		log.Error().Err(err).Msg("Vote guard unavailable, allowing action")
		return true, nil
	}
	return fresh, nil
}

// MemoryVoteGuard keeps session action markers in process memory. Used
// in demo mode when Redis is not configured.
type MemoryVoteGuard struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewMemoryVoteGuard creates an in-process vote guard
func NewMemoryVoteGuard() *MemoryVoteGuard {
	return &MemoryVoteGuard{seen: make(map[string]struct{})}
}

func (g *MemoryVoteGuard) Remember(ctx context.Context, sessionID, action string, reportID uuid.UUID) (bool, error) {
	key := fmt.Sprintf("%s:%s:%s", sessionID, action, reportID)

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.seen[key]; ok {
		return false, nil
	}
	g.seen[key] = struct{}{}
	return true, nil
}
