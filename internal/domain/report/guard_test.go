package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func TestMemoryVoteGuardDeduplicates(t *testing.T) {
	g := NewMemoryVoteGuard()
	ctx := context.Background()
	id := uuid.New()

	fresh, err := g.Remember(ctx, "session-1", "vote", id)
	if err != nil {
		t.Fatalf("remember failed: %v", err)
	}
	if !fresh {
		t.Fatal("first vote in a session must be fresh")
	}

	fresh, err = g.Remember(ctx, "session-1", "vote", id)
	if err != nil {
		t.Fatalf("remember failed: %v", err)
	}
	if fresh {
		t.Fatal("second vote in the same session must be rejected")
	}
}

func TestMemoryVoteGuardScopesByKey(t *testing.T) {
	g := NewMemoryVoteGuard()
	ctx := context.Background()
	id := uuid.New()

	if fresh, _ := g.Remember(ctx, "session-1", "vote", id); !fresh {
		t.Fatal("first vote must be fresh")
	}

	// Same report, different session: deduplication is session-scoped.
	if fresh, _ := g.Remember(ctx, "session-2", "vote", id); !fresh {
		t.Error("a new session may vote on the same report")
	}

	// Same session, different action: voting does not block flagging.
	if fresh, _ := g.Remember(ctx, "session-1", "flag", id); !fresh {
		t.Error("a vote must not block a flag on the same report")
	}

	// Same session, different report.
	if fresh, _ := g.Remember(ctx, "session-1", "vote", uuid.New()); !fresh {
		t.Error("a vote on one report must not block votes on others")
	}
}

func TestRedisVoteGuardFailsOpen(t *testing.T) {
	// Nothing listens on this address; every command errors out.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
	})
	g := NewRedisVoteGuard(client)

	fresh, err := g.Remember(context.Background(), "session-1", "vote", uuid.New())
	if err != nil {
		t.Fatalf("guard trouble must not surface as an error: %v", err)
	}
	if !fresh {
		t.Fatal("an unavailable guard must let the action through")
	}
}
