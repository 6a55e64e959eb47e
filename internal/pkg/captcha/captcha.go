package captcha

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrChallengeNotFound = errors.New("captcha challenge not found or expired")

// DefaultTTL is how long an issued challenge stays answerable.
const DefaultTTL = 10 * time.Minute

// Challenge is an arithmetic question presented before submission.
type Challenge struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// Store persists challenge answers between issue and verify.
type Store interface {
	Set(ctx context.Context, id string, answer int, ttl time.Duration) error
	// Take returns the stored answer and removes it; a challenge is
	// answerable exactly once.
	Take(ctx context.Context, id string) (int, error)
}

// Service issues and verifies arithmetic CAPTCHA challenges.
type Service struct {
	store Store
	ttl   time.Duration
}

// NewService creates a captcha service
func NewService(store Store, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Service{store: store, ttl: ttl}
}

// Issue creates a new challenge and stores its answer.
func (s *Service) Issue(ctx context.Context) (*Challenge, error) {
	a := rand.Intn(10) + 1
	b := rand.Intn(10) + 1

	id := uuid.New().String()
	if err := s.store.Set(ctx, id, a+b, s.ttl); err != nil {
		return nil, err
	}

	return &Challenge{
		ID:       id,
		Question: fmt.Sprintf("%d + %d = ?", a, b),
	}, nil
}

// Verify consumes the challenge and reports whether the answer matches.
// A wrong answer also consumes the challenge; the caller must issue a
// fresh one.
func (s *Service) Verify(ctx context.Context, id string, answer int) (bool, error) {
	expected, err := s.store.Take(ctx, id)
	if err != nil {
		if errors.Is(err, ErrChallengeNotFound) {
			return false, nil
		}
		return false, err
	}
	return answer == expected, nil
}

// RedisStore keeps challenge answers in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a redis-backed challenge store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "captcha:"}
}

func (s *RedisStore) Set(ctx context.Context, id string, answer int, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+id, answer, ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, id string) (int, error) {
	val, err := s.client.GetDel(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrChallengeNotFound
		}
		return 0, err
	}
	answer, err := strconv.Atoi(val)
	if err != nil {
		return 0, ErrChallengeNotFound
	}
	return answer, nil
}

// MemoryStore keeps challenge answers in process memory. Used in demo
// mode when Redis is not configured.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	answer    int
	expiresAt time.Time
}

// NewMemoryStore creates an in-process challenge store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Set(ctx context.Context, id string, answer int, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[id] = memoryEntry{answer: answer, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok {
		return 0, ErrChallengeNotFound
	}
	delete(s.entries, id)

	if time.Now().After(entry.expiresAt) {
		return 0, ErrChallengeNotFound
	}
	return entry.answer, nil
}
