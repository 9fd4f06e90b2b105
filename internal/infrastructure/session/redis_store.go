package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/doeshing/fakenews-go/internal/domain"
	"github.com/doeshing/fakenews-go/internal/ports"
)

const (
	redisKeyPrefix = "fakenews:session:"
	// attempts at claiming a fresh key before giving up
	redisInitAttempts = 3
)

// RedisStore keeps sessions as JSON values that expire after the TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
	newID  func() string
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now, newID: uuid.NewString}
}

// OpenRedisStore connects using a redis:// URL.
func OpenRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return NewRedisStore(redis.NewClient(opts), ttl), nil
}

// Ping checks connectivity.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Close releases the client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// GetOrInit implements ports.SessionStore. Any id the store does not hold gets a
// new session under a freshly minted id; client-chosen ids are never adopted.
func (s *RedisStore) GetOrInit(ctx context.Context, id string) (domain.SessionState, error) {
	if id != "" {
		state, err := s.get(ctx, id)
		if err == nil {
			return state, nil
		}
		if !errors.Is(err, redis.Nil) {
			return domain.SessionState{}, err
		}
	}

	for attempt := 0; attempt < redisInitAttempts; attempt++ {
		state := domain.NewSessionState(s.newID())
		state.UpdatedAt = s.now()
		raw, err := json.Marshal(state)
		if err != nil {
			return domain.SessionState{}, err
		}
		created, err := s.client.SetNX(ctx, redisKey(state.ID), raw, s.ttl).Result()
		if err != nil {
			return domain.SessionState{}, fmt.Errorf("redis setnx failed for session %s: %w", state.ID, err)
		}
		if created {
			return state, nil
		}
		// the minted id is already held by another session
	}
	return domain.SessionState{}, fmt.Errorf("redis session init: no free id after %d attempts", redisInitAttempts)
}

// Set implements ports.SessionStore.
func (s *RedisStore) Set(ctx context.Context, state domain.SessionState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(state.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed for session %s: %w", state.ID, err)
	}
	return nil
}

// Delete implements ports.SessionStore.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := s.client.Del(ctx, redisKey(id)).Result()
	if err != nil {
		return fmt.Errorf("redis del failed for session %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) get(ctx context.Context, id string) (domain.SessionState, error) {
	raw, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.SessionState{}, err
		}
		return domain.SessionState{}, fmt.Errorf("redis get failed for session %s: %w", id, err)
	}
	var state domain.SessionState
	if err := json.Unmarshal(raw, &state); err != nil {
		return domain.SessionState{}, fmt.Errorf("decode session %s: %w", id, err)
	}
	if state.History == nil {
		state.History = []domain.PredictionRecord{}
	}
	return state, nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

var _ ports.SessionStore = (*RedisStore)(nil)
