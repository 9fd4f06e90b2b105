package session

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/doeshing/fakenews-go/internal/domain"
)

func TestMemoryStoreGetOrInitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	state, err := store.GetOrInit(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	state.Input = "draft"
	state.History = append(state.History, domain.PredictionRecord{News: "n", Result: "r"})
	if err := store.Set(ctx, state); err != nil {
		t.Fatal(err)
	}

	again, err := store.GetOrInit(ctx, state.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != state.ID || again.Input != "draft" || len(again.History) != 1 {
		t.Fatalf("GetOrInit overwrote existing state: %+v", again)
	}
}

func TestMemoryStoreAllocatesIDs(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	a, _ := store.GetOrInit(context.Background(), "")
	b, _ := store.GetOrInit(context.Background(), "")
	if a.ID == "" || b.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct generated ids, got %q and %q", a.ID, b.ID)
	}
	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
}

func TestMemoryStoreDoesNotAdoptUnknownIDs(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	chosen := "6f1c7a52-3f0e-4d8e-9b7a-0c2d4e6f8a10"

	got, err := store.GetOrInit(context.Background(), chosen)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID == chosen || got.ID == "" {
		t.Fatalf("GetOrInit adopted client id %q", got.ID)
	}
	if err := store.Delete(context.Background(), chosen); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("client id must not be stored, Delete = %v", err)
	}
}

func TestMemoryStoreSkipsTakenIDs(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	ids := []string{"taken", "taken", "fresh"}
	store.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	first, _ := store.GetOrInit(ctx, "")
	first.Input = "keep me"
	_ = store.Set(ctx, first)

	second, err := store.GetOrInit(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != "fresh" || second.Input != "" {
		t.Fatalf("second session = %+v, want a new session under %q", second, "fresh")
	}
	if again, _ := store.GetOrInit(ctx, "taken"); again.Input != "keep me" {
		t.Errorf("existing session was disturbed: %+v", again)
	}
}

func TestMemoryStoreExpiresIdleSessions(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore(time.Minute)
	store.now = func() time.Time { return now }

	state, _ := store.GetOrInit(ctx, "")
	state.Input = "hello"
	_ = store.Set(ctx, state)

	now = now.Add(30 * time.Second)
	if got, _ := store.GetOrInit(ctx, state.ID); got.Input != "hello" {
		t.Fatalf("session expired too early: %+v", got)
	}

	now = now.Add(2 * time.Minute)
	got, _ := store.GetOrInit(ctx, state.ID)
	if got.Input != "" || got.ID == state.ID {
		t.Fatalf("expected fresh session under a new id after ttl, got %+v", got)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)
	state, _ := store.GetOrInit(ctx, "")
	state.History = append(state.History, domain.PredictionRecord{News: "a"})
	_ = store.Set(ctx, state)

	state.History[0].News = "mutated"
	got, _ := store.GetOrInit(ctx, state.ID)
	if got.History[0].News != "a" {
		t.Fatalf("store shares memory with caller: %+v", got.History)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	state, _ := store.GetOrInit(ctx, "")

	if err := store.Delete(ctx, state.ID); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(ctx, state.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestOpenRedisStoreRejectsBadURL(t *testing.T) {
	if _, err := OpenRedisStore("mysql://nope", time.Minute); err == nil {
		t.Fatal("expected url parse error")
	}
}

func TestRedisStoreSurfacesConnectionErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	store := NewRedisStore(client, time.Minute)
	defer store.Close()

	ctx := context.Background()
	if _, err := store.GetOrInit(ctx, "s"); err == nil || errors.Is(err, redis.Nil) {
		t.Fatalf("expected connection error, got %v", err)
	}
	if err := store.Set(ctx, domain.NewSessionState("s")); err == nil {
		t.Fatal("expected connection error from Set")
	}
	if err := store.Ping(ctx); err == nil {
		t.Fatal("expected connection error from Ping")
	}
}

func TestRedisKey(t *testing.T) {
	if got := redisKey("abc"); got != "fakenews:session:abc" {
		t.Errorf("redisKey() = %q", got)
	}
}

func newMiniRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStoreGetOrInit(t *testing.T) {
	existing := domain.NewSessionState("6f1c7a52-3f0e-4d8e-9b7a-0c2d4e6f8a10")
	existing.Input = "draft"
	existing.History = []domain.PredictionRecord{{News: "n", Result: "r", Label: domain.LabelFake}}
	seed, _ := json.Marshal(existing)

	tests := []struct {
		name      string
		id        string
		seed      bool
		wantID    string
		wantInput string
	}{
		{name: "empty id mints a session", id: ""},
		{name: "unknown id is not adopted", id: "11111111-2222-4333-8444-555555555555"},
		{name: "stored session is returned", id: existing.ID, seed: true, wantID: existing.ID, wantInput: "draft"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mr := newMiniRedisStore(t, time.Hour)
			if tt.seed {
				if err := mr.Set(redisKey(existing.ID), string(seed)); err != nil {
					t.Fatal(err)
				}
			}

			got, err := store.GetOrInit(context.Background(), tt.id)
			if err != nil {
				t.Fatalf("GetOrInit error: %v", err)
			}
			if tt.wantID != "" && got.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", got.ID, tt.wantID)
			}
			if tt.wantID == "" && (got.ID == "" || got.ID == tt.id) {
				t.Errorf("ID = %q, want a freshly minted id", got.ID)
			}
			if got.Input != tt.wantInput {
				t.Errorf("Input = %q, want %q", got.Input, tt.wantInput)
			}
			if got.History == nil {
				t.Error("History must be non-nil")
			}
			if !mr.Exists(redisKey(got.ID)) {
				t.Errorf("key %s not written", redisKey(got.ID))
			}
			if tt.id != "" && tt.id != got.ID && mr.Exists(redisKey(tt.id)) {
				t.Errorf("client id %s must not be stored", tt.id)
			}
		})
	}
}

func TestRedisStoreGetOrInitIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store, _ := newMiniRedisStore(t, time.Hour)

	state, err := store.GetOrInit(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	state.Input = "draft"
	state.Pending = domain.CommandClearInput
	state.History = append(state.History, domain.PredictionRecord{News: "n", Result: "r", Label: domain.LabelReal})
	if err := store.Set(ctx, state); err != nil {
		t.Fatal(err)
	}

	again, err := store.GetOrInit(ctx, state.ID)
	if err != nil {
		t.Fatal(err)
	}
	if again.ID != state.ID || again.Input != "draft" || again.Pending != domain.CommandClearInput {
		t.Fatalf("GetOrInit overwrote existing state: %+v", again)
	}
	if len(again.History) != 1 || again.History[0] != state.History[0] {
		t.Errorf("History = %+v, want %+v", again.History, state.History)
	}
}

func TestRedisStoreSkipsTakenIDs(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniRedisStore(t, time.Hour)
	taken := domain.NewSessionState("taken")
	taken.Input = "keep me"
	raw, _ := json.Marshal(taken)
	if err := mr.Set(redisKey("taken"), string(raw)); err != nil {
		t.Fatal(err)
	}

	ids := []string{"taken", "fresh"}
	store.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	got, err := store.GetOrInit(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != "fresh" || got.Input != "" {
		t.Fatalf("GetOrInit = %+v, want a new session under %q", got, "fresh")
	}
	stored, _ := mr.Get(redisKey("taken"))
	if stored != string(raw) {
		t.Errorf("existing session was overwritten: %s", stored)
	}
}

func TestRedisStoreGivesUpWhenEveryIDIsTaken(t *testing.T) {
	store, mr := newMiniRedisStore(t, time.Hour)
	if err := mr.Set(redisKey("taken"), "{}"); err != nil {
		t.Fatal(err)
	}
	store.newID = func() string { return "taken" }

	if _, err := store.GetOrInit(context.Background(), ""); err == nil {
		t.Fatal("expected error when no id can be claimed")
	}
}

func TestRedisStoreSetAppliesTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniRedisStore(t, 30*time.Minute)

	state, err := store.GetOrInit(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := mr.TTL(redisKey(state.ID)); got != 30*time.Minute {
		t.Errorf("TTL after init = %v, want 30m", got)
	}

	mr.FastForward(20 * time.Minute)
	state.Input = "touched"
	if err := store.Set(ctx, state); err != nil {
		t.Fatal(err)
	}
	if got := mr.TTL(redisKey(state.ID)); got != 30*time.Minute {
		t.Errorf("TTL after Set = %v, want it refreshed to 30m", got)
	}

	mr.FastForward(31 * time.Minute)
	if mr.Exists(redisKey(state.ID)) {
		t.Fatal("session should expire after the ttl")
	}
	fresh, err := store.GetOrInit(ctx, state.ID)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.ID == state.ID || fresh.Input != "" {
		t.Errorf("expected a new session after expiry, got %+v", fresh)
	}
}

func TestRedisStoreDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newMiniRedisStore(t, time.Hour)
	state, err := store.GetOrInit(ctx, "")
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Delete(ctx, state.ID); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if mr.Exists(redisKey(state.ID)) {
		t.Error("key still present after Delete")
	}
	if err := store.Delete(ctx, state.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRedisStorePing(t *testing.T) {
	store, _ := newMiniRedisStore(t, time.Minute)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping error: %v", err)
	}
}
