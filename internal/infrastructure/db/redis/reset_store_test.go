package redis

import (
	"context"
	"crypto/sha256"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return srv, client
}

func TestResetStoreRoundTrip(t *testing.T) {
	_, client := newTestClient(t)
	store := NewResetStore(client)
	ctx := context.Background()

	rec := ports.ResetRecord{CodeHash: sha256.Sum256([]byte("123456"))}
	if err := store.Save(ctx, "ada@example.com", rec, 10*time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Get(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CodeHash != rec.CodeHash || got.Attempts != 0 || got.Verified {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestResetStoreMissingRecord(t *testing.T) {
	_, client := newTestClient(t)
	store := NewResetStore(client)

	if _, err := store.Get(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrResetInvalid) {
		t.Fatalf("expected ErrResetInvalid, got %v", err)
	}
}

func TestResetStoreExpiry(t *testing.T) {
	srv, client := newTestClient(t)
	store := NewResetStore(client)
	ctx := context.Background()

	if err := store.Save(ctx, "ada@example.com", ports.ResetRecord{}, 10*time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}

	srv.FastForward(11 * time.Minute)

	// Expired and missing are the same condition.
	if _, err := store.Get(ctx, "ada@example.com"); !errors.Is(err, domain.ErrResetInvalid) {
		t.Fatalf("expected ErrResetInvalid after expiry, got %v", err)
	}
}

func TestResetStoreUpdateKeepsTTL(t *testing.T) {
	srv, client := newTestClient(t)
	store := NewResetStore(client)
	ctx := context.Background()

	if err := store.Save(ctx, "ada@example.com", ports.ResetRecord{}, 10*time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	srv.FastForward(5 * time.Minute)

	if err := store.Update(ctx, "ada@example.com", ports.ResetRecord{Attempts: 2}); err != nil {
		t.Fatalf("update: %v", err)
	}

	// The update must not have reset the clock: the original deadline
	// still applies.
	srv.FastForward(6 * time.Minute)
	if _, err := store.Get(ctx, "ada@example.com"); !errors.Is(err, domain.ErrResetInvalid) {
		t.Fatalf("expected record expired on original deadline, got %v", err)
	}
}

func TestResetStoreDelete(t *testing.T) {
	_, client := newTestClient(t)
	store := NewResetStore(client)
	ctx := context.Background()

	if err := store.Save(ctx, "ada@example.com", ports.ResetRecord{}, time.Minute); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "ada@example.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, "ada@example.com"); !errors.Is(err, domain.ErrResetInvalid) {
		t.Fatalf("expected record gone, got %v", err)
	}
}
