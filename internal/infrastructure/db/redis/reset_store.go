package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tourism-Ease/booking-api/internal/core/domain"
	"github.com/Tourism-Ease/booking-api/internal/core/ports"
)

const resetKeyPrefix = "pwdreset:"

// ResetStore keeps password-reset flow state in Redis. The record
// expires with its key, so a missing key and an expired code are the
// same condition.
type ResetStore struct {
	client *redis.Client
}

func NewResetStore(client *redis.Client) *ResetStore {
	return &ResetStore{client: client}
}

func (s *ResetStore) key(email string) string {
	return resetKeyPrefix + email
}

func (s *ResetStore) Save(ctx context.Context, email string, rec ports.ResetRecord, ttl time.Duration) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal reset record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(email), payload, ttl).Err(); err != nil {
		return fmt.Errorf("save reset record: %w", err)
	}
	return nil
}

func (s *ResetStore) Get(ctx context.Context, email string) (*ports.ResetRecord, error) {
	payload, err := s.client.Get(ctx, s.key(email)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, domain.ErrResetInvalid
		}
		return nil, fmt.Errorf("get reset record: %w", err)
	}
	var rec ports.ResetRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode reset record: %w", err)
	}
	return &rec, nil
}

// Update rewrites the record without touching the remaining TTL.
func (s *ResetStore) Update(ctx context.Context, email string, rec ports.ResetRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal reset record: %w", err)
	}
	if err := s.client.Set(ctx, s.key(email), payload, redis.KeepTTL).Err(); err != nil {
		return fmt.Errorf("update reset record: %w", err)
	}
	return nil
}

func (s *ResetStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, s.key(email)).Err()
}
