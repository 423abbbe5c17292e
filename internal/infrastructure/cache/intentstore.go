package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/planhaus/planhaus/internal/domain/checkout"
)

// CheckoutIntentPrefix is the Redis key prefix for checkout intents
const CheckoutIntentPrefix = "checkout:intent:"

// RedisIntentStore stores checkout intents in Redis with a TTL. An intent
// that expires simply disappears and the buyer restarts from the catalog.
type RedisIntentStore struct {
	client *redis.Client
	prefix string
}

// NewRedisIntentStore creates a Redis-backed checkout intent store
func NewRedisIntentStore(client *redis.Client) *RedisIntentStore {
	return &RedisIntentStore{
		client: client,
		prefix: CheckoutIntentPrefix,
	}
}

// Save stores the intent under its ID with the given TTL
func (s *RedisIntentStore) Save(ctx context.Context, intent *checkout.Intent, ttl time.Duration) error {
	if intent == nil {
		return errors.New("intent cannot be nil")
	}
	if intent.ID == "" {
		return errors.New("intent ID cannot be empty")
	}
	if ttl <= 0 {
		return errors.New("ttl must be positive")
	}

	data, err := json.Marshal(intent)
	if err != nil {
		return fmt.Errorf("failed to marshal checkout intent: %w", err)
	}

	if err := s.client.Set(ctx, s.buildKey(intent.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store checkout intent in Redis: %w", err)
	}

	return nil
}

// Get retrieves an intent by ID. Returns (nil, nil) when the intent does not
// exist or has expired.
func (s *RedisIntentStore) Get(ctx context.Context, intentID string) (*checkout.Intent, error) {
	if intentID == "" {
		return nil, errors.New("intent ID cannot be empty")
	}

	data, err := s.client.Get(ctx, s.buildKey(intentID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve checkout intent from Redis: %w", err)
	}

	var intent checkout.Intent
	if err := json.Unmarshal([]byte(data), &intent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkout intent: %w", err)
	}

	return &intent, nil
}

// Delete removes an intent once the purchase it describes has been initiated
func (s *RedisIntentStore) Delete(ctx context.Context, intentID string) error {
	if intentID == "" {
		return errors.New("intent ID cannot be empty")
	}

	if err := s.client.Del(ctx, s.buildKey(intentID)).Err(); err != nil {
		return fmt.Errorf("failed to delete checkout intent from Redis: %w", err)
	}

	return nil
}

func (s *RedisIntentStore) buildKey(intentID string) string {
	return s.prefix + intentID
}
