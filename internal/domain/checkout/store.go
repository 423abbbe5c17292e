package checkout

import (
	"context"
	"time"
)

// IntentStore persists checkout intents with a TTL. Get returns (nil, nil)
// when the intent does not exist or has expired.
type IntentStore interface {
	Save(ctx context.Context, intent *Intent, ttl time.Duration) error
	Get(ctx context.Context, intentID string) (*Intent, error)
	Delete(ctx context.Context, intentID string) error
}
