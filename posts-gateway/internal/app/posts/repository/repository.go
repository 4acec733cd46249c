package repository

import (
	"context"
	"time"
)

// IdempotencyRepository remembers Idempotency-Key values the gateway has
// already accepted. The community-post protocol is not atomic, so blind
// client retries can duplicate lists and spots; this store is the layer
// where those retries are caught.
type IdempotencyRepository interface {
	// MarkIfNew records the key and reports whether it was seen before.
	MarkIfNew(ctx context.Context, key string, ttl time.Duration) (seen bool, err error)
}
