package usecase

import (
	"context"
	"time"
)

// Cache is the read-cache port consumed by usecases. A nil Cache is always
// legal; implementations bypass gracefully when the backend is down.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
