package ports

import (
	"context"
	"time"
)

// PageCache caches rendered page bodies. Get returns ErrCacheMiss from the
// adapter when the key is absent; callers treat any Get error as a miss.
type PageCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}
