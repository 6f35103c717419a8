package ports

import "context"

// CacheService provides read-through caching for reference data that
// outlives a single run (planning-area boundaries, geocoded
// descriptions). Implementations must be safe for concurrent use.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
