package repository

import "context"

// CacheRepository stores serialized reports by key. A miss or a backend
// failure both report ok == false; callers recompute in either case.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
