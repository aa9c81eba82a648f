package repository

import "context"

// CacheRepository memoizes serialized results by key.
//
//go:generate mockgen -destination=mocks/mock_cache_repository.go -package=mock_repository -source=cache_repository.go CacheRepository
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}
