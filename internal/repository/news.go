package repository

import (
	"context"

	"github.com/rs/zerolog"

	"ranked-clicker/internal/domain"
)

type NewsRepository struct {
	buckets *Buckets
	logger  zerolog.Logger
}

func NewNewsRepository(buckets *Buckets, logger zerolog.Logger) *NewsRepository {
	return &NewsRepository{buckets: buckets, logger: logger}
}

func (r *NewsRepository) Load(ctx context.Context) (*domain.NewsCache, error) {
	var cache domain.NewsCache
	found, err := r.buckets.Load(ctx, BucketNews, &cache)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &cache, nil
}

func (r *NewsRepository) Save(ctx context.Context, cache *domain.NewsCache) error {
	return r.buckets.Save(ctx, BucketNews, cache)
}
