package repository

import (
	"context"

	"github.com/rs/zerolog"

	"ranked-clicker/internal/domain"
)

type LeaderboardRepository struct {
	buckets *Buckets
	logger  zerolog.Logger
}

func NewLeaderboardRepository(buckets *Buckets, logger zerolog.Logger) *LeaderboardRepository {
	return &LeaderboardRepository{buckets: buckets, logger: logger}
}

func (r *LeaderboardRepository) Load(ctx context.Context) (*domain.LeaderboardState, error) {
	var state domain.LeaderboardState
	found, err := r.buckets.Load(ctx, BucketLeaderboard, &state)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &state, nil
}

func (r *LeaderboardRepository) Save(ctx context.Context, state *domain.LeaderboardState) error {
	return r.buckets.Save(ctx, BucketLeaderboard, state)
}
