package repository

import (
	"context"

	"github.com/rs/zerolog"

	"ranked-clicker/internal/domain"
)

type PlayerRepository struct {
	buckets *Buckets
	logger  zerolog.Logger
}

func NewPlayerRepository(buckets *Buckets, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{buckets: buckets, logger: logger}
}

// Load returns the persisted player record, or nil on first run.
func (r *PlayerRepository) Load(ctx context.Context) (*domain.PlayerRecord, error) {
	var record domain.PlayerRecord
	found, err := r.buckets.Load(ctx, BucketPlayer, &record)
	if err != nil {
		return nil, err
	}
	if !found {
		r.logger.Info().Msg("no player record yet")
		return nil, nil
	}
	return &record, nil
}

func (r *PlayerRepository) Save(ctx context.Context, record *domain.PlayerRecord) error {
	return r.buckets.Save(ctx, BucketPlayer, record)
}
