package repository

import (
	"context"

	"github.com/rs/zerolog"

	"ranked-clicker/internal/domain"
)

type TournamentRepository struct {
	buckets *Buckets
	logger  zerolog.Logger
}

func NewTournamentRepository(buckets *Buckets, logger zerolog.Logger) *TournamentRepository {
	return &TournamentRepository{buckets: buckets, logger: logger}
}

// Load returns the tournament/title history state, or nil on first run.
func (r *TournamentRepository) Load(ctx context.Context) (*domain.TournamentState, error) {
	var state domain.TournamentState
	found, err := r.buckets.Load(ctx, BucketTournament, &state)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &state, nil
}

func (r *TournamentRepository) Save(ctx context.Context, state *domain.TournamentState) error {
	return r.buckets.Save(ctx, BucketTournament, state)
}
