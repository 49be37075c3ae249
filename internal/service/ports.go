package service

import (
	"context"

	"ranked-clicker/internal/domain"
)

// Persistence ports. The engine only needs "read prior state, write new
// state"; the sqlite-backed repositories satisfy these in production and
// tests use in-memory fakes.

type PlayerStore interface {
	Load(ctx context.Context) (*domain.PlayerRecord, error)
	Save(ctx context.Context, record *domain.PlayerRecord) error
}

type TournamentStore interface {
	Load(ctx context.Context) (*domain.TournamentState, error)
	Save(ctx context.Context, state *domain.TournamentState) error
}

type LeaderboardStore interface {
	Load(ctx context.Context) (*domain.LeaderboardState, error)
	Save(ctx context.Context, state *domain.LeaderboardState) error
}

type NewsStore interface {
	Load(ctx context.Context) (*domain.NewsCache, error)
	Save(ctx context.Context, cache *domain.NewsCache) error
}
