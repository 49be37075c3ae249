package service

import (
	"context"

	"ranked-clicker/internal/domain"
)

// In-memory persistence fakes; the engine only ever needs load/save.

type memPlayerStore struct {
	record *domain.PlayerRecord
}

func (m *memPlayerStore) Load(_ context.Context) (*domain.PlayerRecord, error) {
	return m.record, nil
}

func (m *memPlayerStore) Save(_ context.Context, record *domain.PlayerRecord) error {
	m.record = record
	return nil
}

type memTournamentStore struct {
	state *domain.TournamentState
}

func (m *memTournamentStore) Load(_ context.Context) (*domain.TournamentState, error) {
	return m.state, nil
}

func (m *memTournamentStore) Save(_ context.Context, state *domain.TournamentState) error {
	m.state = state
	return nil
}

type memLeaderboardStore struct {
	state *domain.LeaderboardState
}

func (m *memLeaderboardStore) Load(_ context.Context) (*domain.LeaderboardState, error) {
	return m.state, nil
}

func (m *memLeaderboardStore) Save(_ context.Context, state *domain.LeaderboardState) error {
	m.state = state
	return nil
}

type memNewsStore struct {
	cache *domain.NewsCache
}

func (m *memNewsStore) Load(_ context.Context) (*domain.NewsCache, error) {
	return m.cache, nil
}

func (m *memNewsStore) Save(_ context.Context, cache *domain.NewsCache) error {
	m.cache = cache
	return nil
}

// scriptedRNG makes probabilistic branches deterministic: Float64 always
// returns f, Intn always returns 0, Between collapses to one end of its
// range and Shuffle is the identity.
type scriptedRNG struct {
	f         float64
	betweenHi bool
}

func (s *scriptedRNG) Intn(_ int) int { return 0 }

func (s *scriptedRNG) Float64() float64 { return s.f }

func (s *scriptedRNG) Between(lo, hi int) int {
	if s.betweenHi {
		return hi
	}
	return lo
}

func (s *scriptedRNG) Chance(p float64) bool { return s.f < p }

func (s *scriptedRNG) Shuffle(_ int, _ func(i, j int)) {}
