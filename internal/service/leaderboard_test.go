package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranked-clicker/internal/constants"
	"ranked-clicker/internal/domain"
	"ranked-clicker/internal/rng"
)

func newLeaderboard(t *testing.T) (*LeaderboardService, *memLeaderboardStore) {
	t.Helper()
	store := &memLeaderboardStore{}
	return NewLeaderboardService(store, rng.NewSeeded(7), zerolog.Nop()), store
}

func testPlayer(mmr int) *domain.PlayerRecord {
	record := &domain.PlayerRecord{
		Username: "tester",
		MMR:      make(map[domain.GameMode]int),
		Stats:    make(map[domain.GameMode]*domain.ModeStats),
	}
	for _, mode := range domain.Modes {
		record.MMR[mode] = mmr
		record.Stats[mode] = &domain.ModeStats{Wins: 40, Losses: 12}
	}
	return record
}

func requireSortedDesc(t *testing.T, board []domain.LeaderboardEntry) {
	t.Helper()
	for i := 1; i < len(board); i++ {
		require.GreaterOrEqual(t, board[i-1].MMR, board[i].MMR, "board out of order at %d", i)
	}
}

func TestBoardInitialization(t *testing.T) {
	svc, _ := newLeaderboard(t)
	ctx := context.Background()

	for _, mode := range domain.Modes {
		board, err := svc.Board(ctx, mode)
		require.NoError(t, err)
		require.Len(t, board, constants.LeaderboardSize)
		requireSortedDesc(t, board)

		assert.Equal(t, modeMaxMMR[mode], board[0].MMR)
		assert.Equal(t, constants.LeaderboardFloorMMR, board[len(board)-1].MMR)

		names := make(map[string]bool)
		for _, entry := range board {
			require.False(t, names[entry.Name], "duplicate name %s", entry.Name)
			names[entry.Name] = true
			assert.False(t, entry.IsPlayer)

			games := entry.Wins + entry.Losses
			require.Greater(t, games, 0)
			winRate := float64(entry.Wins) / float64(games)
			assert.GreaterOrEqual(t, winRate, constants.LeaderboardMinWinRate-0.01)
		}
	}
}

func TestSplicePlayerBelowFloorStaysOff(t *testing.T) {
	svc, _ := newLeaderboard(t)
	ctx := context.Background()

	require.NoError(t, svc.SplicePlayer(ctx, testPlayer(constants.LeaderboardFloorMMR-1)))

	board, err := svc.Board(ctx, domain.Mode1v1)
	require.NoError(t, err)
	for _, entry := range board {
		assert.False(t, entry.IsPlayer)
	}
}

func TestSplicePlayerInsertsOnce(t *testing.T) {
	svc, _ := newLeaderboard(t)
	ctx := context.Background()

	require.NoError(t, svc.SplicePlayer(ctx, testPlayer(3000)))
	require.NoError(t, svc.SplicePlayer(ctx, testPlayer(3100)))

	for _, mode := range domain.Modes {
		board, err := svc.Board(ctx, mode)
		require.NoError(t, err)
		require.Len(t, board, constants.LeaderboardSize)
		requireSortedDesc(t, board)

		players := 0
		for _, entry := range board {
			if entry.IsPlayer {
				players++
				assert.Equal(t, "tester", entry.Name)
				assert.Equal(t, 3100, entry.MMR)
				assert.Equal(t, 40, entry.Wins)
			}
		}
		assert.Equal(t, 1, players, "mode %s", mode)
	}
}

func TestSplicePlayerRemovedWhenRatingDrops(t *testing.T) {
	svc, _ := newLeaderboard(t)
	ctx := context.Background()

	require.NoError(t, svc.SplicePlayer(ctx, testPlayer(3200)))
	require.NoError(t, svc.SplicePlayer(ctx, testPlayer(2400)))

	// Splicing in pushed the lowest seeded entry off, so the board is one
	// short after the player leaves again.
	board, err := svc.Board(ctx, domain.Mode1v1)
	require.NoError(t, err)
	require.Len(t, board, constants.LeaderboardSize-1)
	for _, entry := range board {
		assert.False(t, entry.IsPlayer)
	}
}

func TestRank(t *testing.T) {
	svc, _ := newLeaderboard(t)
	ctx := context.Background()

	pos, err := svc.Rank(ctx, domain.Mode1v1, 9999)
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	pos, err = svc.Rank(ctx, domain.Mode1v1, 0)
	require.NoError(t, err)
	assert.Equal(t, constants.LeaderboardSize+1, pos)

	// Meeting the floor exactly ties the last seeded entry.
	pos, err = svc.Rank(ctx, domain.Mode1v1, constants.LeaderboardFloorMMR)
	require.NoError(t, err)
	assert.LessOrEqual(t, pos, constants.LeaderboardSize)
}

func TestFluctuateIsRateLimited(t *testing.T) {
	svc, store := newLeaderboard(t)
	ctx := context.Background()

	require.NoError(t, svc.Fluctuate(ctx))
	first := store.state.LastFluctuated
	require.False(t, first.IsZero())

	snapshot := make([]domain.LeaderboardEntry, len(store.state.Boards[domain.Mode1v1]))
	copy(snapshot, store.state.Boards[domain.Mode1v1])

	// Immediately again: inside the window, nothing moves.
	require.NoError(t, svc.Fluctuate(ctx))
	assert.Equal(t, first, store.state.LastFluctuated)
	assert.Equal(t, snapshot, store.state.Boards[domain.Mode1v1])
}

// seededBoards builds a store whose three boards share the same handful of
// entries, bypassing the ramp initializer.
func seededBoards(entries []domain.LeaderboardEntry) *memLeaderboardStore {
	boards := make(map[domain.GameMode][]domain.LeaderboardEntry)
	for _, mode := range domain.Modes {
		board := make([]domain.LeaderboardEntry, len(entries))
		copy(board, entries)
		boards[mode] = board
	}
	return &memLeaderboardStore{state: &domain.LeaderboardState{Boards: boards}}
}

func TestFluctuateCeilingOnlyBindsInsideBand(t *testing.T) {
	store := seededBoards([]domain.LeaderboardEntry{
		{ID: "a", Name: "Apex", MMR: 3390},
		{ID: "b", Name: "Vandal", MMR: 3095},
		{ID: "c", Name: "Crest", MMR: 2550},
	})

	// betweenHi forces every walk step to +10.
	svc := NewLeaderboardService(store, &scriptedRNG{f: 0.5, betweenHi: true}, zerolog.Nop())
	require.NoError(t, svc.Fluctuate(context.Background()))

	byID := make(map[string]int)
	for _, entry := range store.state.Boards[domain.Mode1v1] {
		byID[entry.ID] = entry.MMR
	}

	// Entries seeded above the band keep drifting; a climber inside the
	// band stops at the ceiling.
	assert.Equal(t, 3400, byID["a"])
	assert.Equal(t, constants.LeaderboardFluctuateMaxMMR, byID["b"])
	assert.Equal(t, 2560, byID["c"])
}

func TestFluctuateFloorAlwaysBinds(t *testing.T) {
	store := seededBoards([]domain.LeaderboardEntry{
		{ID: "a", Name: "Apex", MMR: 3390},
		{ID: "c", Name: "Crest", MMR: constants.LeaderboardFluctuateMinMMR},
	})

	// Every walk step is -10.
	svc := NewLeaderboardService(store, &scriptedRNG{f: 0.5}, zerolog.Nop())
	require.NoError(t, svc.Fluctuate(context.Background()))

	byID := make(map[string]int)
	for _, entry := range store.state.Boards[domain.Mode1v1] {
		byID[entry.ID] = entry.MMR
	}

	assert.Equal(t, 3380, byID["a"])
	assert.Equal(t, constants.LeaderboardFluctuateMinMMR, byID["c"])
}

func TestFluctuateKeepsInvariants(t *testing.T) {
	svc, store := newLeaderboard(t)
	ctx := context.Background()

	require.NoError(t, svc.SplicePlayer(ctx, testPlayer(3000)))
	playerBefore := 0
	for _, entry := range store.state.Boards[domain.Mode1v1] {
		if entry.IsPlayer {
			playerBefore = entry.MMR
		}
	}
	require.NotZero(t, playerBefore)

	require.NoError(t, svc.Fluctuate(ctx))

	for _, mode := range domain.Modes {
		board := store.state.Boards[mode]
		require.Len(t, board, constants.LeaderboardSize)
		requireSortedDesc(t, board)
		for _, entry := range board {
			require.GreaterOrEqual(t, entry.MMR, constants.LeaderboardFluctuateMinMMR)
			if entry.IsPlayer {
				// Only the engine moves the player's rating, never the walk.
				assert.Equal(t, playerBefore, entry.MMR)
			}
		}
	}
}
