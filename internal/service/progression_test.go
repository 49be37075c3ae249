package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranked-clicker/internal/constants"
	"ranked-clicker/internal/domain"
)

func newProgression(t *testing.T) (*ProgressionService, *memPlayerStore) {
	t.Helper()
	players := &memPlayerStore{}
	ledger := NewTitleLedger(&memTournamentStore{}, zerolog.Nop())
	return NewProgressionService(players, ledger, "tester", zerolog.Nop()), players
}

func TestPlayerFirstRunDefaults(t *testing.T) {
	svc, store := newProgression(t)
	ctx := context.Background()

	record, err := svc.Player(ctx)
	require.NoError(t, err)

	assert.Equal(t, "tester", record.Username)
	assert.Equal(t, 1, record.Level)
	assert.Equal(t, 100, record.XPToNext)
	assert.Equal(t, 1, record.CurrentSeason)
	assert.Equal(t, "clicker", record.EquippedTitle)
	assert.True(t, record.HasTitle("clicker"))

	for _, mode := range domain.Modes {
		assert.Equal(t, constants.DefaultMMR, record.MMR[mode])
		assert.Equal(t, constants.PlacementMatches, record.PlacementMatches[mode])
		assert.Equal(t, constants.DefaultMMR, record.Stats[mode].BestMMR)
	}

	// Created record is persisted, not just returned.
	require.NotNil(t, store.record)

	again, err := svc.Player(ctx)
	require.NoError(t, err)
	assert.Same(t, store.record, again)
}

func TestApplyMatchResultXPAndPlacements(t *testing.T) {
	svc, _ := newProgression(t)
	ctx := context.Background()

	var record *domain.PlayerRecord
	var err error
	for i := 0; i < 3; i++ {
		record, err = svc.ApplyMatchResult(ctx, domain.Mode1v1, true)
		require.NoError(t, err)
	}

	assert.Equal(t, 3, record.Stats[domain.Mode1v1].Wins)
	assert.Equal(t, 3, record.SeasonWins[domain.Mode1v1])
	assert.Equal(t, 75, record.XP)
	assert.Equal(t, 1, record.Level)
	assert.Equal(t, 2, record.PlacementMatches[domain.Mode1v1])

	// Fourth win crosses 100 XP: level 2, remainder carried.
	record, err = svc.ApplyMatchResult(ctx, domain.Mode1v1, true)
	require.NoError(t, err)
	assert.Equal(t, 2, record.Level)
	assert.Equal(t, 0, record.XP)
	assert.Equal(t, 125, record.XPToNext)

	record, err = svc.ApplyMatchResult(ctx, domain.Mode1v1, false)
	require.NoError(t, err)
	assert.Equal(t, 1, record.Stats[domain.Mode1v1].Losses)
	assert.Equal(t, 10, record.XP)
	assert.Equal(t, 4, record.SeasonWins[domain.Mode1v1]+record.SeasonWins[domain.Mode2v2]+record.SeasonWins[domain.Mode3v3])
}

func TestApplyMatchResultLevelCascade(t *testing.T) {
	svc, store := newProgression(t)
	ctx := context.Background()

	_, err := svc.Player(ctx)
	require.NoError(t, err)

	// A large banked XP total resolves every level-up in one call.
	store.record.XP = 500

	record, err := svc.ApplyMatchResult(ctx, domain.Mode1v1, true)
	require.NoError(t, err)

	// 525 XP burns 100, 125 and 156: level 4 with 144 left.
	assert.Equal(t, 4, record.Level)
	assert.Equal(t, 144, record.XP)
	assert.Equal(t, 195, record.XPToNext)
}

func TestApplyMatchResultUnlocksLevelTitle(t *testing.T) {
	svc, store := newProgression(t)
	ctx := context.Background()

	_, err := svc.Player(ctx)
	require.NoError(t, err)

	store.record.Level = 4
	store.record.XPToNext = 195
	store.record.XP = 170

	record, err := svc.ApplyMatchResult(ctx, domain.Mode1v1, true)
	require.NoError(t, err)
	assert.Equal(t, 5, record.Level)
	assert.True(t, record.HasTitle("rookie"))
}

func TestPlacementMatchesFloorAtZero(t *testing.T) {
	svc, _ := newProgression(t)
	ctx := context.Background()

	var record *domain.PlayerRecord
	var err error
	for i := 0; i < constants.PlacementMatches+3; i++ {
		record, err = svc.ApplyMatchResult(ctx, domain.Mode2v2, false)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, record.PlacementMatches[domain.Mode2v2])
}

func TestApplyMMRChange(t *testing.T) {
	svc, _ := newProgression(t)
	ctx := context.Background()

	record, err := svc.ApplyMMRChange(ctx, domain.Mode1v1, 100)
	require.NoError(t, err)
	assert.Equal(t, 700, record.MMR[domain.Mode1v1])
	assert.Equal(t, 700, record.Stats[domain.Mode1v1].BestMMR)

	// Ratings floor at zero; the best-ever watermark never moves back.
	record, err = svc.ApplyMMRChange(ctx, domain.Mode1v1, -5000)
	require.NoError(t, err)
	assert.Equal(t, 0, record.MMR[domain.Mode1v1])
	assert.Equal(t, 700, record.Stats[domain.Mode1v1].BestMMR)
}

func TestCheckSeasonRewardsIsIdempotent(t *testing.T) {
	svc, store := newProgression(t)
	ctx := context.Background()

	_, err := svc.Player(ctx)
	require.NoError(t, err)
	store.record.SeasonWins[domain.Mode1v1] = 25

	record, err := svc.CheckSeasonRewards(ctx)
	require.NoError(t, err)

	// Default 600 MMR sits at Gold I: reward rows exist for tiers up to it.
	require.Len(t, record.SeasonRewards, 7)
	unlocked := 0
	for _, reward := range record.SeasonRewards {
		if reward.Unlocked {
			unlocked++
		}
	}
	// 25 wins clears the 10 and 20 thresholds only.
	assert.Equal(t, 2, unlocked)

	again, err := svc.CheckSeasonRewards(ctx)
	require.NoError(t, err)
	assert.Equal(t, record.SeasonRewards, again.SeasonRewards)
}

func TestCheckSeasonRewardsNeverRelocks(t *testing.T) {
	svc, store := newProgression(t)
	ctx := context.Background()

	_, err := svc.Player(ctx)
	require.NoError(t, err)
	store.record.SeasonWins[domain.Mode1v1] = 15

	_, err = svc.CheckSeasonRewards(ctx)
	require.NoError(t, err)

	// Wins cannot actually decrease in play; even if the count regressed,
	// unlocked rewards must stay unlocked.
	store.record.SeasonWins[domain.Mode1v1] = 0
	record, err := svc.CheckSeasonRewards(ctx)
	require.NoError(t, err)

	assert.True(t, record.SeasonRewards[0].Unlocked)
}

func TestRolloverSeason(t *testing.T) {
	svc, store := newProgression(t)
	ctx := context.Background()

	_, err := svc.Player(ctx)
	require.NoError(t, err)

	store.record.MMR[domain.Mode1v1] = 1000
	store.record.MMR[domain.Mode2v2] = 100
	store.record.SeasonWins[domain.Mode1v1] = 12
	store.record.PlacementMatches[domain.Mode1v1] = 0
	store.record.SeasonRewards = []domain.SeasonReward{{Rank: "Bronze I", Season: 1, Unlocked: true}}

	record, err := svc.RolloverSeason(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, record.CurrentSeason)
	assert.Equal(t, 800, record.MMR[domain.Mode1v1])
	assert.Equal(t, constants.SeasonMMRFloor, record.MMR[domain.Mode2v2])
	assert.Equal(t, 480, record.MMR[domain.Mode3v3])
	assert.Equal(t, 0, record.SeasonWins[domain.Mode1v1])
	assert.Equal(t, constants.PlacementMatches, record.PlacementMatches[domain.Mode1v1])
	assert.Nil(t, record.SeasonRewards)
}

func TestEquipTitle(t *testing.T) {
	svc, _ := newProgression(t)
	ctx := context.Background()

	record, err := svc.EquipTitle(ctx, "clicker")
	require.NoError(t, err)
	assert.Equal(t, "clicker", record.EquippedTitle)

	// Unowned titles are ignored, not errors.
	record, err = svc.EquipTitle(ctx, "world-champion")
	require.NoError(t, err)
	assert.Equal(t, "clicker", record.EquippedTitle)
}

func TestAvailableTitlesMergesSources(t *testing.T) {
	players := &memPlayerStore{}
	tournaments := &memTournamentStore{}
	ledger := NewTitleLedger(tournaments, zerolog.Nop())
	svc := NewProgressionService(players, ledger, "tester", zerolog.Nop())
	ctx := context.Background()

	_, err := svc.Player(ctx)
	require.NoError(t, err)

	players.record.SeasonRewards = []domain.SeasonReward{
		{Rank: "Gold I", Season: 1, Unlocked: true},
		{Rank: "Platinum I", Season: 1, Unlocked: false},
	}

	_, err = ledger.Award(ctx, domain.Title{Name: "RCCS S1 CONTENDER", Color: domain.TitleAqua})
	require.NoError(t, err)

	titles, err := svc.AvailableTitles(ctx)
	require.NoError(t, err)

	ids := make(map[string]domain.Title)
	for _, title := range titles {
		ids[title.ID] = title
	}

	assert.Contains(t, ids, "clicker")
	assert.Contains(t, ids, "s1-gold-i")
	assert.NotContains(t, ids, "s1-platinum-i")
	assert.Contains(t, ids, "rccs-s1-contender")
	assert.Equal(t, domain.TitleAqua, ids["rccs-s1-contender"].Color)
}
