package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ranked-clicker/internal/constants"
	"ranked-clicker/internal/domain"
)

type levelTitle struct {
	level int
	name  string
}

// Level titles are permanent once earned.
var levelTitles = []levelTitle{
	{1, "CLICKER"},
	{5, "ROOKIE"},
	{10, "PROSPECT"},
	{15, "VETERAN"},
	{20, "EXPERT"},
	{25, "ACE"},
	{30, "MASTER"},
	{40, "LEGEND"},
	{50, "ICON"},
	{75, "IMMORTAL"},
}

var levelTitleNames = func() []string {
	names := make([]string, len(levelTitles))
	for i, t := range levelTitles {
		names[i] = t.name
	}
	return names
}()

// ProgressionService owns the singleton player record: ratings, win/loss
// stats, placement countdowns, XP/levels and seasonal rewards.
type ProgressionService struct {
	players  PlayerStore
	ledger   *TitleLedger
	username string
	logger   zerolog.Logger
}

func NewProgressionService(players PlayerStore, ledger *TitleLedger, username string, logger zerolog.Logger) *ProgressionService {
	return &ProgressionService{players: players, ledger: ledger, username: username, logger: logger}
}

// Player loads the record, creating defaults on first run.
func (s *ProgressionService) Player(ctx context.Context) (*domain.PlayerRecord, error) {
	record, err := s.players.Load(ctx)
	if err != nil {
		return nil, err
	}
	if record != nil {
		return record, nil
	}

	now := time.Now().UTC()
	record = &domain.PlayerRecord{
		Username:         s.username,
		MMR:              make(map[domain.GameMode]int),
		Stats:            make(map[domain.GameMode]*domain.ModeStats),
		PlacementMatches: make(map[domain.GameMode]int),
		SeasonWins:       make(map[domain.GameMode]int),
		Level:            1,
		XP:               0,
		XPToNext:         xpToNext(1),
		UnlockedTitles:   []string{NormalizeTitleID(levelTitles[0].name)},
		EquippedTitle:    NormalizeTitleID(levelTitles[0].name),
		CurrentSeason:    1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, mode := range domain.Modes {
		record.MMR[mode] = constants.DefaultMMR
		record.Stats[mode] = &domain.ModeStats{BestMMR: constants.DefaultMMR}
		record.PlacementMatches[mode] = constants.PlacementMatches
	}

	if err := s.players.Save(ctx, record); err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", record.Username).Msg("player record created")
	return record, nil
}

func xpToNext(level int) int {
	return int(math.Floor(constants.BaseXPToNext * math.Pow(constants.XPGrowth, float64(level-1))))
}

// ApplyMatchResult updates stats, placements, season wins and XP for one
// finished match. XP may cascade multiple level-ups in one call; any level
// title whose requirement is crossed unlocks permanently.
func (s *ProgressionService) ApplyMatchResult(ctx context.Context, mode domain.GameMode, isWin bool) (*domain.PlayerRecord, error) {
	record, err := s.Player(ctx)
	if err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return record, nil
	}

	stats := record.Stats[mode]
	if stats == nil {
		stats = &domain.ModeStats{}
		record.Stats[mode] = stats
	}

	if isWin {
		stats.Wins++
		record.SeasonWins[mode]++
		record.XP += constants.XPPerWin
	} else {
		stats.Losses++
		record.XP += constants.XPPerLoss
	}

	if record.PlacementMatches[mode] > 0 {
		record.PlacementMatches[mode]--
	}

	for record.XP >= record.XPToNext {
		record.XP -= record.XPToNext
		record.Level++
		record.XPToNext = xpToNext(record.Level)
		s.unlockLevelTitles(record)
		s.logger.Info().Int("level", record.Level).Msg("level up")
	}

	record.UpdatedAt = time.Now().UTC()
	if err := s.players.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (s *ProgressionService) unlockLevelTitles(record *domain.PlayerRecord) {
	for _, t := range levelTitles {
		if t.level != record.Level {
			continue
		}
		id := NormalizeTitleID(t.name)
		if !record.HasTitle(id) {
			record.UnlockedTitles = append(record.UnlockedTitles, id)
			s.logger.Info().Str("title", t.name).Msg("level title unlocked")
		}
	}
}

// ApplyMMRChange moves a mode's rating, flooring at zero and keeping the
// best-ever watermark monotonic.
func (s *ProgressionService) ApplyMMRChange(ctx context.Context, mode domain.GameMode, delta int) (*domain.PlayerRecord, error) {
	record, err := s.Player(ctx)
	if err != nil {
		return nil, err
	}
	if !mode.Valid() {
		return record, nil
	}

	next := record.MMR[mode] + delta
	if next < 0 {
		next = 0
	}
	record.MMR[mode] = next

	stats := record.Stats[mode]
	if stats == nil {
		stats = &domain.ModeStats{}
		record.Stats[mode] = stats
	}
	if next > stats.BestMMR {
		stats.BestMMR = next
	}

	record.UpdatedAt = time.Now().UTC()
	if err := s.players.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Debug().Str("mode", string(mode)).Int("delta", delta).Int("mmr", next).Msg("mmr applied")
	return record, nil
}

// CheckSeasonRewards recomputes reward unlocks for every tier at or below
// the player's highest current rank. Unlocking is one-way: rewards are
// never re-locked, and re-running with unchanged wins changes nothing.
func (s *ProgressionService) CheckSeasonRewards(ctx context.Context) (*domain.PlayerRecord, error) {
	record, err := s.Player(ctx)
	if err != nil {
		return nil, err
	}

	highestTier := domain.TierIndex(record.HighestMMR())
	totalWins := 0
	for _, wins := range record.SeasonWins {
		totalWins += wins
	}

	changed := false
	for tier := 0; tier <= highestTier; tier++ {
		rank := domain.TierName(tier)
		threshold := (tier + 1) * 10
		unlocked := totalWins >= threshold

		found := false
		for i := range record.SeasonRewards {
			reward := &record.SeasonRewards[i]
			if reward.Rank == rank && reward.Season == record.CurrentSeason {
				found = true
				if unlocked && !reward.Unlocked {
					reward.Unlocked = true
					changed = true
				}
			}
		}
		if !found {
			record.SeasonRewards = append(record.SeasonRewards, domain.SeasonReward{
				Rank:     rank,
				Season:   record.CurrentSeason,
				Unlocked: unlocked,
			})
			changed = true
		}
	}

	if changed {
		record.UpdatedAt = time.Now().UTC()
		if err := s.players.Save(ctx, record); err != nil {
			return nil, err
		}
	}
	return record, nil
}

// RolloverSeason applies the soft reset: season increments, ratings decay
// by 20% with a 100 floor, placements and season wins reset, and the reward
// track clears for the new season.
func (s *ProgressionService) RolloverSeason(ctx context.Context) (*domain.PlayerRecord, error) {
	record, err := s.Player(ctx)
	if err != nil {
		return nil, err
	}

	record.CurrentSeason++
	for _, mode := range domain.Modes {
		decayed := int(math.Floor(float64(record.MMR[mode]) * constants.SeasonDecay))
		if decayed < constants.SeasonMMRFloor {
			decayed = constants.SeasonMMRFloor
		}
		record.MMR[mode] = decayed
		record.PlacementMatches[mode] = constants.PlacementMatches
		record.SeasonWins[mode] = 0
	}
	record.SeasonRewards = nil

	record.UpdatedAt = time.Now().UTC()
	if err := s.players.Save(ctx, record); err != nil {
		return nil, err
	}

	s.logger.Info().Int("season", record.CurrentSeason).Msg("season rolled over")
	return record, nil
}

// AvailableTitles merges level titles, unlocked season rewards and the
// shared ledger into one display list.
func (s *ProgressionService) AvailableTitles(ctx context.Context) ([]domain.Title, error) {
	record, err := s.Player(ctx)
	if err != nil {
		return nil, err
	}

	var titles []domain.Title
	for _, t := range levelTitles {
		id := NormalizeTitleID(t.name)
		if record.HasTitle(id) {
			titles = append(titles, domain.Title{
				ID:    id,
				Name:  t.name,
				Color: domain.TitleDefault,
			})
		}
	}

	for _, reward := range record.SeasonRewards {
		if !reward.Unlocked {
			continue
		}
		name := fmt.Sprintf("S%d %s", reward.Season, strings.ToUpper(reward.Rank))
		titles = append(titles, domain.Title{
			ID:     NormalizeTitleID(name),
			Name:   name,
			Season: reward.Season,
			Rank:   reward.Rank,
			Color:  domain.TitleDefault,
			Glow:   reward.Rank == domain.TierName(domain.TierCount()-1),
		})
	}

	earned, err := s.ledger.List(ctx)
	if err != nil {
		return nil, err
	}
	titles = append(titles, earned...)

	return titles, nil
}

// EquipTitle sets the displayed title if the player actually owns it;
// anything else is a silent no-op.
func (s *ProgressionService) EquipTitle(ctx context.Context, id string) (*domain.PlayerRecord, error) {
	record, err := s.Player(ctx)
	if err != nil {
		return nil, err
	}

	available, err := s.AvailableTitles(ctx)
	if err != nil {
		return nil, err
	}

	owned := record.HasTitle(id)
	for _, t := range available {
		if t.ID == id {
			owned = true
			break
		}
	}
	if !owned {
		s.logger.Warn().Str("title", id).Msg("equip ignored, title not owned")
		return record, nil
	}

	record.EquippedTitle = id
	record.UpdatedAt = time.Now().UTC()
	if err := s.players.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
