package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"ranked-clicker/internal/constants"
	"ranked-clicker/internal/domain"
	"ranked-clicker/internal/rng"
)

type rewardBand struct {
	tier string
	min  int
	max  int
}

type stageConfig struct {
	size    int
	cutoff  int // teams advancing; 0 = final stage, placements stand
	spread  float64
	weight  float64
	rewards []rewardBand
	next    domain.RCCSStage
	cascade string // title earned just by reaching this stage
}

// The spread narrows and the skill weight rises each stage, so late stages
// are decided more by rating and less by variance.
var stageConfigs = map[domain.RCCSStage]stageConfig{
	domain.StageQualifiers: {
		size: constants.RCCSQualifierTeams, cutoff: 32, spread: 400, weight: 0.7,
		rewards: []rewardBand{{"CONTENDER", 1, 32}},
		next:    domain.StageRegionals,
	},
	domain.StageRegionals: {
		size: constants.RCCSRegionalTeams, cutoff: 6, spread: 350, weight: 0.8,
		rewards: []rewardBand{{"REGIONAL CHAMPION", 1, 1}, {"REGIONAL FINALIST", 1, 6}},
		next:    domain.StageMajors,
		cascade: "CONTENDER",
	},
	domain.StageMajors: {
		size: constants.RCCSMajorTeams, cutoff: 6, spread: 300, weight: 0.9,
		rewards: []rewardBand{{"MAJOR CHAMPION", 1, 1}, {"MAJOR CONTENDER", 1, 6}},
		next:    domain.StageWorlds,
		cascade: "REGIONAL FINALIST",
	},
	domain.StageWorlds: {
		size: constants.RCCSWorldsTeams, cutoff: 0, spread: 250, weight: 1.0,
		rewards: []rewardBand{
			{"WORLD CHAMPION", 1, 1},
			{"GRAND FINALIST", 2, 2},
			{"TOP 4", 3, 4},
			{"WORLDS CONTENDER", 5, 12},
		},
		cascade: "MAJOR CONTENDER",
	},
}

// RCCSService runs the four-stage championship pipeline:
// Qualifiers -> Regionals -> Majors -> Worlds.
type RCCSService struct {
	store  TournamentStore
	ledger *TitleLedger
	rng    rng.Source
	faker  *gofakeit.Faker
	logger zerolog.Logger
}

func NewRCCSService(store TournamentStore, ledger *TitleLedger, src rng.Source, logger zerolog.Logger) *RCCSService {
	return &RCCSService{
		store:  store,
		ledger: ledger,
		rng:    src,
		faker:  gofakeit.New(0),
		logger: logger,
	}
}

// Eligible gates registration at Champion III.
func (s *RCCSService) Eligible(highestMMR int) bool {
	return highestMMR >= constants.RCCSMinMMR
}

// Current returns the active championship tournament, if any.
func (s *RCCSService) Current(ctx context.Context) (*domain.RCCSTournament, bool, error) {
	state, err := loadTournamentState(ctx, s.store)
	if err != nil {
		return nil, false, err
	}
	return state.RCCS, state.PlayerRegistered, nil
}

// Register builds the player's three-person team and seeds the full
// qualifier field around it. Registering while ineligible or while already
// registered is a silent no-op.
func (s *RCCSService) Register(ctx context.Context, playerName string, playerMMR, season int) (*domain.RCCSTournament, error) {
	if !s.Eligible(playerMMR) {
		s.logger.Info().Int("mmr", playerMMR).Msg("rccs registration ignored, below eligibility")
		return nil, nil
	}

	state, err := loadTournamentState(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if state.PlayerRegistered && state.RCCS != nil {
		s.logger.Debug().Msg("already registered for the current cycle")
		return state.RCCS, nil
	}

	playerTeam := s.buildPlayerTeam(playerName, playerMMR)
	teams := []*domain.RCCSTeam{playerTeam}
	for i := 0; i < constants.RCCSQualifierTeams-1; i++ {
		teams = append(teams, s.generateTeam())
	}

	tournament := &domain.RCCSTournament{
		ID:       gonanoid.Must(),
		Season:   season,
		Stage:    domain.StageQualifiers,
		Teams:    teams,
		Status:   domain.RCCSActive,
		MaxTeams: constants.RCCSQualifierTeams,
	}

	state.RCCS = tournament
	state.PlayerRegistered = true
	state.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int("season", season).
		Int("teams", len(teams)).
		Msg("registered for qualifiers")
	return tournament, nil
}

func (s *RCCSService) buildPlayerTeam(playerName string, playerMMR int) *domain.RCCSTeam {
	mate1 := s.teammateMMR(playerMMR)
	mate2 := s.teammateMMR(playerMMR)

	return &domain.RCCSTeam{
		ID:         gonanoid.Must(),
		PlayerName: playerName,
		PlayerMMR:  playerMMR,
		Teammate1:  aiNamePool[s.rng.Intn(len(aiNamePool))],
		Teammate2:  s.faker.Gamertag(),
		AverageMMR: (playerMMR + mate1 + mate2) / 3,
		IsUser:     true,
	}
}

func (s *RCCSService) teammateMMR(playerMMR int) int {
	mmr := playerMMR + s.rng.Between(-constants.RCCSTeammateSpread, constants.RCCSTeammateSpread)
	if mmr < constants.RCCSTeammateFloor {
		mmr = constants.RCCSTeammateFloor
	}
	return mmr
}

// generateTeam draws a team target MMR from the fixed tiered distribution
// and jitters three members around it.
func (s *RCCSService) generateTeam() *domain.RCCSTeam {
	roll := s.rng.Float64()
	var lo, hi int
	switch {
	case roll < 0.05:
		lo, hi = 3700, 3800 // elite
	case roll < 0.20:
		lo, hi = 3400, 3699 // high
	case roll < 0.45:
		lo, hi = 3100, 3399 // mid-high
	case roll < 0.75:
		lo, hi = 2900, 3099 // mid
	default:
		lo, hi = 2700, 2899 // low
	}
	target := s.rng.Between(lo, hi)

	sum := 0
	members := make([]int, 3)
	for i := range members {
		mmr := target + s.rng.Between(-constants.RCCSMemberJitter, constants.RCCSMemberJitter)
		if mmr < constants.RCCSMemberFloor {
			mmr = constants.RCCSMemberFloor
		}
		members[i] = mmr
		sum += mmr
	}

	return &domain.RCCSTeam{
		ID:         gonanoid.Must(),
		PlayerName: s.faker.Gamertag(),
		PlayerMMR:  members[0],
		Teammate1:  s.faker.Gamertag(),
		Teammate2:  s.faker.Gamertag(),
		AverageMMR: sum / 3,
	}
}

// AdvanceOutcome reports what one stage resolution did to the player.
type AdvanceOutcome struct {
	Stage           domain.RCCSStage
	PlayerPlacement int
	Advanced        bool
	Eliminated      bool
	Completed       bool
	Titles          []domain.Title
	Next            *domain.RCCSTournament
}

// Advance resolves the current stage: every team gets a weighted-random
// score, placements are assigned in score order, teams below the cutoff are
// eliminated, and the player's rewards (including cascading lower-stage
// titles) are settled. Elimination clears the cycle; otherwise the next
// stage is seeded with the advancers padded to its fixed size.
func (s *RCCSService) Advance(ctx context.Context) (*AdvanceOutcome, error) {
	state, err := loadTournamentState(ctx, s.store)
	if err != nil {
		return nil, err
	}
	if state.RCCS == nil {
		s.logger.Debug().Msg("no active championship to advance")
		return nil, nil
	}

	tournament := state.RCCS
	cfg := stageConfigs[tournament.Stage]

	top := 0
	for _, team := range tournament.Teams {
		if team.AverageMMR > top {
			top = team.AverageMMR
		}
	}

	type scored struct {
		team  *domain.RCCSTeam
		score float64
	}
	field := make([]scored, 0, len(tournament.Teams))
	for _, team := range tournament.Teams {
		diff := float64(team.AverageMMR - top)
		field = append(field, scored{team: team, score: cfg.weight*diff + s.rng.Float64()*cfg.spread})
	}
	sort.SliceStable(field, func(i, j int) bool { return field[i].score > field[j].score })

	for i, entry := range field {
		entry.team.Placement = i + 1
		entry.team.Eliminated = cfg.cutoff > 0 && entry.team.Placement > cfg.cutoff
	}

	playerTeam := tournament.PlayerTeam()
	outcome := &AdvanceOutcome{Stage: tournament.Stage}
	if playerTeam != nil {
		outcome.PlayerPlacement = playerTeam.Placement
	}

	if playerTeam != nil && !playerTeam.Eliminated {
		if title, ok := s.rewardFor(cfg, tournament.Season, playerTeam.Placement); ok {
			outcome.Titles = append(outcome.Titles, title)
		}
	}

	finalStage := cfg.cutoff == 0
	playerOut := playerTeam == nil || playerTeam.Eliminated

	switch {
	case finalStage:
		tournament.Status = domain.RCCSCompleted
		state.RCCS = nil
		state.PlayerRegistered = false
		outcome.Completed = true
		s.logger.Info().Int("placement", outcome.PlayerPlacement).Msg("worlds resolved, cycle complete")

	case playerOut:
		state.RCCS = nil
		state.PlayerRegistered = false
		outcome.Eliminated = true
		s.logger.Info().
			Str("stage", string(tournament.Stage)).
			Int("placement", outcome.PlayerPlacement).
			Msg("player eliminated, championship cycle reset")

	default:
		next := s.buildNextStage(tournament, cfg)
		state.RCCS = next
		outcome.Advanced = true
		outcome.Next = next

		// Reaching the next stage implies the earlier gate was cleared.
		if cascade := stageConfigs[cfg.next].cascade; cascade != "" {
			outcome.Titles = append(outcome.Titles, s.rccsTitle(tournament.Season, cascade))
		}
		s.logger.Info().
			Str("from", string(tournament.Stage)).
			Str("to", string(next.Stage)).
			Int("placement", outcome.PlayerPlacement).
			Msg("advanced to next stage")
	}

	for _, title := range outcome.Titles {
		if _, err := s.ledger.Award(ctx, title); err != nil {
			return nil, err
		}
	}

	state.UpdatedAt = time.Now().UTC()
	if err := s.store.Save(ctx, state); err != nil {
		return nil, err
	}
	return outcome, nil
}

// rewardFor finds the highest reward band containing the placement.
func (s *RCCSService) rewardFor(cfg stageConfig, season, placement int) (domain.Title, bool) {
	for _, band := range cfg.rewards {
		if placement >= band.min && placement <= band.max {
			return s.rccsTitle(season, band.tier), true
		}
	}
	return domain.Title{}, false
}

func (s *RCCSService) rccsTitle(season int, tier string) domain.Title {
	name := fmt.Sprintf("RCCS S%d %s", season, tier)
	return domain.Title{
		ID:     NormalizeTitleID(name),
		Name:   name,
		Season: season,
		Rank:   tier,
		Color:  domain.TitleAqua,
		Glow:   true,
	}
}

func (s *RCCSService) buildNextStage(current *domain.RCCSTournament, cfg stageConfig) *domain.RCCSTournament {
	nextCfg := stageConfigs[cfg.next]

	var advancers []*domain.RCCSTeam
	for _, team := range current.Teams {
		if !team.Eliminated {
			team.Placement = 0
			advancers = append(advancers, team)
		}
	}
	for len(advancers) < nextCfg.size {
		advancers = append(advancers, s.generateTeam())
	}

	return &domain.RCCSTournament{
		ID:       gonanoid.Must(),
		Season:   current.Season,
		Stage:    cfg.next,
		Teams:    advancers,
		Status:   domain.RCCSActive,
		MaxTeams: nextCfg.size,
	}
}
