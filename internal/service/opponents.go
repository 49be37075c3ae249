package service

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"ranked-clicker/internal/constants"
	"ranked-clicker/internal/domain"
	"ranked-clicker/internal/rng"
)

// Curated pool tried before falling back to generated gamertags. Shared by
// teammates and enemies so a name can only appear once per match.
var aiNamePool = []string{
	"Drift", "Karma", "Pulse", "Echo", "Blitz", "Shade", "Raptor", "Onyx",
	"Viper", "Comet", "Havoc", "Frost", "Jolt", "Nimbus", "Saber", "Torque",
	"Wisp", "Zephyr", "Fable", "Gambit", "Helix", "Ion", "Lyric", "Mirage",
	"Nexus", "Omen", "Prism", "Quartz", "Rogue", "Static", "Tundra", "Umbra",
}

// Roster is one match's worth of AI, split by side.
type Roster struct {
	Teammates []domain.Opponent
	Enemies   []domain.Opponent
}

// OpponentService builds AI rosters and keeps the persistent elite pool's
// ratings honest after matches.
type OpponentService struct {
	store  TournamentStore
	rng    rng.Source
	faker  *gofakeit.Faker
	logger zerolog.Logger
}

func NewOpponentService(store TournamentStore, src rng.Source, logger zerolog.Logger) *OpponentService {
	return &OpponentService{
		store:  store,
		rng:    src,
		faker:  gofakeit.New(0),
		logger: logger,
	}
}

// Generate builds the AI for one match: size-1 teammates and size enemies.
// At Champion MMR and above the persistent elite pool is preferred when a
// member sits within range; each elite can only appear once per match.
func (s *OpponentService) Generate(ctx context.Context, mode domain.GameMode, playerMMR, season int) (*Roster, error) {
	state, err := loadTournamentState(ctx, s.store)
	if err != nil {
		return nil, err
	}

	size := mode.TeamSize()
	usedNames := make(map[string]bool)
	usedElites := make(map[string]bool)

	roster := &Roster{}
	for i := 0; i < size-1; i++ {
		opp := s.buildOne(state, mode, playerMMR, season, constants.EliteTeammateChance, constants.TeammateMMRSpread, usedNames, usedElites)
		roster.Teammates = append(roster.Teammates, opp)
	}
	for i := 0; i < size; i++ {
		opp := s.buildOne(state, mode, playerMMR, season, constants.EliteEnemyChance, constants.EnemyMMRSpread, usedNames, usedElites)
		roster.Enemies = append(roster.Enemies, opp)
	}

	s.logger.Debug().
		Str("mode", string(mode)).
		Int("player_mmr", playerMMR).
		Int("teammates", len(roster.Teammates)).
		Int("enemies", len(roster.Enemies)).
		Msg("opponents generated")

	return roster, nil
}

func (s *OpponentService) buildOne(state *domain.TournamentState, mode domain.GameMode, playerMMR, season int, eliteChance float64, spread int, usedNames, usedElites map[string]bool) domain.Opponent {
	if playerMMR >= constants.ElitePoolMinMMR && s.rng.Chance(eliteChance) {
		if elite := s.pickElite(state, mode, playerMMR, usedElites); elite != nil {
			usedElites[elite.ID] = true
			usedNames[elite.Name] = true
			return domain.Opponent{
				ID:      gonanoid.Must(),
				Name:    elite.Name,
				MMR:     elite.MMR[mode],
				Title:   elite.Title,
				Kind:    domain.OpponentElite,
				EliteID: elite.ID,
			}
		}
	}

	mmr := playerMMR + s.rng.Between(-spread, spread)
	if mmr < constants.GeneratedMMRFloor {
		mmr = constants.GeneratedMMRFloor
	}

	title := s.titleFor(mmr, season)
	if title == "" {
		title = levelTitleNames[s.rng.Intn(len(levelTitleNames))]
	}

	return domain.Opponent{
		ID:    gonanoid.Must(),
		Name:  s.uniqueName(usedNames),
		MMR:   mmr,
		Title: title,
		Kind:  domain.OpponentGenerated,
	}
}

func (s *OpponentService) pickElite(state *domain.TournamentState, mode domain.GameMode, playerMMR int, used map[string]bool) *domain.EliteAI {
	var candidates []*domain.EliteAI
	for _, elite := range state.Elites {
		if used[elite.ID] {
			continue
		}
		diff := elite.MMR[mode] - playerMMR
		if diff >= -constants.ElitePoolRange && diff <= constants.ElitePoolRange {
			candidates = append(candidates, elite)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return candidates[s.rng.Intn(len(candidates))]
}

func (s *OpponentService) uniqueName(used map[string]bool) string {
	for i := 0; i < 3; i++ {
		name := aiNamePool[s.rng.Intn(len(aiNamePool))]
		if !used[name] {
			used[name] = true
			return name
		}
	}

	// Pool exhausted for this match; procedural gamertags are effectively
	// collision-free but dedup anyway.
	for {
		name := s.faker.Gamertag()
		if !used[name] {
			used[name] = true
			return name
		}
	}
}

// titleFor draws from a rank-weighted title pool: level titles dominate low
// ranks, season/tournament titles take over at Champion, and Grand Champion
// leans heavily on championship-series titles.
func (s *OpponentService) titleFor(mmr, season int) string {
	pastSeason := season - 1
	if pastSeason < 1 {
		pastSeason = 1
	}

	switch {
	case mmr >= constants.WorldChampionMinMMR:
		worldClass := []string{
			fmt.Sprintf("RCCS S%d WORLD CHAMPION", pastSeason),
			fmt.Sprintf("RCCS S%d GRAND FINALIST", pastSeason),
		}
		return worldClass[s.rng.Intn(len(worldClass))]

	case mmr >= domain.GrandChampionMMR:
		if s.rng.Chance(constants.RCCSTitleWeightAtGC) {
			rccsTitles := []string{
				fmt.Sprintf("RCCS S%d CONTENDER", pastSeason),
				fmt.Sprintf("RCCS S%d REGIONAL FINALIST", pastSeason),
				fmt.Sprintf("RCCS S%d MAJOR CONTENDER", pastSeason),
			}
			return rccsTitles[s.rng.Intn(len(rccsTitles))]
		}
		gcTitles := []string{
			fmt.Sprintf("S%d GRAND CHAMPION", pastSeason),
			fmt.Sprintf("S%d GRAND CHAMPION TOURNAMENT WINNER", pastSeason),
		}
		return gcTitles[s.rng.Intn(len(gcTitles))]

	case mmr >= domain.ChampionMMR:
		if s.rng.Chance(0.8) {
			champTitles := []string{
				fmt.Sprintf("S%d CHAMPION", pastSeason),
				fmt.Sprintf("S%d CHAMPION TOURNAMENT WINNER", pastSeason),
				fmt.Sprintf("S%d DIAMOND TOURNAMENT WINNER", pastSeason),
			}
			return champTitles[s.rng.Intn(len(champTitles))]
		}
		return levelTitleNames[s.rng.Intn(len(levelTitleNames))]

	default:
		if s.rng.Chance(0.85) {
			return levelTitleNames[s.rng.Intn(len(levelTitleNames))]
		}
		return fmt.Sprintf("S%d %s", pastSeason, domain.Rank(mmr).Name)
	}
}

// GenerateField builds count standalone generated AI around a target MMR,
// names deduped across the whole field. Used to fill tournament brackets
// and championship fields.
func (s *OpponentService) GenerateField(ctx context.Context, count, aroundMMR, season int) ([]domain.Opponent, error) {
	state, err := loadTournamentState(ctx, s.store)
	if err != nil {
		return nil, err
	}

	usedNames := make(map[string]bool)
	usedElites := make(map[string]bool)

	field := make([]domain.Opponent, 0, count)
	for i := 0; i < count; i++ {
		field = append(field, s.buildOne(state, domain.Mode1v1, aroundMMR, season, 0, constants.EnemyMMRSpread, usedNames, usedElites))
	}
	return field, nil
}

// EliteResult is one elite's outcome from a finished match.
type EliteResult struct {
	EliteID      string
	Mode         domain.GameMode
	Won          bool
	OpponentMMRs []int
}

// ApplyEliteResults moves the persistent roster's ratings after a match.
// Unknown ids are skipped.
func (s *OpponentService) ApplyEliteResults(ctx context.Context, results []EliteResult) error {
	if len(results) == 0 {
		return nil
	}

	state, err := loadTournamentState(ctx, s.store)
	if err != nil {
		return err
	}

	byID := make(map[string]*domain.EliteAI, len(state.Elites))
	for _, elite := range state.Elites {
		byID[elite.ID] = elite
	}

	for _, result := range results {
		elite, ok := byID[result.EliteID]
		if !ok {
			continue
		}

		delta := MMRDelta(elite.MMR[result.Mode], result.Won, result.OpponentMMRs)
		next := elite.MMR[result.Mode] + delta
		if next < 0 {
			next = 0
		}
		elite.MMR[result.Mode] = next

		won := 0.0
		if result.Won {
			won = 1.0
		}
		games := float64(elite.GamesPlayed)
		elite.WinRate = (elite.WinRate*games + won) / (games + 1)
		elite.GamesPlayed++

		s.logger.Debug().
			Str("elite", elite.Name).
			Int("delta", delta).
			Int("mmr", next).
			Msg("elite rating updated")
	}

	state.UpdatedAt = time.Now().UTC()
	return s.store.Save(ctx, state)
}
