package service

import (
	"context"
	"sort"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"ranked-clicker/internal/constants"
	"ranked-clicker/internal/domain"
	"ranked-clicker/internal/rng"
)

// Curated pro gamertags used for the visible top of each board.
var proNamePool = []string{
	"Apex", "Vandal", "Crest", "Slipstream", "Keystroke", "Daybreak",
	"Riptide", "Northstar", "Caliber", "Pylon", "Seismic", "Lumen",
	"Octane", "Warden", "Zenith", "Backbeat", "Cipher", "Duskline",
	"Emberfall", "Flashpoint", "Gridlock", "Hollowtip", "Ironsight",
	"Junction", "Kilowatt",
}

var modeMaxMMR = map[domain.GameMode]int{
	domain.Mode1v1: 3400,
	domain.Mode2v2: 3500,
	domain.Mode3v3: 3450,
}

var modeProCount = map[domain.GameMode]int{
	domain.Mode1v1: 18,
	domain.Mode2v2: 15,
	domain.Mode3v3: 12,
}

// LeaderboardService maintains the simulated top-25 per mode and splices
// the player in when their rating qualifies.
type LeaderboardService struct {
	store  LeaderboardStore
	rng    rng.Source
	faker  *gofakeit.Faker
	logger zerolog.Logger
}

func NewLeaderboardService(store LeaderboardStore, src rng.Source, logger zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{
		store:  store,
		rng:    src,
		faker:  gofakeit.New(0),
		logger: logger,
	}
}

func (s *LeaderboardService) state(ctx context.Context) (*domain.LeaderboardState, error) {
	state, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &domain.LeaderboardState{}
	}
	if state.Boards == nil {
		state.Boards = make(map[domain.GameMode][]domain.LeaderboardEntry)
	}
	changed := false
	for _, mode := range domain.Modes {
		if len(state.Boards[mode]) == 0 {
			state.Boards[mode] = s.initialize(mode)
			changed = true
		}
	}
	if changed {
		if err := s.store.Save(ctx, state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// initialize builds a full board: a linear MMR ramp from the mode max down
// to the floor, pro names at the top, and win/loss records that improve
// with position.
func (s *LeaderboardService) initialize(mode domain.GameMode) []domain.LeaderboardEntry {
	max := modeMaxMMR[mode]
	proCount := modeProCount[mode]
	step := (max - constants.LeaderboardFloorMMR) / (constants.LeaderboardSize - 1)

	usedNames := make(map[string]bool)
	now := time.Now().UTC()

	entries := make([]domain.LeaderboardEntry, 0, constants.LeaderboardSize)
	for i := 0; i < constants.LeaderboardSize; i++ {
		var name string
		if i < proCount {
			for {
				name = proNamePool[s.rng.Intn(len(proNamePool))]
				if !usedNames[name] {
					break
				}
			}
		} else {
			for {
				name = s.faker.Gamertag()
				if !usedNames[name] {
					break
				}
			}
		}
		usedNames[name] = true

		winRate := 0.92 - float64(i)*0.011
		if winRate < constants.LeaderboardMinWinRate {
			winRate = constants.LeaderboardMinWinRate
		}
		games := 200 + s.rng.Intn(300)
		wins := int(float64(games)*winRate + 0.5)

		entries = append(entries, domain.LeaderboardEntry{
			ID:          gonanoid.Must(),
			Name:        name,
			MMR:         max - i*step,
			Wins:        wins,
			Losses:      games - wins,
			LastUpdated: now,
		})
	}

	s.logger.Info().Str("mode", string(mode)).Int("entries", len(entries)).Msg("leaderboard initialized")
	return entries
}

// Board returns one mode's entries, best first.
func (s *LeaderboardService) Board(ctx context.Context, mode domain.GameMode) ([]domain.LeaderboardEntry, error) {
	state, err := s.state(ctx)
	if err != nil {
		return nil, err
	}
	return state.Boards[mode], nil
}

// SplicePlayer inserts or refreshes the player's own entry on every board
// their rating qualifies for. Boards stay capped at 25, sorted descending,
// with at most one player entry each.
func (s *LeaderboardService) SplicePlayer(ctx context.Context, player *domain.PlayerRecord) error {
	state, err := s.state(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, mode := range domain.Modes {
		board := state.Boards[mode]

		kept := board[:0]
		for _, entry := range board {
			if !entry.IsPlayer {
				kept = append(kept, entry)
			}
		}
		board = kept

		mmr := player.MMR[mode]
		if mmr >= constants.LeaderboardFloorMMR {
			qualifies := len(board) < constants.LeaderboardSize
			if !qualifies && mmr > board[len(board)-1].MMR {
				qualifies = true
			}
			if qualifies {
				stats := player.Stats[mode]
				entry := domain.LeaderboardEntry{
					ID:          "player",
					Name:        player.Username,
					MMR:         mmr,
					Title:       player.EquippedTitle,
					IsPlayer:    true,
					LastUpdated: now,
				}
				if stats != nil {
					entry.Wins = stats.Wins
					entry.Losses = stats.Losses
				}
				board = append(board, entry)
			}
		}

		sort.SliceStable(board, func(i, j int) bool { return board[i].MMR > board[j].MMR })
		if len(board) > constants.LeaderboardSize {
			board = board[:constants.LeaderboardSize]
		}
		state.Boards[mode] = board
	}

	return s.store.Save(ctx, state)
}

// Fluctuate random-walks every AI entry. Rate-limited to once per 30
// seconds; extra calls are no-ops.
func (s *LeaderboardService) Fluctuate(ctx context.Context) error {
	state, err := s.state(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if now.Sub(state.LastFluctuated) < constants.LeaderboardFluctuateEvery {
		return nil
	}
	state.LastFluctuated = now

	for _, mode := range domain.Modes {
		board := state.Boards[mode]
		for i := range board {
			entry := &board[i]
			if entry.IsPlayer {
				continue
			}

			delta := s.rng.Between(-constants.LeaderboardFluctuateSwing, constants.LeaderboardFluctuateSwing)
			next := entry.MMR + delta
			if next < constants.LeaderboardFluctuateMinMMR {
				next = constants.LeaderboardFluctuateMinMMR
			}
			// Entries seeded above the walk band drift freely; the ceiling
			// only stops climbers inside it.
			if next > constants.LeaderboardFluctuateMaxMMR && entry.MMR <= constants.LeaderboardFluctuateMaxMMR {
				next = constants.LeaderboardFluctuateMaxMMR
			}
			entry.MMR = next

			if delta >= 8 {
				entry.Wins++
			} else if delta <= -8 {
				entry.Losses++
			}
			entry.LastUpdated = now
		}

		sort.SliceStable(board, func(i, j int) bool { return board[i].MMR > board[j].MMR })
		state.Boards[mode] = board
	}

	s.logger.Debug().Msg("leaderboards fluctuated")
	return s.store.Save(ctx, state)
}

// Rank returns the player's 1-indexed position on a board: the first spot
// whose MMR the player meets or exceeds, or size+1 when they'd be last.
func (s *LeaderboardService) Rank(ctx context.Context, mode domain.GameMode, playerMMR int) (int, error) {
	board, err := s.Board(ctx, mode)
	if err != nil {
		return 0, err
	}

	for i, entry := range board {
		if playerMMR >= entry.MMR {
			return i + 1, nil
		}
	}
	return len(board) + 1, nil
}
