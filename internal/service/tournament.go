package service

import (
	"context"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"ranked-clicker/internal/domain"
	"ranked-clicker/internal/rng"
)

// BracketSize is fixed: every standard tournament runs a 32-entrant
// single-elimination tree across round1..final.
const BracketSize = 32

var roundOrder = []domain.TournamentRound{
	domain.Round1,
	domain.Round2,
	domain.Round3,
	domain.Semifinal,
	domain.Final,
}

func bestOfFor(round domain.TournamentRound) int {
	switch round {
	case domain.Semifinal:
		return 3
	case domain.Final:
		return 5
	default:
		return 1
	}
}

func roundAfter(round domain.TournamentRound) (domain.TournamentRound, bool) {
	for i, r := range roundOrder {
		if r == round && i < len(roundOrder)-1 {
			return roundOrder[i+1], true
		}
	}
	return round, false
}

// TournamentService runs season-scoped single-elimination tournaments and
// awards winner titles through the shared ledger.
type TournamentService struct {
	opponents *OpponentService
	ledger    *TitleLedger
	rng       rng.Source
	logger    zerolog.Logger
}

func NewTournamentService(opponents *OpponentService, ledger *TitleLedger, src rng.Source, logger zerolog.Logger) *TournamentService {
	return &TournamentService{opponents: opponents, ledger: ledger, rng: src, logger: logger}
}

// CreateTournament seeds a full bracket: the user plus generated AI up to
// the fixed field size.
func (s *TournamentService) CreateTournament(ctx context.Context, mode domain.GameMode, season int, user domain.TournamentPlayer) (*domain.StandardTournament, error) {
	field, err := s.opponents.GenerateField(ctx, BracketSize-1, user.MMR, season)
	if err != nil {
		return nil, err
	}

	user.IsUser = true
	players := []domain.TournamentPlayer{user}
	for _, opp := range field {
		players = append(players, domain.TournamentPlayer{
			ID:    opp.ID,
			Name:  opp.Name,
			MMR:   opp.MMR,
			Title: opp.Title,
		})
	}

	tournament := &domain.StandardTournament{
		ID:      gonanoid.Must(),
		Type:    mode,
		Phase:   domain.PhaseWaiting,
		Season:  season,
		Players: players,
	}

	s.GenerateBracket(tournament)
	return tournament, nil
}

// GenerateBracket shuffles the field and pairs entrants consecutively into
// round 1. An odd entrant out is dropped, not byed.
func (s *TournamentService) GenerateBracket(t *domain.StandardTournament) {
	players := make([]domain.TournamentPlayer, len(t.Players))
	copy(players, t.Players)
	s.rng.Shuffle(len(players), func(i, j int) {
		players[i], players[j] = players[j], players[i]
	})

	if len(players)%2 != 0 {
		dropped := players[len(players)-1]
		players = players[:len(players)-1]
		s.logger.Warn().Str("name", dropped.Name).Msg("odd entrant dropped from bracket")
	}

	t.Matches = nil
	for i := 0; i+1 < len(players); i += 2 {
		t.Matches = append(t.Matches, domain.TournamentMatch{
			ID:      gonanoid.Must(),
			Round:   domain.Round1,
			Players: [2]domain.TournamentPlayer{players[i], players[i+1]},
			BestOf:  bestOfFor(domain.Round1),
		})
	}

	t.CurrentRound = domain.Round1
	t.Phase = domain.PhaseInProgress

	s.logger.Info().
		Str("tournament", t.ID).
		Str("mode", string(t.Type)).
		Int("matches", len(t.Matches)).
		Msg("bracket generated")
}

// CompleteMatch records a decided match. When every match of the current
// round is complete the next round is paired from the winners in bracket
// order, escalating to best-of-3 at the semifinal and best-of-5 at the
// final. Unknown match ids and winners not in the match are no-ops.
func (s *TournamentService) CompleteMatch(t *domain.StandardTournament, matchID, winnerID string, games []string) {
	var match *domain.TournamentMatch
	for i := range t.Matches {
		if t.Matches[i].ID == matchID {
			match = &t.Matches[i]
			break
		}
	}
	if match == nil || match.IsComplete {
		return
	}
	if match.Players[0].ID != winnerID && match.Players[1].ID != winnerID {
		s.logger.Warn().Str("match", matchID).Str("winner", winnerID).Msg("winner not in match, ignored")
		return
	}

	match.Winner = winnerID
	match.Games = games
	match.IsComplete = true

	for _, m := range t.Matches {
		if m.Round == t.CurrentRound && !m.IsComplete {
			return
		}
	}
	s.advanceRound(t)
}

func (s *TournamentService) advanceRound(t *domain.StandardTournament) {
	var winners []domain.TournamentPlayer
	for _, m := range t.Matches {
		if m.Round != t.CurrentRound {
			continue
		}
		if m.Players[0].ID == m.Winner {
			winners = append(winners, m.Players[0])
		} else {
			winners = append(winners, m.Players[1])
		}
	}

	if len(winners) <= 1 {
		t.Phase = domain.PhaseFinished
		s.logger.Info().Str("tournament", t.ID).Msg("tournament finished")
		return
	}

	next, ok := roundAfter(t.CurrentRound)
	if !ok {
		t.Phase = domain.PhaseFinished
		return
	}

	for i := 0; i+1 < len(winners); i += 2 {
		t.Matches = append(t.Matches, domain.TournamentMatch{
			ID:      gonanoid.Must(),
			Round:   next,
			Players: [2]domain.TournamentPlayer{winners[i], winners[i+1]},
			BestOf:  bestOfFor(next),
		})
	}
	t.CurrentRound = next

	s.logger.Debug().Str("tournament", t.ID).Str("round", string(next)).Msg("round advanced")
}

// Winner returns the champion once the bracket is finished.
func (s *TournamentService) Winner(t *domain.StandardTournament) (domain.TournamentPlayer, bool) {
	if t.Phase != domain.PhaseFinished {
		return domain.TournamentPlayer{}, false
	}
	for _, m := range t.Matches {
		if m.Round == domain.Final && m.IsComplete {
			if m.Players[0].ID == m.Winner {
				return m.Players[0], true
			}
			return m.Players[1], true
		}
	}
	return domain.TournamentPlayer{}, false
}

// AwardTitle grants the season winner title for a bracket the user won.
// The color upgrades on the 3rd win of that season+mode: golden at Grand
// Champion rank, green otherwise.
func (s *TournamentService) AwardTitle(ctx context.Context, season int, mode domain.GameMode, rankName string) (domain.Title, error) {
	wins, err := s.ledger.RecordTournamentWin(ctx, season, mode)
	if err != nil {
		return domain.Title{}, err
	}

	color := domain.TitleDefault
	if wins >= 3 {
		if rankName == domain.TierName(domain.TierCount()-1) {
			color = domain.TitleGolden
		} else {
			color = domain.TitleGreen
		}
	}

	name := fmt.Sprintf("S%d %s TOURNAMENT WINNER", season, strings.ToUpper(rankName))
	title := domain.Title{
		ID:     NormalizeTitleID(name),
		Name:   name,
		Season: season,
		Rank:   rankName,
		Wins:   wins,
		Color:  color,
	}

	if _, err := s.ledger.Award(ctx, title); err != nil {
		return domain.Title{}, err
	}
	return title, nil
}
