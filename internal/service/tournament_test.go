package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ranked-clicker/internal/domain"
)

func newTournamentService(t *testing.T) *TournamentService {
	t.Helper()
	src := &scriptedRNG{f: 0.5}
	opponents := NewOpponentService(&memTournamentStore{}, src, zerolog.Nop())
	ledger := NewTitleLedger(&memTournamentStore{}, zerolog.Nop())
	return NewTournamentService(opponents, ledger, src, zerolog.Nop())
}

func TestCreateTournamentSeedsFullBracket(t *testing.T) {
	svc := newTournamentService(t)

	user := domain.TournamentPlayer{ID: "user", Name: "tester", MMR: 900}
	tournament, err := svc.CreateTournament(context.Background(), domain.Mode1v1, 1, user)
	require.NoError(t, err)

	assert.Len(t, tournament.Players, BracketSize)
	assert.Len(t, tournament.Matches, BracketSize/2)
	assert.Equal(t, domain.Round1, tournament.CurrentRound)
	assert.Equal(t, domain.PhaseInProgress, tournament.Phase)

	users := 0
	names := make(map[string]bool)
	for _, player := range tournament.Players {
		if player.IsUser {
			users++
		}
		require.False(t, names[player.Name], "duplicate entrant name %s", player.Name)
		names[player.Name] = true
	}
	assert.Equal(t, 1, users)

	for _, match := range tournament.Matches {
		assert.Equal(t, 1, match.BestOf)
	}
}

func TestGenerateBracketDropsOddEntrant(t *testing.T) {
	svc := newTournamentService(t)

	tournament := &domain.StandardTournament{ID: "t", Type: domain.Mode1v1, Season: 1}
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		tournament.Players = append(tournament.Players, domain.TournamentPlayer{ID: id, Name: id, MMR: 600})
	}

	svc.GenerateBracket(tournament)

	require.Len(t, tournament.Matches, 2)
	seeded := make(map[string]bool)
	for _, match := range tournament.Matches {
		seeded[match.Players[0].ID] = true
		seeded[match.Players[1].ID] = true
	}
	assert.Len(t, seeded, 4)
	assert.False(t, seeded["e"])
}

func TestCompleteMatchIgnoresBadWinner(t *testing.T) {
	svc := newTournamentService(t)

	user := domain.TournamentPlayer{ID: "user", Name: "tester", MMR: 900}
	tournament, err := svc.CreateTournament(context.Background(), domain.Mode1v1, 1, user)
	require.NoError(t, err)

	match := tournament.Matches[0]
	svc.CompleteMatch(tournament, match.ID, "nobody", nil)
	assert.False(t, tournament.Matches[0].IsComplete)

	svc.CompleteMatch(tournament, "missing-match", match.Players[0].ID, nil)
	assert.Equal(t, domain.Round1, tournament.CurrentRound)
}

func TestBracketRunsToFinalWithEscalatingBestOf(t *testing.T) {
	svc := newTournamentService(t)

	user := domain.TournamentPlayer{ID: "user", Name: "tester", MMR: 900}
	tournament, err := svc.CreateTournament(context.Background(), domain.Mode1v1, 1, user)
	require.NoError(t, err)

	// First listed player wins every match until the bracket resolves.
	for tournament.Phase != domain.PhaseFinished {
		round := tournament.CurrentRound
		var pending []domain.TournamentMatch
		for _, match := range tournament.Matches {
			if match.Round == round && !match.IsComplete {
				pending = append(pending, match)
			}
		}
		require.NotEmpty(t, pending)
		for _, match := range pending {
			svc.CompleteMatch(tournament, match.ID, match.Players[0].ID, nil)
		}
	}

	counts := make(map[domain.TournamentRound]int)
	for _, match := range tournament.Matches {
		counts[match.Round]++
		switch match.Round {
		case domain.Semifinal:
			assert.Equal(t, 3, match.BestOf)
		case domain.Final:
			assert.Equal(t, 5, match.BestOf)
		default:
			assert.Equal(t, 1, match.BestOf)
		}
	}
	assert.Equal(t, 16, counts[domain.Round1])
	assert.Equal(t, 8, counts[domain.Round2])
	assert.Equal(t, 4, counts[domain.Round3])
	assert.Equal(t, 2, counts[domain.Semifinal])
	assert.Equal(t, 1, counts[domain.Final])

	winner, ok := svc.Winner(tournament)
	require.True(t, ok)
	// The identity shuffle keeps the user seeded first, so winning every
	// match makes them champion.
	assert.True(t, winner.IsUser)
}

func TestWinnerUnavailableWhileRunning(t *testing.T) {
	svc := newTournamentService(t)

	user := domain.TournamentPlayer{ID: "user", Name: "tester", MMR: 900}
	tournament, err := svc.CreateTournament(context.Background(), domain.Mode1v1, 1, user)
	require.NoError(t, err)

	_, ok := svc.Winner(tournament)
	assert.False(t, ok)
}

func TestAwardTitleColorUpgrades(t *testing.T) {
	svc := newTournamentService(t)
	ctx := context.Background()

	title, err := svc.AwardTitle(ctx, 1, domain.Mode1v1, "Diamond I")
	require.NoError(t, err)
	assert.Equal(t, "S1 DIAMOND I TOURNAMENT WINNER", title.Name)
	assert.Equal(t, domain.TitleDefault, title.Color)
	assert.Equal(t, 1, title.Wins)

	title, err = svc.AwardTitle(ctx, 1, domain.Mode1v1, "Diamond I")
	require.NoError(t, err)
	assert.Equal(t, domain.TitleDefault, title.Color)

	// Third win of the season+mode upgrades the color.
	title, err = svc.AwardTitle(ctx, 1, domain.Mode1v1, "Diamond I")
	require.NoError(t, err)
	assert.Equal(t, domain.TitleGreen, title.Color)
	assert.Equal(t, 3, title.Wins)

	// At Grand Champion the upgrade is golden instead.
	title, err = svc.AwardTitle(ctx, 1, domain.Mode1v1, "Grand Champion")
	require.NoError(t, err)
	assert.Equal(t, domain.TitleGolden, title.Color)
}
