package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"ranked-clicker/internal/domain"
)

// TitleLedger is the one shared store of earned display titles. The standard
// tournament engine and the championship engine both award through it, and
// progression reads it back for the title picker.
type TitleLedger struct {
	store  TournamentStore
	logger zerolog.Logger
}

func NewTitleLedger(store TournamentStore, logger zerolog.Logger) *TitleLedger {
	return &TitleLedger{store: store, logger: logger}
}

// NormalizeTitleID turns a display name into the dedup key.
func NormalizeTitleID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// loadTournamentState reads the shared tournament/title bucket, seeding
// defaults (empty ledger, fresh elite roster) on first access.
func loadTournamentState(ctx context.Context, store TournamentStore) (*domain.TournamentState, error) {
	state, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &domain.TournamentState{}
	}
	if state.SeasonWinCounts == nil {
		state.SeasonWinCounts = make(map[string]int)
	}
	if len(state.Elites) == 0 {
		state.Elites = seedEliteRoster()
	}
	return state, nil
}

func (l *TitleLedger) state(ctx context.Context) (*domain.TournamentState, error) {
	return loadTournamentState(ctx, l.store)
}

// Award appends a title to the ledger. Re-awarding an existing id is a
// silent no-op; the bool reports whether anything was written.
func (l *TitleLedger) Award(ctx context.Context, title domain.Title) (bool, error) {
	if title.ID == "" {
		title.ID = NormalizeTitleID(title.Name)
	}
	if title.DateAwarded.IsZero() {
		title.DateAwarded = time.Now().UTC()
	}

	state, err := l.state(ctx)
	if err != nil {
		return false, err
	}

	if state.HasTitle(title.ID) {
		l.logger.Debug().Str("title", title.ID).Msg("title already awarded")
		return false, nil
	}

	state.Titles = append(state.Titles, title)
	state.UpdatedAt = time.Now().UTC()
	if err := l.store.Save(ctx, state); err != nil {
		return false, err
	}

	l.logger.Info().Str("title", title.Name).Str("color", string(title.Color)).Msg("title awarded")
	return true, nil
}

// List returns every earned title, oldest first.
func (l *TitleLedger) List(ctx context.Context) ([]domain.Title, error) {
	state, err := l.state(ctx)
	if err != nil {
		return nil, err
	}
	return state.Titles, nil
}

// RecordTournamentWin bumps and returns the per-season win counter used to
// pick green/golden upgrade colors.
func (l *TitleLedger) RecordTournamentWin(ctx context.Context, season int, mode domain.GameMode) (int, error) {
	state, err := l.state(ctx)
	if err != nil {
		return 0, err
	}

	key := fmt.Sprintf("s%d:%s", season, mode)
	state.SeasonWinCounts[key]++
	wins := state.SeasonWinCounts[key]
	state.UpdatedAt = time.Now().UTC()

	if err := l.store.Save(ctx, state); err != nil {
		return 0, err
	}
	return wins, nil
}
