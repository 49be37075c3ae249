package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"ranked-clicker/internal/domain"
	"ranked-clicker/internal/rng"
	"ranked-clicker/internal/service"
)

// DebugServer is the console-command surface: a thin JSON layer over the
// same public engine operations the UI consumes. Nothing here holds state
// of its own.
type DebugServer struct {
	progression *service.ProgressionService
	opponents   *service.OpponentService
	tournaments *service.TournamentService
	rccs        *service.RCCSService
	leaderboard *service.LeaderboardService
	news        *service.NewsService
	sim         *service.ClickSimulator
	rng         rng.Source
	logger      zerolog.Logger
}

func NewDebugServer(
	progression *service.ProgressionService,
	opponents *service.OpponentService,
	tournaments *service.TournamentService,
	rccs *service.RCCSService,
	leaderboard *service.LeaderboardService,
	news *service.NewsService,
	sim *service.ClickSimulator,
	src rng.Source,
	logger zerolog.Logger,
) *DebugServer {
	return &DebugServer{
		progression: progression,
		opponents:   opponents,
		tournaments: tournaments,
		rccs:        rccs,
		leaderboard: leaderboard,
		news:        news,
		sim:         sim,
		rng:         src,
		logger:      logger,
	}
}

func (s *DebugServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/status", s.handleStatus)
	r.Get("/titles", s.handleTitles)
	r.Get("/leaderboard/{mode}", s.handleLeaderboard)
	r.Post("/match/simulate", s.handleSimulateMatch)
	r.Post("/season/rollover", s.handleRollover)
	r.Post("/rccs/register", s.handleRCCSRegister)
	r.Post("/rccs/advance", s.handleRCCSAdvance)
	return r
}

func (s *DebugServer) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn().Err(err).Msg("failed to encode debug response")
	}
}

func (s *DebugServer) writeError(w http.ResponseWriter, err error) {
	s.logger.Error().Err(err).Msg("debug request failed")
	s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func parseMode(raw string) (domain.GameMode, bool) {
	mode := domain.GameMode(raw)
	return mode, mode.Valid()
}

func (s *DebugServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	record, err := s.progression.Player(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	rccs, registered, err := s.rccs.Current(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ranks := make(map[domain.GameMode]domain.RankInfo)
	positions := make(map[domain.GameMode]int)
	for _, mode := range domain.Modes {
		ranks[mode] = domain.Rank(record.MMR[mode])
		pos, err := s.leaderboard.Rank(ctx, mode, record.MMR[mode])
		if err != nil {
			s.writeError(w, err)
			return
		}
		positions[mode] = pos
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"player":            record,
		"ranks":             ranks,
		"leaderboard_ranks": positions,
		"rccs":              rccs,
		"rccs_registered":   registered,
	})
}

func (s *DebugServer) handleTitles(w http.ResponseWriter, r *http.Request) {
	titles, err := s.progression.AvailableTitles(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, titles)
}

func (s *DebugServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	mode, ok := parseMode(chi.URLParam(r, "mode"))
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown mode"})
		return
	}

	board, err := s.leaderboard.Board(r.Context(), mode)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, board)
}

// handleSimulateMatch runs one full ranked match headless: the player's
// clicking is simulated at their own skill band, the session is ticked to
// completion, and the outcome flows through rating, progression, the elite
// roster and the leaderboard exactly as a played match would.
func (s *DebugServer) handleSimulateMatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	mode, ok := parseMode(r.URL.Query().Get("mode"))
	if !ok {
		s.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown mode"})
		return
	}

	record, err := s.progression.Player(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	playerMMR := record.MMR[mode]

	roster, err := s.opponents.Generate(ctx, mode, playerMMR, record.CurrentSeason)
	if err != nil {
		s.writeError(w, err)
		return
	}

	session := service.NewMatchSession(mode, true, playerMMR, roster, s.sim, s.rng, s.logger)

	// Hard bound: countdown plus the longest possible match.
	for i := 0; i < 1000 && session.State() != service.MatchFinished; i++ {
		if session.State() == service.MatchPlaying {
			for c := s.sim.ClicksPerTick(playerMMR, 0); c > 0; c-- {
				session.Click()
			}
		}
		session.Tick()
	}

	result, done := session.Result()
	if !done {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "match did not finish"})
		return
	}

	delta := service.MMRDelta(playerMMR, result.Won, result.EnemyMMRs)
	if _, err := s.progression.ApplyMMRChange(ctx, mode, delta); err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := s.progression.ApplyMatchResult(ctx, mode, result.Won); err != nil {
		s.writeError(w, err)
		return
	}
	record, err = s.progression.CheckSeasonRewards(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.opponents.ApplyEliteResults(ctx, result.EliteResults); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.leaderboard.SplicePlayer(ctx, record); err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"result":    result,
		"mmr_delta": delta,
		"player":    record,
	})
}

func (s *DebugServer) handleRollover(w http.ResponseWriter, r *http.Request) {
	record, err := s.progression.RolloverSeason(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *DebugServer) handleRCCSRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	record, err := s.progression.Player(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}

	tournament, err := s.rccs.Register(ctx, record.Username, record.HighestMMR(), record.CurrentSeason)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if tournament == nil {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ineligible"})
		return
	}
	s.writeJSON(w, http.StatusOK, tournament)
}

func (s *DebugServer) handleRCCSAdvance(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.rccs.Advance(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if outcome == nil {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "no active championship"})
		return
	}
	s.writeJSON(w, http.StatusOK, outcome)
}
