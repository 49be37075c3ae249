package fx

import (
	"go.uber.org/fx"

	"ranked-clicker/internal/api"
	"ranked-clicker/internal/config"
	"ranked-clicker/internal/database"
	"ranked-clicker/internal/logger"
	"ranked-clicker/internal/repository"
	"ranked-clicker/internal/rng"
	"ranked-clicker/internal/server"
	"ranked-clicker/internal/service"

	"github.com/rs/zerolog"
)

func providePlayerStore(r *repository.PlayerRepository) service.PlayerStore {
	return r
}

func provideTournamentStore(r *repository.TournamentRepository) service.TournamentStore {
	return r
}

func provideLeaderboardStore(r *repository.LeaderboardRepository) service.LeaderboardStore {
	return r
}

func provideNewsStore(r *repository.NewsRepository) service.NewsStore {
	return r
}

func provideProgression(players service.PlayerStore, ledger *service.TitleLedger, cfg *config.Config, log zerolog.Logger) *service.ProgressionService {
	return service.NewProgressionService(players, ledger, cfg.Username, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(rng.New),
	// persistence
	fx.Provide(repository.NewBuckets),
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewTournamentRepository),
	fx.Provide(repository.NewLeaderboardRepository),
	fx.Provide(repository.NewNewsRepository),
	fx.Provide(providePlayerStore),
	fx.Provide(provideTournamentStore),
	fx.Provide(provideLeaderboardStore),
	fx.Provide(provideNewsStore),
	// outbound client
	fx.Provide(api.NewReleasesClient),
	// engines
	fx.Provide(service.NewTitleLedger),
	fx.Provide(service.NewClickSimulator),
	fx.Provide(service.NewOpponentService),
	fx.Provide(provideProgression),
	fx.Provide(service.NewTournamentService),
	fx.Provide(service.NewRCCSService),
	fx.Provide(service.NewLeaderboardService),
	fx.Provide(service.NewNewsService),
	// debug surface
	fx.Provide(server.NewDebugServer),
)
