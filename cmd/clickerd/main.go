package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"

	"ranked-clicker/internal/config"
	"ranked-clicker/internal/constants"
	fxmodules "ranked-clicker/internal/fx"
	"ranked-clicker/internal/middleware"
	"ranked-clicker/internal/server"
	"ranked-clicker/internal/service"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(run),
	).Run()
}

func run(
	lc fx.Lifecycle,
	debugServer *server.DebugServer,
	news *service.NewsService,
	leaderboard *service.LeaderboardService,
	cfg *config.Config,
	db *sqlx.DB,
	logger zerolog.Logger,
) {
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	handler := middleware.RequestID(logger)(c.Handler(debugServer.Routes()))
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.DebugPort),
		Handler: handler,
	}

	// Background loops run under one cancelable context so shutdown stops
	// every owned timer; nothing may keep mutating state after teardown.
	bgCtx, cancel := context.WithCancel(context.Background())
	g := new(errgroup.Group)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			g.Go(func() error {
				news.CheckForUpdate(bgCtx)
				return nil
			})

			g.Go(func() error {
				ticker := time.NewTicker(constants.LeaderboardFluctuateEvery)
				defer ticker.Stop()
				for {
					select {
					case <-bgCtx.Done():
						return nil
					case <-ticker.C:
						if err := leaderboard.Fluctuate(bgCtx); err != nil {
							logger.Warn().Err(err).Msg("leaderboard fluctuation failed")
						}
					}
				}
			})

			go func() {
				logger.Info().Str("addr", srv.Addr).Msg("debug console listening")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("debug console failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down")
			cancel()
			if err := g.Wait(); err != nil {
				logger.Warn().Err(err).Msg("background loop error during shutdown")
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer shutdownCancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("debug console shutdown failed")
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing local store")
			}

			logger.Info().Msg("stopped")
			return nil
		},
	})
}
