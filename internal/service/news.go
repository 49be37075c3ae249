package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"ranked-clicker/internal/api"
	"ranked-clicker/internal/domain"
)

// NewsService wraps the best-effort version check. Network failures are
// logged and swallowed; the cached result keeps serving and game logic is
// never blocked or altered.
type NewsService struct {
	client *api.ReleasesClient
	store  NewsStore
	logger zerolog.Logger
}

func NewNewsService(client *api.ReleasesClient, store NewsStore, logger zerolog.Logger) *NewsService {
	return &NewsService{client: client, store: store, logger: logger}
}

// CheckForUpdate refreshes the release cache. On any failure it returns
// whatever was cached before, possibly nil.
func (s *NewsService) CheckForUpdate(ctx context.Context) *domain.NewsCache {
	release, err := s.client.Latest(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("release check failed, keeping cached version info")
		cached, loadErr := s.store.Load(ctx)
		if loadErr != nil {
			s.logger.Warn().Err(loadErr).Msg("failed to read cached version info")
			return nil
		}
		return cached
	}

	cache := &domain.NewsCache{
		LatestVersion: release.TagName,
		Notes:         release.Body,
		URL:           release.HTMLURL,
		CheckedAt:     time.Now().UTC(),
	}
	if err := s.store.Save(ctx, cache); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache version info")
	}

	s.logger.Info().Str("version", cache.LatestVersion).Msg("release check completed")
	return cache
}
