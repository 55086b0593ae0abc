package service

import (
	"context"
	"log"

	"github.com/mhower/cu-basketball-analytics/internal/cache"
	"github.com/mhower/cu-basketball-analytics/internal/model"
	"github.com/mhower/cu-basketball-analytics/internal/store/repository"
)

// AnalyticsService serves the season-level advanced metrics, reading through
// the Redis cache and snapshot store when they are configured.
type AnalyticsService struct {
	corpus    *Corpus
	cache     *cache.RedisCache
	snapshots *repository.ProfileRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(corpus *Corpus, rc *cache.RedisCache, snapshots *repository.ProfileRepository) *AnalyticsService {
	return &AnalyticsService{
		corpus:    corpus,
		cache:     rc,
		snapshots: snapshots,
	}
}

// GetAdvanced returns the current advanced metrics. Before the corpus warms
// up, restarted API replicas answer from the cache, then from the latest
// persisted snapshot.
func (s *AnalyticsService) GetAdvanced(ctx context.Context) *model.AdvancedMetrics {
	if s.corpus.GamesLoaded() > 0 {
		return s.corpus.Advanced()
	}

	if s.cache != nil {
		cached := &model.AdvancedMetrics{}
		if err := s.cache.GetJSON(ctx, cache.KeyAdvanced, cached); err == nil {
			return cached
		}
	}

	if s.snapshots != nil {
		_, advanced, err := s.snapshots.LatestSnapshot(ctx)
		if err != nil {
			log.Printf("[analytics] Failed to load snapshot: %v", err)
		} else if advanced != nil {
			return advanced
		}
	}

	return s.corpus.Advanced()
}

// Overview summarizes the corpus for the health and status endpoints.
type Overview struct {
	GamesLoaded int `json:"games_loaded"`
	Players     int `json:"players"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
}

// GetOverview computes the season record from the loaded games.
func (s *AnalyticsService) GetOverview() *Overview {
	games := s.corpus.Games()
	overview := &Overview{
		GamesLoaded: len(games),
		Players:     len(s.corpus.Profiles()),
	}
	for _, game := range games {
		switch game.Outcome {
		case model.OutcomeWin:
			overview.Wins++
		case model.OutcomeLoss:
			overview.Losses++
		}
	}
	return overview
}
