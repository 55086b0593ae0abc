package service

import (
	"fmt"

	"github.com/mhower/cu-basketball-analytics/internal/model"
)

// PlayerService handles player-related business logic
type PlayerService struct {
	corpus *Corpus
}

// NewPlayerService creates a new player service
func NewPlayerService(corpus *Corpus) *PlayerService {
	return &PlayerService{corpus: corpus}
}

// PlayerSummary is the listing view of one tracked player.
type PlayerSummary struct {
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	GamesPlayed int     `json:"games_played"`
	PPG         float64 `json:"ppg"`
	RPG         float64 `json:"rpg"`
	APG         float64 `json:"apg"`
}

// ListPlayers returns summaries of every tracked player, sorted by name.
func (s *PlayerService) ListPlayers() []*PlayerSummary {
	profiles := s.corpus.Profiles()
	summaries := make([]*PlayerSummary, 0, len(profiles))
	for _, profile := range profiles {
		summaries = append(summaries, &PlayerSummary{
			Name:        profile.Name,
			Position:    profile.Position,
			GamesPlayed: profile.GamesPlayed,
			PPG:         metricFloat(profile, "PPG"),
			RPG:         metricFloat(profile, "RPG"),
			APG:         metricFloat(profile, "APG"),
		})
	}
	return summaries
}

// GetPlayer retrieves a full player profile by canonical name.
func (s *PlayerService) GetPlayer(name string) (*model.PlayerProfile, error) {
	profile, ok := s.corpus.Profile(name)
	if !ok {
		return nil, fmt.Errorf("player not found: %s", name)
	}
	return profile, nil
}

func metricFloat(profile *model.PlayerProfile, key string) float64 {
	switch v := profile.Metrics[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
