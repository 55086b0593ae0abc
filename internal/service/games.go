package service

import (
	"fmt"

	"github.com/mhower/cu-basketball-analytics/internal/analyzer"
	"github.com/mhower/cu-basketball-analytics/internal/model"
)

// GameService handles game-related business logic
type GameService struct {
	corpus *Corpus
}

// NewGameService creates a new game service
func NewGameService(corpus *Corpus) *GameService {
	return &GameService{corpus: corpus}
}

// GameSummary is the listing view of one ingested game.
type GameSummary struct {
	FileID       string `json:"file_id"`
	Filename     string `json:"filename"`
	Date         string `json:"date"`
	Venue        string `json:"venue"`
	Opponent     string `json:"opponent"`
	Result       string `json:"result"`
	HomeAway     string `json:"home_away"`
	TrackedScore int    `json:"tracked_score"`
	OppScore     int    `json:"opponent_score"`
	Players      int    `json:"players"`
	Events       int    `json:"events"`
}

// ListGames returns summaries of every ingested game, sorted by filename.
func (s *GameService) ListGames() []*GameSummary {
	games := s.corpus.Games()
	summaries := make([]*GameSummary, 0, len(games))
	for _, game := range games {
		summaries = append(summaries, summarize(game))
	}
	return summaries
}

// GetGame retrieves one game's full canonical entity.
func (s *GameService) GetGame(fileID string) (*model.Game, error) {
	game, ok := s.corpus.Game(fileID)
	if !ok {
		return nil, fmt.Errorf("game not found: %s", fileID)
	}
	return game, nil
}

// GetLineups returns the reconstructed lineup snapshots for one game.
func (s *GameService) GetLineups(fileID string) ([]model.LineupSnapshot, error) {
	game, err := s.GetGame(fileID)
	if err != nil {
		return nil, err
	}
	return game.Lineups, nil
}

// GetRuns returns the detected scoring runs for one game.
func (s *GameService) GetRuns(fileID string) ([]model.ScoringRun, error) {
	game, err := s.GetGame(fileID)
	if err != nil {
		return nil, err
	}

	runs := analyzer.DetectRuns(game.Events)
	for i := range runs {
		runs[i].GameID = game.Filename
		runs[i].Opponent = game.Opponent
	}
	return runs, nil
}

// GetSwings returns the detected momentum swings for one game.
func (s *GameService) GetSwings(fileID string) ([]model.MomentumSwing, error) {
	game, err := s.GetGame(fileID)
	if err != nil {
		return nil, err
	}

	swings := analyzer.DetectSwings(game.Events)
	for i := range swings {
		swings[i].GameID = game.Filename
	}
	return swings, nil
}

func summarize(game *model.Game) *GameSummary {
	return &GameSummary{
		FileID:       game.ID,
		Filename:     game.Filename,
		Date:         game.Date,
		Venue:        game.Venue,
		Opponent:     game.Opponent,
		Result:       game.Outcome,
		HomeAway:     game.HomeAway,
		TrackedScore: game.TrackedScore,
		OppScore:     game.OppScore,
		Players:      len(game.Players),
		Events:       len(game.Events),
	}
}
