package metrics

import (
	"sort"
	"strings"

	"github.com/mhower/cu-basketball-analytics/internal/analyzer"
	"github.com/mhower/cu-basketball-analytics/internal/model"
)

const (
	topRunCount    = 20
	topSwingCount  = 20
	topLineupCount = 10
)

// ComputeAdvancedMetrics derives season/team-level metrics from the full game
// collection: ranked scoring runs, momentum swings, lineup appearance counts,
// and the placeholder structures the source stubs out (assist network, WPA,
// pace). Recomputed from scratch on every call.
func ComputeAdvancedMetrics(games []*model.Game) *model.AdvancedMetrics {
	return &model.AdvancedMetrics{
		MomentumRuns:   topRuns(games),
		MomentumSwings: topSwings(games),
		AssistNetwork: model.AssistNetwork{
			TopAssisters: []string{},
			NetworkData:  map[string]any{},
		},
		LineupRatings: lineupRatings(games),
		WPALeaders:    []string{},
		PaceStats: model.PaceStats{
			AvgPace:       70.0,
			TransitionPct: 0.15,
			HalfCourtPct:  0.85,
		},
	}
}

// topRuns collects runs from every game and ranks them by points.
func topRuns(games []*model.Game) []model.ScoringRun {
	var all []model.ScoringRun
	for _, game := range games {
		for _, run := range analyzer.DetectRuns(game.Events) {
			run.GameID = game.Filename
			run.Opponent = game.Opponent
			all = append(all, run)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Points != all[j].Points {
			return all[i].Points > all[j].Points
		}
		if all[i].GameID != all[j].GameID {
			return all[i].GameID < all[j].GameID
		}
		return all[i].Start < all[j].Start
	})

	if len(all) > topRunCount {
		all = all[:topRunCount]
	}
	return all
}

// topSwings collects momentum swings across games, largest first.
func topSwings(games []*model.Game) []model.MomentumSwing {
	var all []model.MomentumSwing
	for _, game := range games {
		for _, swing := range analyzer.DetectSwings(game.Events) {
			swing.GameID = game.Filename
			all = append(all, swing)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Swing != all[j].Swing {
			return all[i].Swing > all[j].Swing
		}
		return all[i].GameID < all[j].GameID
	})

	if len(all) > topSwingCount {
		all = all[:topSwingCount]
	}
	return all
}

// lineupRatings counts appearances of each five-player tracked-side lineup
// across all games. Minutes and plus/minus need possession-level attribution
// the event log does not carry, so they stay zero.
func lineupRatings(games []*model.Game) []model.LineupRating {
	counts := map[string]*model.LineupRating{}
	var keys []string

	for _, game := range games {
		for _, lineup := range game.Lineups {
			if lineup.Side != game.TrackedTeamID || len(lineup.Players) != 5 {
				continue
			}
			players := append([]string(nil), lineup.Players...)
			sort.Strings(players)
			key := strings.Join(players, "|")

			rating, ok := counts[key]
			if !ok {
				rating = &model.LineupRating{Players: players}
				counts[key] = rating
				keys = append(keys, key)
			}
			rating.Games++
		}
	}

	sort.Strings(keys)
	ratings := make([]model.LineupRating, 0, len(keys))
	for _, key := range keys {
		ratings = append(ratings, *counts[key])
	}
	sort.SliceStable(ratings, func(i, j int) bool {
		return ratings[i].Games > ratings[j].Games
	})

	if len(ratings) > topLineupCount {
		ratings = ratings[:topLineupCount]
	}
	return ratings
}
