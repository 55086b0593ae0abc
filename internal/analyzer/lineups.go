// Package analyzer derives sequence facts from a game's ordered event log:
// on-court lineups, scoring runs, and momentum swings. Every analysis is a
// single forward pass carrying a small explicit state record; an inconsistent
// log is never corrected, it just stops producing output until it recovers.
package analyzer

import (
	"sort"
	"strings"

	"github.com/mhower/cu-basketball-analytics/internal/model"
)

// TrackLineups reconstructs on-court lineups from substitution events. The
// tracked side's set is seeded from declared starters when at most five are
// flagged; both sides then evolve through SUB events, and a snapshot is
// emitted whenever a side's set holds exactly five players. A side stuck
// above or below five simply emits nothing until it returns to exactly five.
func TrackLineups(game *model.Game) []model.LineupSnapshot {
	if len(game.Events) == 0 {
		return nil
	}

	onCourt := map[string]map[string]bool{
		"H": {},
		"V": {},
	}

	starters := trackedStarters(game)
	if len(starters) > 0 && len(starters) <= 5 {
		side := game.TrackedTeamID
		if _, ok := onCourt[side]; !ok {
			side = "H"
		}
		for _, name := range starters {
			onCourt[side][name] = true
		}
	}

	var snapshots []model.LineupSnapshot
	for _, event := range game.Events {
		action := strings.ToUpper(event.Action)
		if !strings.Contains(action, "SUB") {
			continue
		}
		if event.Player == "" {
			continue
		}

		side := event.Side
		if side == "" {
			side = "H"
		}
		set, ok := onCourt[side]
		if !ok {
			set = map[string]bool{}
			onCourt[side] = set
		}

		playType := strings.ToUpper(event.Type)
		switch {
		case strings.Contains(playType, "IN") || strings.Contains(action, "ENTERS"):
			set[event.Player] = true
		case strings.Contains(playType, "OUT") || strings.Contains(action, "LEAVES"):
			delete(set, event.Player)
		}

		if len(set) == 5 {
			snapshots = append(snapshots, model.LineupSnapshot{
				Clock:     event.Clock,
				Period:    event.Period,
				Side:      side,
				Players:   sortedNames(set),
				HomeScore: event.HomeScore,
				AwayScore: event.AwayScore,
			})
		}
	}

	return snapshots
}

// trackedStarters returns normalized names of tracked players whose stat line
// flags them as a starter (gs == 1).
func trackedStarters(game *model.Game) []string {
	var starters []string
	for _, line := range game.Players {
		if line.Tracked && line.Stats.Num("gs") == 1 {
			starters = append(starters, line.Name)
		}
	}
	sort.Strings(starters)
	return starters
}

func sortedNames(set map[string]bool) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
