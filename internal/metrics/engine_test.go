package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhower/cu-basketball-analytics/internal/model"
)

// gameWith builds a minimal game containing one tracked stat line per entry.
func gameWith(filename, opponent string, lines map[string]model.StatLine) *model.Game {
	game := &model.Game{
		ID:            filename,
		Filename:      filename,
		Opponent:      opponent,
		TrackedTeamID: "H",
		Players:       map[string]*model.PlayerGameLine{},
	}
	for name, stats := range lines {
		game.Players[name] = &model.PlayerGameLine{
			Name:    name,
			TeamID:  "H",
			Tracked: true,
			Stats:   stats,
		}
	}
	return game
}

func TestComputePlayerProfilesAverages(t *testing.T) {
	games := []*model.Game{
		gameWith("g1.xml", "Utah", map[string]model.StatLine{
			"Kennedy Sanders": {"tp": 10, "treb": 4, "ast": 2, "min": 30, "fgm": 4, "fga": 10},
		}),
		gameWith("g2.xml", "Stanford", map[string]model.StatLine{
			"Kennedy Sanders": {"tp": 20, "treb": 6, "ast": 4, "min": 34, "fgm": 8, "fga": 14},
		}),
	}

	profiles := ComputePlayerProfiles(games)
	require.Len(t, profiles, 1)

	profile := profiles[0]
	require.Equal(t, "Kennedy Sanders", profile.Name)
	require.Equal(t, 2, profile.GamesPlayed)

	m := profile.Metrics
	require.InDelta(t, 15.0, m["PPG"].(float64), 1e-9)
	require.InDelta(t, 5.0, m["RPG"].(float64), 1e-9)
	require.InDelta(t, 3.0, m["APG"].(float64), 1e-9)
	require.InDelta(t, 12.0/24.0, m["FG%"].(float64), 1e-9)

	// Season points always equal PPG times games played.
	require.InDelta(t, 30.0, m["PPG"].(float64)*float64(profile.GamesPlayed), 1e-9)
}

func TestProfilesSortedByName(t *testing.T) {
	games := []*model.Game{
		gameWith("g1.xml", "Utah", map[string]model.StatLine{
			"Zoe Young": {"tp": 5},
			"Amy Able":  {"tp": 8},
			"Mia Moss":  {"tp": 12},
		}),
	}

	profiles := ComputePlayerProfiles(games)
	require.Len(t, profiles, 3)
	require.Equal(t, "Amy Able", profiles[0].Name)
	require.Equal(t, "Mia Moss", profiles[1].Name)
	require.Equal(t, "Zoe Young", profiles[2].Name)
}

func TestUntrackedPlayersExcluded(t *testing.T) {
	game := gameWith("g1.xml", "Utah", map[string]model.StatLine{
		"Kennedy Sanders": {"tp": 10},
	})
	game.Players["Amy Jones"] = &model.PlayerGameLine{
		Name:    "Amy Jones",
		TeamID:  "V",
		Tracked: false,
		Stats:   model.StatLine{"tp": 30},
	}

	profiles := ComputePlayerProfiles([]*model.Game{game})
	require.Len(t, profiles, 1)
	require.Equal(t, "Kennedy Sanders", profiles[0].Name)
}

func TestEffectiveFGAboveRawOnlyWithThrees(t *testing.T) {
	withThrees := ComputePlayerProfiles([]*model.Game{
		gameWith("g1.xml", "Utah", map[string]model.StatLine{
			"Shooter": {"fgm": 8, "fga": 16, "fgm3": 4, "fga3": 8},
		}),
	})[0].Metrics
	require.Greater(t, withThrees["eFG%"].(float64), withThrees["FG%"].(float64))

	noThrees := ComputePlayerProfiles([]*model.Game{
		gameWith("g1.xml", "Utah", map[string]model.StatLine{
			"Post": {"fgm": 8, "fga": 16},
		}),
	})[0].Metrics
	require.InDelta(t, noThrees["FG%"].(float64), noThrees["eFG%"].(float64), 1e-9)
}

func TestConsistencyRating(t *testing.T) {
	steady := ComputePlayerProfiles([]*model.Game{
		gameWith("g1.xml", "A", map[string]model.StatLine{"P": {"tp": 10}}),
		gameWith("g2.xml", "B", map[string]model.StatLine{"P": {"tp": 10}}),
		gameWith("g3.xml", "C", map[string]model.StatLine{"P": {"tp": 10}}),
		gameWith("g4.xml", "D", map[string]model.StatLine{"P": {"tp": 10}}),
	})[0].Metrics

	require.InDelta(t, 100.0, steady["Consistency Rating"].(float64), 1e-9)
	require.Equal(t, "Consistent", steady["Player Type"])

	volatile := ComputePlayerProfiles([]*model.Game{
		gameWith("g1.xml", "A", map[string]model.StatLine{"P": {"tp": 0}}),
		gameWith("g2.xml", "B", map[string]model.StatLine{"P": {"tp": 20}}),
		gameWith("g3.xml", "C", map[string]model.StatLine{"P": {"tp": 0}}),
		gameWith("g4.xml", "D", map[string]model.StatLine{"P": {"tp": 20}}),
	})[0].Metrics

	require.Less(t, volatile["Consistency Rating"].(float64), steady["Consistency Rating"].(float64))
	require.Equal(t, "Boom or Bust", volatile["Player Type"])
	require.Equal(t, 2, volatile["Games Above Average"])
	require.Equal(t, 2, volatile["Games Below Average"])
}

func TestOpponentSplits(t *testing.T) {
	m := ComputePlayerProfiles([]*model.Game{
		gameWith("g1.xml", "Utah", map[string]model.StatLine{"P": {"tp": 20, "fgm": 8, "fga": 12}}),
		gameWith("g2.xml", "Stanford", map[string]model.StatLine{"P": {"tp": 4, "fgm": 2, "fga": 10}}),
		gameWith("g3.xml", "Utah", map[string]model.StatLine{"P": {"tp": 10, "fgm": 4, "fga": 8}}),
	})[0].Metrics

	require.Equal(t, "Utah", m["Best Matchup"])
	require.Equal(t, "Stanford", m["Worst Matchup"])

	splits := m["Opponent Stats"].(map[string]model.OpponentSplit)
	require.Len(t, splits, 2)
	require.Equal(t, 2, splits["Utah"].Games)
	require.InDelta(t, 15.0, splits["Utah"].PPG, 1e-9)
}

func TestQuarterAggregation(t *testing.T) {
	game := gameWith("g1.xml", "Utah", map[string]model.StatLine{
		"P": {"tp": 18, "min": 30},
	})
	game.Players["P"].QuarterStats = map[string]model.StatLine{
		"1": {"tp": 10, "fgm": 4, "fga": 6, "min": 8},
		"4": {"tp": 2, "fgm": 1, "fga": 5, "min": 8},
	}

	m := ComputePlayerProfiles([]*model.Game{game})[0].Metrics
	require.InDelta(t, 10.0, m["Q1 PPG"].(float64), 1e-9)
	require.InDelta(t, 4.0/6.0, m["Q1 FG%"].(float64), 1e-9)
	require.InDelta(t, 2.0, m["Q4 PPG"].(float64), 1e-9)
	require.InDelta(t, 0.0, m["Q2 PPG"].(float64), 1e-9)
}

func TestZeroDenominatorsStayZero(t *testing.T) {
	m := ComputePlayerProfiles([]*model.Game{
		gameWith("g1.xml", "Utah", map[string]model.StatLine{"P": {}}),
	})[0].Metrics

	require.Zero(t, m["FG%"].(float64))
	require.Zero(t, m["PPM"].(float64))
	require.Zero(t, m["Usage Rate"].(float64))
	require.Zero(t, m["Fatigue Score"].(float64))
}

func TestImpactRatingBuckets(t *testing.T) {
	require.Equal(t, "Elite", impactRating(18, 5, 4, 1, 1))
	require.Equal(t, "Strong", impactRating(13, 4, 3, 1, 0))
	require.Equal(t, "Good", impactRating(8, 3, 2, 0, 0))
	require.Equal(t, "Average", impactRating(4, 2, 1, 0, 0))
}
