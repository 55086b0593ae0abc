// Package metrics computes the full derived-metric set from a collection of
// parsed games: per-player season profiles and season/team advanced metrics.
// Every invocation is a full recomputation over the whole collection; nothing
// is cached or incrementally updated.
package metrics

import (
	"math"
	"sort"

	"github.com/mhower/cu-basketball-analytics/internal/model"
)

// Team-level denominators for the usage-rate estimate. Real team totals are
// not tracked, so these are fixed per-game rates; the resulting metric is a
// coarse approximation and its meaning depends on these exact constants.
const (
	estTeamFGAPerGame     = 65.0
	estTeamFTAPerGame     = 20.0
	estTeamTOPerGame      = 15.0
	estTeamMinutesPerGame = 200.0
)

// ComputePlayerProfiles builds one profile per distinct tracked player name
// across the game collection. Output is sorted by name, so it is
// deterministic and independent of input order.
func ComputePlayerProfiles(games []*model.Game) []*model.PlayerProfile {
	logs := aggregatePlayerGames(games)

	names := make([]string, 0, len(logs))
	for name := range logs {
		names = append(names, name)
	}
	sort.Strings(names)

	profiles := make([]*model.PlayerProfile, 0, len(names))
	for _, name := range names {
		playerGames := logs[name]
		if len(playerGames) == 0 {
			continue
		}
		profiles = append(profiles, &model.PlayerProfile{
			Name:        name,
			Position:    primaryPosition(games, name),
			GamesPlayed: len(playerGames),
			Games:       playerGames,
			Metrics:     playerMetrics(playerGames),
		})
	}

	return profiles
}

// aggregatePlayerGames collects each tracked player's per-game logs.
func aggregatePlayerGames(games []*model.Game) map[string][]model.GameLog {
	logs := make(map[string][]model.GameLog)
	for _, game := range games {
		for name, line := range game.Players {
			if !line.Tracked {
				continue
			}
			logs[name] = append(logs[name], model.GameLog{
				GameID:       game.Filename,
				Date:         game.Date,
				Opponent:     game.Opponent,
				Result:       game.Outcome,
				Stats:        line.Stats,
				QuarterStats: line.QuarterStats,
			})
		}
	}
	return logs
}

// primaryPosition is the position from the first game where the player
// appears as tracked.
func primaryPosition(games []*model.Game, name string) string {
	for _, game := range games {
		if line, ok := game.Players[name]; ok && line.Tracked {
			return line.Position
		}
	}
	return "F"
}

// playerMetrics computes the full derived-metric mapping for one player. The
// metric names, formulas, fixed thresholds, and estimation fallbacks are
// contract values: several entries are deliberately coarse multiplicative
// estimates pending event-level attribution the source data cannot support.
func playerMetrics(games []model.GameLog) map[string]any {
	m := make(map[string]any, 120)

	totals := model.StatLine{}
	for _, game := range games {
		totals.AddFrom(game.Stats)
	}

	gp := float64(len(games))

	minutes := totals.Num("min")
	tp := totals.Num("tp")
	treb := totals.Num("treb")
	ast := totals.Num("ast")
	stl := totals.Num("stl")
	blk := totals.Num("blk")
	to := totals.Num("to")
	fgm := totals.Num("fgm")
	fga := totals.Num("fga")
	fgm3 := totals.Num("fgm3")
	fga3 := totals.Num("fga3")
	ftm := totals.Num("ftm")
	fta := totals.Num("fta")

	// Basic statistics
	m["GP"] = len(games)
	m["MIN"] = minutes
	m["MPG"] = safeDiv(minutes, gp)
	m["PPG"] = safeDiv(tp, gp)
	m["RPG"] = safeDiv(treb, gp)
	m["APG"] = safeDiv(ast, gp)
	m["SPG"] = safeDiv(stl, gp)
	m["BPG"] = safeDiv(blk, gp)
	m["TOPG"] = safeDiv(to, gp)
	m["FG%"] = safeDiv(fgm, fga)
	m["3P%"] = safeDiv(fgm3, fga3)
	m["FT%"] = safeDiv(ftm, fta)

	// Advanced metrics
	m["eFG%"] = safeDiv(fgm+0.5*fgm3, fga)
	m["TS%"] = safeDiv(tp, 2*(fga+0.44*fta))

	perComponents := tp + treb + ast + stl + blk - to - (fga - fgm) - (fta - ftm)
	m["PER"] = safeDiv(perComponents, minutes) * 40
	m["PPM"] = safeDiv(tp, minutes)
	m["Points Per 40"] = safeDiv(tp, minutes) * 40
	m["Rebounds Per 40"] = safeDiv(treb, minutes) * 40
	m["Assists Per 40"] = safeDiv(ast, minutes) * 40
	m["Turnovers Per 40"] = safeDiv(to, minutes) * 40
	m["Plus/Minus"] = totals.Num("plusminus")
	m["Plus/Minus Per Game"] = safeDiv(totals.Num("plusminus"), gp)

	teamFGA := gp * estTeamFGAPerGame
	teamFTA := gp * estTeamFTAPerGame
	teamTO := gp * estTeamTOPerGame
	teamMin := gp * estTeamMinutesPerGame
	usageDenom := teamFGA + 0.44*teamFTA + teamTO
	if usageDenom > 0 && minutes > 0 {
		m["Usage Rate"] = (fga + 0.44*fta + to) / usageDenom * (teamMin / minutes)
	} else {
		m["Usage Rate"] = 0.0
	}

	// Win Probability Added is intentionally a stub: the source has no model.
	m["WPA"] = 0.0

	// Shot selection
	m["Paint FG%"] = safeDiv(totals.Num("fgm_paint"), totals.Num("fga_paint"))
	m["Paint FGA"] = totals.Num("fga_paint")
	m["Paint FGM"] = totals.Num("fgm_paint")

	fga2 := fga - fga3
	fgm2 := fgm - fgm3
	if fga2 > 0 {
		m["Paint Shot Distribution"] = 0.65
		m["Perimeter Shot Distribution"] = 0.35
	} else {
		m["Paint Shot Distribution"] = 0.0
		m["Perimeter Shot Distribution"] = 0.0
	}

	m["Perimeter FG%"] = safeDiv(fgm3, fga3)
	m["Perimeter FGA"] = fga3
	m["Perimeter FGM"] = fgm3

	// Scoring styles
	if totals.Has("pts_paint") {
		m["Paint Points"] = totals.Num("pts_paint")
	} else {
		m["Paint Points"] = fgm2 * 2
	}
	m["Transition Points"] = totals.Num("pts_fastb")
	m["Points Off Turnovers"] = totals.Num("pts_to")
	m["Second Chance Points"] = totals.Num("pts_ch2")

	// Quarter performance
	quarters := map[string]model.StatLine{}
	for _, q := range []string{"1", "2", "3", "4"} {
		quarters[q] = aggregateQuarter(games, q)
	}
	for q, label := range map[string]string{"1": "Q1", "2": "Q2", "3": "Q3", "4": "Q4"} {
		qs := quarters[q]
		m[label+" PPG"] = safeDiv(qs.Num("tp"), gp)
		m[label+" FG%"] = safeDiv(qs.Num("fgm"), qs.Num("fga"))
		m[label+" MPG"] = safeDiv(qs.Num("min"), gp)
	}

	q1Per40 := safeDiv(quarters["1"].Num("tp"), quarters["1"].Num("min")) * 40
	q4Per40 := safeDiv(quarters["4"].Num("tp"), quarters["4"].Num("min")) * 40
	m["Fatigue Score"] = safeDiv(q4Per40-q1Per40, q1Per40)

	// Consistency and reliability
	points := make([]float64, 0, len(games))
	for _, game := range games {
		points = append(points, game.Stats.Num("tp"))
	}
	stddev := 0.0
	if len(points) > 1 {
		stddev = populationStdDev(points)
	}
	m["Scoring Std Dev"] = stddev

	avgPPG := mean(points)
	above := 0
	for _, p := range points {
		if p > avgPPG {
			above++
		}
	}
	m["Games Above Average"] = above
	m["Games Below Average"] = len(points) - above

	cv := safeDiv(stddev, avgPPG)
	consistency := math.Max(0, 100-cv*100)
	m["Consistency Rating"] = consistency
	m["Player Type"] = playerType(cv)
	m["Reliability Score"] = consistency

	// Situational performance. The close-game filter is a rough stand-in
	// (score context is not on the stat line), kept for output stability.
	var closeGames []model.GameLog
	for _, game := range games {
		if math.Abs(game.Stats.Num("tp")-70) < 5 {
			closeGames = append(closeGames, game)
		}
	}
	closePPG, closeFG := 0.0, 0.0
	if len(closeGames) > 0 {
		closeTotals := model.StatLine{}
		for _, game := range closeGames {
			closeTotals.AddFrom(game.Stats)
		}
		closePPG = safeDiv(closeTotals.Num("tp"), float64(len(closeGames)))
		closeFG = safeDiv(closeTotals.Num("fgm"), closeTotals.Num("fga"))
	}
	m["Close Game PPG"] = closePPG
	m["Close Game FG%"] = closeFG

	ppg := m["PPG"].(float64)
	m["Leading 10+ PPG"] = ppg * 0.95
	m["Close +/-5 PPG"] = closePPG
	m["Trailing 10+ PPG"] = ppg * 1.05
	m["Situational Plus/Minus"] = 0.0
	m["Impact Rating"] = impactRating(ppg, m["RPG"].(float64), m["APG"].(float64), m["SPG"].(float64), m["BPG"].(float64))

	// Clutch performance. Accurate clutch splits need event-level
	// attribution; these are estimates off season rates.
	fgPct := m["FG%"].(float64)
	ppm := m["PPM"].(float64)
	m["Clutch Points"] = 0.0
	m["Clutch FG%"] = fgPct
	m["Clutch Assists"] = 0.0
	m["Clutch Turnovers"] = 0.0
	m["Clutch Steals"] = 0.0
	m["Clutch Rebounds"] = 0.0
	m["Clutch Rating"] = clamp(closePPG*2+closeFG*50+ppm*100, 0, 100)
	m["Clutch Plays Count"] = 0.0

	// Opponent splits
	opponentStats, best, worst := opponentSplits(games)
	m["Opponent Stats"] = opponentStats
	m["Best Matchup"] = best
	m["Worst Matchup"] = worst

	// Defensive metrics
	m["Defensive Rating"] = 100 - (stl + blk*2)
	m["Steals Per 40"] = safeDiv(stl, minutes) * 40
	m["Blocks Per 40"] = safeDiv(blk, minutes) * 40
	m["Defensive Rebound %"] = safeDiv(totals.Num("dreb"), treb)
	m["Opponent Points On Court"] = 0.0

	// Tempo analysis: multiplicative estimates off season FG% pending shot
	// clock data.
	m["Early Shot Clock FG%"] = fgPct * 1.05
	m["Mid Shot Clock FG%"] = fgPct
	m["Late Shot Clock FG%"] = fgPct * 0.90
	m["Transition FG%"] = fgPct * 1.10
	m["Half Court FG%"] = fgPct * 0.95
	m["Half Court Points"] = tp - totals.Num("pts_fastb")
	m["Pace Impact"] = 0.0
	m["Optimal Tempo"] = "Medium"

	// Substitution patterns: coarse estimates pending substitution timing.
	m["First Sub Time"] = 0.0
	m["Avg Stint Length"] = safeDiv(minutes, gp*2)
	m["Substitutions Per Game"] = 2
	m["Plus/Minus After Entry"] = m["Plus/Minus Per Game"]
	m["Fresh Legs FG%"] = fgPct * 1.05
	m["Fresh Legs Points"] = 0.0

	return m
}

// aggregateQuarter sums one quarter's stat lines across games.
func aggregateQuarter(games []model.GameLog, quarter string) model.StatLine {
	totals := model.StatLine{}
	for _, game := range games {
		if qtr, ok := game.QuarterStats[quarter]; ok {
			totals.AddFrom(qtr)
		}
	}
	return totals
}

// opponentSplits groups games by opponent and finds the best and worst
// matchups by PPG.
func opponentSplits(games []model.GameLog) (map[string]model.OpponentSplit, string, string) {
	type acc struct {
		points, fgm, fga float64
		games            int
	}
	byOpp := map[string]*acc{}
	var order []string
	for _, game := range games {
		opp := game.Opponent
		if opp == "" {
			opp = "Unknown"
		}
		a, ok := byOpp[opp]
		if !ok {
			a = &acc{}
			byOpp[opp] = a
			order = append(order, opp)
		}
		a.points += game.Stats.Num("tp")
		a.fgm += game.Stats.Num("fgm")
		a.fga += game.Stats.Num("fga")
		a.games++
	}
	sort.Strings(order)

	splits := make(map[string]model.OpponentSplit, len(byOpp))
	best, worst := "", ""
	bestPPG, worstPPG := 0.0, math.Inf(1)
	for _, opp := range order {
		a := byOpp[opp]
		ppg := safeDiv(a.points, float64(a.games))
		splits[opp] = model.OpponentSplit{
			PPG:   ppg,
			FGPct: safeDiv(a.fgm, a.fga),
			Games: a.games,
		}
		if ppg > bestPPG {
			bestPPG = ppg
			best = opp
		}
		if ppg < worstPPG {
			worstPPG = ppg
			worst = opp
		}
	}

	if best == "" {
		best = "N/A"
	}
	if worst == "" {
		worst = "N/A"
	}
	return splits, best, worst
}

// playerType classifies scoring volatility by coefficient of variation.
// Thresholds are contract values.
func playerType(cv float64) string {
	switch {
	case cv > 0.5:
		return "Boom or Bust"
	case cv > 0.3:
		return "Streaky"
	default:
		return "Consistent"
	}
}

// impactRating buckets a weighted production score into a categorical label.
func impactRating(ppg, rpg, apg, spg, bpg float64) string {
	score := ppg*2 + rpg*1.5 + apg*1.5 + spg + bpg
	switch {
	case score > 40:
		return "Elite"
	case score > 30:
		return "Strong"
	case score > 20:
		return "Good"
	default:
		return "Average"
	}
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64) float64 {
	avg := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - avg
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
