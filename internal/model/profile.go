package model

// GameLog is one appearance in a player's season, carrying the per-game and
// per-quarter stat lines alongside game context.
type GameLog struct {
	GameID       string              `json:"game_id"`
	Date         string              `json:"date"`
	Opponent     string              `json:"opponent"`
	Result       string              `json:"result"`
	Stats        StatLine            `json:"stats"`
	QuarterStats map[string]StatLine `json:"quarter_stats"`
}

// PlayerProfile is the full derived-metric output for one distinct player
// name across the loaded game collection. Metric values are float64, int, a
// categorical string label, or a nested per-opponent map; all are
// serialization-safe. Profiles are rebuilt in full on every recomputation.
type PlayerProfile struct {
	Name        string         `json:"name"`
	Position    string         `json:"position"`
	GamesPlayed int            `json:"games_played"`
	Games       []GameLog      `json:"games"`
	Metrics     map[string]any `json:"metrics"`
}

// OpponentSplit is a player's aggregate performance against one opponent.
type OpponentSplit struct {
	PPG   float64 `json:"PPG"`
	FGPct float64 `json:"FG%"`
	Games int     `json:"Games"`
}

// LineupRating is the appearance count for one five-player tracked lineup.
type LineupRating struct {
	Players   []string `json:"players"`
	Games     int      `json:"games"`
	Minutes   float64  `json:"minutes"`
	PlusMinus float64  `json:"plus_minus"`
}

// AssistNetwork is a placeholder: full assist attribution needs event-level
// passer data the source log does not expose.
type AssistNetwork struct {
	TotalAssists int            `json:"total_assists"`
	TopAssisters []string       `json:"top_assisters"`
	NetworkData  map[string]any `json:"network_data"`
}

// PaceStats carries placeholder tempo values pending possession-level data.
type PaceStats struct {
	AvgPace       float64 `json:"avg_pace"`
	TransitionPct float64 `json:"transition_pct"`
	HalfCourtPct  float64 `json:"half_court_pct"`
}

// AdvancedMetrics is the season/team-level output of the metrics engine.
// Recomputed from the full game collection on every call; not owned by any
// single game.
type AdvancedMetrics struct {
	MomentumRuns   []ScoringRun    `json:"momentum_runs"`
	MomentumSwings []MomentumSwing `json:"momentum_swings"`
	AssistNetwork  AssistNetwork   `json:"assist_network"`
	LineupRatings  []LineupRating  `json:"lineup_ratings"`
	WPALeaders     []string        `json:"wpa_leaders"`
	PaceStats      PaceStats       `json:"pace_stats"`
}
