package model

import "time"

// Outcome of a game relative to the tracked program.
const (
	OutcomeWin  = "W"
	OutcomeLoss = "L"
	// OutcomeTie flags games whose final scores are equal. Basketball games
	// should never end tied; a tie in the source data is surfaced rather than
	// silently resolved to a winner.
	OutcomeTie = "T"
)

// StatLine is a flat mapping of statistic code -> value. Values are int for
// whole numbers, float64 when the source text carried a decimal point, and the
// raw string when numeric coercion failed. It serializes directly to JSON.
type StatLine map[string]any

// Num returns the numeric value for a stat key, treating missing keys and
// non-numeric values as 0.
func (s StatLine) Num(key string) float64 {
	v, ok := s[key]
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int:
		return float64(n)
	case float64:
		return n
	default:
		return 0
	}
}

// Has reports whether key is present with a numeric value.
func (s StatLine) Has(key string) bool {
	switch s[key].(type) {
	case int, float64:
		return true
	}
	return false
}

// AddFrom accumulates every numeric value from other into s. Non-numeric
// values are skipped, matching the aggregation rule that unparseable stats
// never contribute to totals.
func (s StatLine) AddFrom(other StatLine) {
	for key, v := range other {
		var f float64
		switch n := v.(type) {
		case int:
			f = float64(n)
		case float64:
			f = n
		default:
			continue
		}
		s[key] = s.Num(key) + f
	}
}

// QuarterScore is one entry in a team's linescore. Overtime periods appear as
// additional entries beyond the fourth.
type QuarterScore struct {
	Period string `json:"period"`
	Score  int    `json:"score"`
}

// TeamResult is one team's performance within a single game. Owned by its Game.
type TeamResult struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Score    int            `json:"score"`
	Quarters []QuarterScore `json:"quarters"`
	Totals   StatLine       `json:"totals"`
}

// PlayerGameLine is one player's statistics within one game. Players are
// identified across games solely by normalized display name; two different
// players sharing a normalized name are indistinguishable (documented
// limitation of the source data).
type PlayerGameLine struct {
	Name         string              `json:"name"`
	Position     string              `json:"position"`
	Jersey       string              `json:"uniform"`
	TeamID       string              `json:"team"`
	Tracked      bool                `json:"is_tracked"`
	Stats        StatLine            `json:"stats"`
	QuarterStats map[string]StatLine `json:"quarter_stats"`
}

// Event is one entry in a game's ordered play log. Immutable once parsed; Seq
// is assigned in document order and never reordered.
type Event struct {
	Seq       int               `json:"id"`
	Period    string            `json:"period"`
	Clock     string            `json:"time"`
	Side      string            `json:"team"`
	Player    string            `json:"player,omitempty"`
	Action    string            `json:"action"`
	Type      string            `json:"type"`
	HomeScore int               `json:"hscore"`
	AwayScore int               `json:"vscore"`
	Text      string            `json:"text"`
	Extra     map[string]string `json:"extra,omitempty"`
}

// LineupSnapshot records which five players were on court for one side at one
// point in the event log. Emitted only when a side's substitution state
// resolves to exactly five players.
type LineupSnapshot struct {
	Clock     string   `json:"time"`
	Period    string   `json:"period"`
	Side      string   `json:"team"`
	Players   []string `json:"players"`
	HomeScore int      `json:"hscore"`
	AwayScore int      `json:"vscore"`
}

// ScoringRun is a contiguous sequence of made baskets by one side,
// uninterrupted by an opposing made basket, totalling at least the minimum
// run threshold.
type ScoringRun struct {
	GameID   string `json:"game_id,omitempty"`
	Opponent string `json:"opponent,omitempty"`
	Side     string `json:"team"`
	Points   int    `json:"points"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// MomentumSwing records an instantaneous jump of at least the swing threshold
// in the running score differential between two consecutive events.
type MomentumSwing struct {
	GameID string `json:"game,omitempty"`
	Clock  string `json:"time"`
	Period string `json:"period"`
	Swing  int    `json:"swing"`
}

// Game is one parsed contest. Exactly one of the two teams is the tracked
// program; Outcome is derived from the two final scores.
type Game struct {
	ID            string                     `json:"file_id"`
	Filename      string                     `json:"filename"`
	Date          string                     `json:"date"`
	ParsedDate    *time.Time                 `json:"date_obj,omitempty"`
	Venue         string                     `json:"venue"`
	Teams         map[string]*TeamResult     `json:"teams"`
	Players       map[string]*PlayerGameLine `json:"players"`
	Events        []Event                    `json:"plays"`
	Lineups       []LineupSnapshot           `json:"lineups"`
	TrackedTeamID string                     `json:"tracked_team_id"`
	TrackedScore  int                        `json:"cu_score"`
	OppScore      int                        `json:"opp_score"`
	Opponent      string                     `json:"opponent"`
	Outcome       string                     `json:"result"`
	HomeAway      string                     `json:"home_away"`
}

// TrackedLines returns the tracked program's player lines.
func (g *Game) TrackedLines() []*PlayerGameLine {
	lines := make([]*PlayerGameLine, 0, len(g.Players))
	for _, p := range g.Players {
		if p.Tracked {
			lines = append(lines, p)
		}
	}
	return lines
}
