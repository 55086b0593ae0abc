package store

import (
	"database/sql"
	"time"
)

// GameRecord is the database row for one ingested game. The full canonical
// entity (teams, players, events, lineups) lives in the payload column; the
// scalar columns exist for listing and filtering without unmarshaling.
type GameRecord struct {
	GameID        int            `json:"game_id" db:"game_id"`
	FileID        string         `json:"file_id" db:"file_id"`
	Filename      string         `json:"filename" db:"filename"`
	GameDate      sql.NullTime   `json:"game_date,omitempty" db:"game_date"`
	RawDate       string         `json:"raw_date" db:"raw_date"`
	Venue         string         `json:"venue" db:"venue"`
	Opponent      string         `json:"opponent" db:"opponent"`
	Result        string         `json:"result" db:"result"`
	HomeAway      string         `json:"home_away" db:"home_away"`
	TrackedScore  int            `json:"tracked_score" db:"tracked_score"`
	OpponentScore int            `json:"opponent_score" db:"opponent_score"`
	Payload       []byte         `json:"-" db:"payload"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// PlayerLineRecord is the database row for one player's stat line in one game.
type PlayerLineRecord struct {
	ID           int       `json:"id" db:"id"`
	FileID       string    `json:"file_id" db:"file_id"`
	PlayerName   string    `json:"player_name" db:"player_name"`
	Position     string    `json:"position" db:"position"`
	Jersey       string    `json:"jersey" db:"jersey"`
	IsTracked    bool      `json:"is_tracked" db:"is_tracked"`
	Stats        []byte    `json:"-" db:"stats"`
	QuarterStats []byte    `json:"-" db:"quarter_stats"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// ProfileSnapshot is one persisted full recomputation of the season outputs.
type ProfileSnapshot struct {
	SnapshotID  int       `json:"snapshot_id" db:"snapshot_id"`
	GamesLoaded int       `json:"games_loaded" db:"games_loaded"`
	Profiles    []byte    `json:"-" db:"profiles"`
	Advanced    []byte    `json:"-" db:"advanced"`
	ComputedAt  time.Time `json:"computed_at" db:"computed_at"`
}
