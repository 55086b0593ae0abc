package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mhower/cu-basketball-analytics/internal/model"
	"github.com/mhower/cu-basketball-analytics/internal/store"
)

// GameRepository handles game data access.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert persists a parsed game and its player lines, replacing any prior
// ingest of the same file.
func (r *GameRepository) Upsert(ctx context.Context, game *model.Game) error {
	payload, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("marshaling game %s: %w", game.ID, err)
	}

	var gameDate sql.NullTime
	if game.ParsedDate != nil {
		gameDate = sql.NullTime{Time: *game.ParsedDate, Valid: true}
	}

	query := `
		INSERT INTO games (file_id, filename, game_date, raw_date, venue, opponent,
			result, home_away, tracked_score, opponent_score, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (file_id) DO UPDATE SET
			filename = EXCLUDED.filename,
			game_date = EXCLUDED.game_date,
			raw_date = EXCLUDED.raw_date,
			venue = EXCLUDED.venue,
			opponent = EXCLUDED.opponent,
			result = EXCLUDED.result,
			home_away = EXCLUDED.home_away,
			tracked_score = EXCLUDED.tracked_score,
			opponent_score = EXCLUDED.opponent_score,
			payload = EXCLUDED.payload,
			updated_at = NOW()
	`
	_, err = r.db.DB().ExecContext(ctx, query,
		game.ID, game.Filename, gameDate, game.Date, game.Venue, game.Opponent,
		game.Outcome, game.HomeAway, game.TrackedScore, game.OppScore, payload,
	)
	if err != nil {
		return fmt.Errorf("upserting game %s: %w", game.ID, err)
	}

	return r.upsertPlayerLines(ctx, game)
}

func (r *GameRepository) upsertPlayerLines(ctx context.Context, game *model.Game) error {
	query := `
		INSERT INTO player_lines (file_id, player_name, position, jersey, is_tracked, stats, quarter_stats)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (file_id, player_name) DO UPDATE SET
			position = EXCLUDED.position,
			jersey = EXCLUDED.jersey,
			is_tracked = EXCLUDED.is_tracked,
			stats = EXCLUDED.stats,
			quarter_stats = EXCLUDED.quarter_stats
	`

	for _, line := range game.Players {
		stats, err := json.Marshal(line.Stats)
		if err != nil {
			return fmt.Errorf("marshaling stats for %s: %w", line.Name, err)
		}
		quarters, err := json.Marshal(line.QuarterStats)
		if err != nil {
			return fmt.Errorf("marshaling quarter stats for %s: %w", line.Name, err)
		}

		_, err = r.db.DB().ExecContext(ctx, query,
			game.ID, line.Name, line.Position, line.Jersey, line.Tracked, stats, quarters,
		)
		if err != nil {
			return fmt.Errorf("upserting line for %s in %s: %w", line.Name, game.ID, err)
		}
	}

	return nil
}

// GetByFileID loads one game's full canonical entity.
func (r *GameRepository) GetByFileID(ctx context.Context, fileID string) (*model.Game, error) {
	query := `SELECT payload FROM games WHERE file_id = $1`

	var payload []byte
	err := r.db.DB().QueryRowContext(ctx, query, fileID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %s", fileID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game %s: %w", fileID, err)
	}

	game := &model.Game{}
	if err := json.Unmarshal(payload, game); err != nil {
		return nil, fmt.Errorf("unmarshaling game %s: %w", fileID, err)
	}
	return game, nil
}

// ListAll loads every persisted game, ordered by filename for deterministic
// corpus reconstruction.
func (r *GameRepository) ListAll(ctx context.Context) ([]*model.Game, error) {
	query := `SELECT payload FROM games ORDER BY filename`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	defer rows.Close()

	var games []*model.Game
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning game payload: %w", err)
		}
		game := &model.Game{}
		if err := json.Unmarshal(payload, game); err != nil {
			return nil, fmt.Errorf("unmarshaling game payload: %w", err)
		}
		games = append(games, game)
	}

	return games, rows.Err()
}

// ListRecords returns the scalar game rows without payloads.
func (r *GameRepository) ListRecords(ctx context.Context) ([]*store.GameRecord, error) {
	query := `
		SELECT game_id, file_id, filename, game_date, raw_date, venue, opponent,
			result, home_away, tracked_score, opponent_score, created_at, updated_at
		FROM games
		ORDER BY filename
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing game records: %w", err)
	}
	defer rows.Close()

	var records []*store.GameRecord
	for rows.Next() {
		rec := &store.GameRecord{}
		err := rows.Scan(
			&rec.GameID, &rec.FileID, &rec.Filename, &rec.GameDate, &rec.RawDate,
			&rec.Venue, &rec.Opponent, &rec.Result, &rec.HomeAway,
			&rec.TrackedScore, &rec.OpponentScore, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning game record: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
