package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/mhower/cu-basketball-analytics/internal/model"
	"github.com/mhower/cu-basketball-analytics/internal/store"
)

// ProfileRepository persists full recomputation snapshots of the season
// outputs. Snapshots are append-only; the latest one is authoritative.
type ProfileRepository struct {
	db *store.Database
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *store.Database) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// SaveSnapshot stores one full recomputation result.
func (r *ProfileRepository) SaveSnapshot(ctx context.Context, gamesLoaded int, profiles []*model.PlayerProfile, advanced *model.AdvancedMetrics) error {
	profilesJSON, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("marshaling profiles: %w", err)
	}
	advancedJSON, err := json.Marshal(advanced)
	if err != nil {
		return fmt.Errorf("marshaling advanced metrics: %w", err)
	}

	query := `
		INSERT INTO profile_snapshots (games_loaded, profiles, advanced)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.DB().ExecContext(ctx, query, gamesLoaded, profilesJSON, advancedJSON); err != nil {
		return fmt.Errorf("inserting profile snapshot: %w", err)
	}
	return nil
}

// LatestSnapshot loads the most recent recomputation, or nil when none exists.
func (r *ProfileRepository) LatestSnapshot(ctx context.Context) ([]*model.PlayerProfile, *model.AdvancedMetrics, error) {
	query := `
		SELECT profiles, advanced
		FROM profile_snapshots
		ORDER BY snapshot_id DESC
		LIMIT 1
	`

	var profilesJSON, advancedJSON []byte
	err := r.db.DB().QueryRowContext(ctx, query).Scan(&profilesJSON, &advancedJSON)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("querying latest snapshot: %w", err)
	}

	var profiles []*model.PlayerProfile
	if err := json.Unmarshal(profilesJSON, &profiles); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling profiles: %w", err)
	}
	advanced := &model.AdvancedMetrics{}
	if err := json.Unmarshal(advancedJSON, advanced); err != nil {
		return nil, nil, fmt.Errorf("unmarshaling advanced metrics: %w", err)
	}

	return profiles, advanced, nil
}
