package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Database wraps the PostgreSQL connection holding the ingested game corpus
// and computed season snapshots.
type Database struct {
	conn *sql.DB
	dsn  string
}

// NewDatabase opens a connection and verifies it.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	db.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Database{conn: db, dsn: dsn}, nil
}

// Close closes the database connection.
func (db *Database) Close() error {
	if db.conn != nil {
		return db.conn.Close()
	}
	return nil
}

// DB returns the underlying *sql.DB for queries.
func (db *Database) DB() *sql.DB {
	return db.conn
}

// HealthCheck pings the database with a short timeout.
func (db *Database) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return db.conn.PingContext(ctx)
}

// migration pairs a version label with its DDL. Migrations are embedded so
// the binary is self-contained.
type migration struct {
	version string
	ddl     string
}

var migrations = []migration{
	{
		version: "001_create_games",
		ddl: `
			CREATE TABLE IF NOT EXISTS games (
				game_id        SERIAL PRIMARY KEY,
				file_id        VARCHAR(255) NOT NULL UNIQUE,
				filename       VARCHAR(255) NOT NULL,
				game_date      DATE,
				raw_date       VARCHAR(64) NOT NULL DEFAULT '',
				venue          VARCHAR(255) NOT NULL DEFAULT '',
				opponent       VARCHAR(255) NOT NULL DEFAULT '',
				result         VARCHAR(4) NOT NULL,
				home_away      VARCHAR(8) NOT NULL,
				tracked_score  INT NOT NULL DEFAULT 0,
				opponent_score INT NOT NULL DEFAULT 0,
				payload        JSONB NOT NULL,
				created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		version: "002_create_player_lines",
		ddl: `
			CREATE TABLE IF NOT EXISTS player_lines (
				id            SERIAL PRIMARY KEY,
				file_id       VARCHAR(255) NOT NULL REFERENCES games(file_id) ON DELETE CASCADE,
				player_name   VARCHAR(255) NOT NULL,
				position      VARCHAR(8) NOT NULL DEFAULT 'F',
				jersey        VARCHAR(8) NOT NULL DEFAULT '',
				is_tracked    BOOLEAN NOT NULL DEFAULT FALSE,
				stats         JSONB NOT NULL,
				quarter_stats JSONB NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				UNIQUE (file_id, player_name)
			)
		`,
	},
	{
		version: "003_create_profile_snapshots",
		ddl: `
			CREATE TABLE IF NOT EXISTS profile_snapshots (
				snapshot_id  SERIAL PRIMARY KEY,
				games_loaded INT NOT NULL,
				profiles     JSONB NOT NULL,
				advanced     JSONB NOT NULL,
				computed_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)
		`,
	},
	{
		version: "004_create_ingest_jobs",
		ddl: `
			CREATE TABLE IF NOT EXISTS ingest_jobs (
				job_id           VARCHAR(64) PRIMARY KEY,
				job_type         VARCHAR(32) NOT NULL,
				directory        VARCHAR(1024) NOT NULL DEFAULT '',
				files            TEXT[] NOT NULL DEFAULT '{}',
				status           VARCHAR(32) NOT NULL,
				status_message   TEXT,
				progress_current INT NOT NULL DEFAULT 0,
				progress_total   INT NOT NULL DEFAULT 0,
				last_error       TEXT,
				created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				started_at       TIMESTAMPTZ,
				completed_at     TIMESTAMPTZ
			)
		`,
	},
	{
		version: "005_index_player_lines",
		ddl: `
			CREATE INDEX IF NOT EXISTS idx_player_lines_name
				ON player_lines (player_name) WHERE is_tracked
		`,
	},
}

// RunMigrations applies all pending migrations in order, tracking applied
// versions in schema_migrations.
func (db *Database) RunMigrations() error {
	log.Println("Running database migrations...")

	if err := db.createMigrationsTable(); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, m := range migrations {
		if err := db.runMigration(m); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", m.version, err)
		}
	}

	log.Println("✓ All migrations completed successfully")
	return nil
}

func (db *Database) createMigrationsTable() error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.conn.Exec(query)
	return err
}

func (db *Database) runMigration(m migration) error {
	var exists bool
	err := db.conn.QueryRow("SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)", m.version).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(m.ddl); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", m.version); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	log.Printf("  ✓ Applied %s", m.version)
	return nil
}
