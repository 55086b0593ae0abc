package jobs

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

// JobType enumerates the supported ingest job variants.
type JobType string

const (
	// JobTypeRescan re-parses every game file in the configured data directory.
	JobTypeRescan JobType = "rescan"
	// JobTypeFiles parses an explicit list of game files.
	JobTypeFiles JobType = "files"
)

// JobStatus represents the lifecycle state for a job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Job models the database representation of an ingest job.
type Job struct {
	JobID           string         `json:"job_id"`
	JobType         JobType        `json:"job_type"`
	Directory       string         `json:"directory,omitempty"`
	Files           pq.StringArray `json:"files,omitempty"`
	Status          JobStatus      `json:"status"`
	StatusMessage   sql.NullString `json:"-"`
	ProgressCurrent int            `json:"progress_current"`
	ProgressTotal   int            `json:"progress_total"`
	LastError       sql.NullString `json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	StartedAt       sql.NullTime   `json:"-"`
	CompletedAt     sql.NullTime   `json:"-"`
}

// Copy returns a shallow copy to prevent external mutation.
func (j *Job) Copy() *Job {
	if j == nil {
		return nil
	}
	cpy := *j
	return &cpy
}

// StatusSummary is returned to API callers.
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	History   []*Job `json:"recent_jobs,omitempty"`
}
