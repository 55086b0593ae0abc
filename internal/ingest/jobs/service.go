package jobs

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mhower/cu-basketball-analytics/internal/store"
)

// Request represents an ingest invocation request.
type Request struct {
	Directory string
	Files     []string
}

// DeriveType infers the job type based on populated fields.
func (r Request) DeriveType() (JobType, error) {
	if len(r.Files) > 0 {
		return JobTypeFiles, nil
	}
	if r.Directory != "" {
		return JobTypeRescan, nil
	}
	return "", fmt.Errorf("unable to determine job type from request")
}

// Executor performs the actual ingest work for a claimed job. Progress is
// reported back through the callback.
type Executor interface {
	ExecuteRescan(ctx context.Context, dir string, progress func(current, total int, message string)) error
	ExecuteFiles(ctx context.Context, files []string, progress func(current, total int, message string)) error
}

// Service coordinates job persistence, execution, and status reporting.
type Service struct {
	repo     *Repository
	executor Executor

	historyLimit int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

// NewService constructs a Service. Call Start to launch the worker.
func NewService(db *store.Database, executor Executor, logger *log.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	if logger == nil {
		logger = log.New(log.Writer(), "[ingest-jobs] ", log.LstdFlags)
	}

	return &Service{
		repo:         NewRepository(db),
		executor:     executor,
		historyLimit: 10,
		ctx:          ctx,
		cancel:       cancel,
		logger:       logger,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	if err := s.repo.ResetStuckJobs(s.ctx); err != nil {
		s.logger.Printf("failed to reset jobs: %v", err)
	}

	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for completion.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue creates a new job from the provided request.
func (s *Service) Enqueue(ctx context.Context, req Request) (*Job, error) {
	jobType, err := req.DeriveType()
	if err != nil {
		return nil, err
	}

	job := &Job{
		JobID:         uuid.NewString(),
		JobType:       jobType,
		Directory:     req.Directory,
		Files:         req.Files,
		Status:        JobStatusQueued,
		StatusMessage: sql.NullString{String: "Queued", Valid: true},
	}
	if jobType == JobTypeFiles {
		job.ProgressTotal = len(req.Files)
	}

	return s.repo.CreateJob(ctx, job)
}

// GetStatus returns the currently running job plus recent history.
func (s *Service) GetStatus(ctx context.Context) (*StatusSummary, error) {
	active, err := s.repo.GetActiveJob(ctx)
	if err != nil {
		return nil, err
	}

	history, err := s.repo.ListRecentJobs(ctx, s.historyLimit)
	if err != nil {
		return nil, err
	}

	return &StatusSummary{
		ActiveJob: active,
		History:   history,
	}, nil
}

func (s *Service) worker() {
	defer s.wg.Done()

	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
			job, err := s.repo.MarkNextJobRunning(s.ctx)
			if err != nil {
				s.logger.Printf("claim job error: %v", err)
				time.Sleep(time.Second)
				continue
			}
			if job == nil {
				select {
				case <-s.ctx.Done():
					return
				case <-ticker.C:
					continue
				}
			}

			s.executeJob(job)
		}
	}
}

func (s *Service) executeJob(job *Job) {
	progress := func(current, total int, message string) {
		_ = s.repo.UpdateProgress(s.ctx, job.JobID, current, total, message)
	}

	var err error
	switch job.JobType {
	case JobTypeRescan:
		err = s.executor.ExecuteRescan(s.ctx, job.Directory, progress)
	case JobTypeFiles:
		err = s.executor.ExecuteFiles(s.ctx, job.Files, progress)
	default:
		err = fmt.Errorf("unknown job type %s", job.JobType)
	}

	if err != nil {
		s.logger.Printf("job %s failed: %v", job.JobID, err)
		_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusFailed, "Job failed", err)
		return
	}

	_ = s.repo.UpdateStatus(s.ctx, job.JobID, JobStatusCompleted, "Job completed", nil)
}
