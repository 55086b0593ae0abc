package scheduler

import (
	"context"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mhower/cu-basketball-analytics/internal/ingest/jobs"
)

// Orchestrator watches the game-file directory and schedules periodic
// rescans. All actual work goes through the job queue so the watcher and the
// API share one execution path.
type Orchestrator struct {
	jobSvc *jobs.Service
	config *Config
	cancel context.CancelFunc
}

// Config holds scheduler configuration
type Config struct {
	DataDir        string        // Directory holding the game XML files
	RescanInterval time.Duration // Default: 6h
	DebounceDelay  time.Duration // Default: 2s
	EnableWatcher  bool          // Default: true
	EnableRescan   bool          // Default: true
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig(dataDir string) *Config {
	return &Config{
		DataDir:        dataDir,
		RescanInterval: 6 * time.Hour,
		DebounceDelay:  2 * time.Second,
		EnableWatcher:  true,
		EnableRescan:   true,
	}
}

// NewOrchestrator creates a new scheduler orchestrator
func NewOrchestrator(jobSvc *jobs.Service, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig(".")
	}
	return &Orchestrator{
		jobSvc: jobSvc,
		config: config,
	}
}

// Start begins all scheduled tasks and blocks until the context is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Printf("Scheduler started (dir: %s, rescan: %v)", o.config.DataDir, o.config.RescanInterval)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableWatcher {
		go o.runWatcher(ctx)
	}
	if o.config.EnableRescan {
		go o.runPeriodicRescan(ctx)
	}

	<-ctx.Done()
	log.Println("Scheduler stopping...")
}

// Stop gracefully stops the scheduler
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	log.Println("✓ Scheduler stopped")
}

// runWatcher enqueues file jobs when game files appear or change in the data
// directory. Events are debounced so an editor writing in chunks produces one
// job, not ten.
func (o *Orchestrator) runWatcher(ctx context.Context) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Failed to create file watcher: %v", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(o.config.DataDir); err != nil {
		log.Printf("Failed to watch %s: %v", o.config.DataDir, err)
		return
	}
	log.Printf("→ Watching %s for game files", o.config.DataDir)

	pending := map[string]struct{}{}
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			log.Println("→ File watcher stopped")
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".xml") {
				continue
			}

			pending[event.Name] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(o.config.DebounceDelay)
			} else {
				timer.Reset(o.config.DebounceDelay)
			}
			timerC = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)

		case <-timerC:
			files := make([]string, 0, len(pending))
			for name := range pending {
				files = append(files, name)
			}
			pending = map[string]struct{}{}
			timerC = nil

			if _, err := o.jobSvc.Enqueue(ctx, jobs.Request{Files: files}); err != nil {
				log.Printf("Failed to enqueue file job: %v", err)
				continue
			}
			log.Printf("✓ Enqueued ingest for %d changed files", len(files))
		}
	}
}

// runPeriodicRescan enqueues a full directory rescan on a fixed interval.
func (o *Orchestrator) runPeriodicRescan(ctx context.Context) {
	log.Printf("→ Periodic rescan started (interval: %v)", o.config.RescanInterval)

	ticker := time.NewTicker(o.config.RescanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Periodic rescan stopped")
			return
		case <-ticker.C:
			if _, err := o.jobSvc.Enqueue(ctx, jobs.Request{Directory: o.config.DataDir}); err != nil {
				log.Printf("Failed to enqueue rescan: %v", err)
				continue
			}
			log.Println("✓ Enqueued periodic rescan")
		}
	}
}

// GetStatus returns current scheduler status
func (o *Orchestrator) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"data_dir":        o.config.DataDir,
		"watcher_enabled": o.config.EnableWatcher,
		"rescan_enabled":  o.config.EnableRescan,
		"rescan_interval": o.config.RescanInterval.String(),
	}
}
