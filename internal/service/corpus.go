package service

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/mhower/cu-basketball-analytics/internal/cache"
	"github.com/mhower/cu-basketball-analytics/internal/ingest/gamefile"
	"github.com/mhower/cu-basketball-analytics/internal/metrics"
	"github.com/mhower/cu-basketball-analytics/internal/model"
	"github.com/mhower/cu-basketball-analytics/internal/publisher"
	"github.com/mhower/cu-basketball-analytics/internal/store/repository"
)

// Notifier receives change notifications after ingest and recompute. The
// websocket hub implements this.
type Notifier interface {
	NotifyGamesIngested(count int, failures int)
	NotifyProfilesRecomputed(gamesLoaded int)
}

// Deps bundles the optional infrastructure the corpus can use. Every field
// may be nil; the corpus then runs purely in memory.
type Deps struct {
	GameRepo    *repository.GameRepository
	ProfileRepo *repository.ProfileRepository
	Cache       *cache.RedisCache
	Publisher   *publisher.RedisPublisher
	Notifier    Notifier
}

// Corpus holds the full set of ingested games and the season outputs derived
// from them. Any change to the game set triggers a full recomputation of all
// profiles and advanced metrics; reads see either the old or the new state,
// never a mix.
type Corpus struct {
	mu       sync.RWMutex
	games    []*model.Game
	byID     map[string]*model.Game
	profiles []*model.PlayerProfile
	byName   map[string]*model.PlayerProfile
	advanced *model.AdvancedMetrics

	ingester *gamefile.Ingester
	deps     Deps
}

// NewCorpus creates an empty corpus.
func NewCorpus(ingester *gamefile.Ingester, deps Deps) *Corpus {
	return &Corpus{
		byID:     map[string]*model.Game{},
		byName:   map[string]*model.PlayerProfile{},
		advanced: &model.AdvancedMetrics{},
		ingester: ingester,
		deps:     deps,
	}
}

// LoadFromStore restores the corpus from persisted games on startup.
func (c *Corpus) LoadFromStore(ctx context.Context) error {
	if c.deps.GameRepo == nil {
		return nil
	}

	games, err := c.deps.GameRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	if len(games) == 0 {
		return nil
	}

	c.mu.Lock()
	c.mergeLocked(games)
	c.recomputeLocked()
	c.mu.Unlock()

	log.Printf("[corpus] ✓ Restored %d games from store", len(games))
	c.afterRecompute(ctx, len(games), 0)
	return nil
}

// IngestDirectory parses every game file in dir and folds the results into
// the corpus.
func (c *Corpus) IngestDirectory(ctx context.Context, dir string) (*gamefile.Result, error) {
	result, err := c.ingester.IngestDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	return result, c.absorb(ctx, result)
}

// IngestFiles parses the given files and folds the results into the corpus.
func (c *Corpus) IngestFiles(ctx context.Context, paths []string) (*gamefile.Result, error) {
	result, err := c.ingester.IngestFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	return result, c.absorb(ctx, result)
}

func (c *Corpus) absorb(ctx context.Context, result *gamefile.Result) error {
	if len(result.Games) == 0 {
		return nil
	}

	if c.deps.GameRepo != nil {
		for _, game := range result.Games {
			if err := c.deps.GameRepo.Upsert(ctx, game); err != nil {
				log.Printf("[corpus] Failed to persist game %s: %v", game.ID, err)
			}
		}
	}

	c.mu.Lock()
	c.mergeLocked(result.Games)
	c.recomputeLocked()
	total := len(c.games)
	c.mu.Unlock()

	log.Printf("[corpus] ✓ Corpus now holds %d games, recomputed %d profiles", total, len(c.Profiles()))

	if c.deps.Publisher != nil {
		for _, game := range result.Games {
			payload := map[string]any{
				"file_id":  game.ID,
				"filename": game.Filename,
				"opponent": game.Opponent,
				"result":   game.Outcome,
			}
			if err := c.deps.Publisher.PublishGameIngested(ctx, payload); err != nil {
				log.Printf("[corpus] Failed to publish ingest event: %v", err)
			}
		}
	}
	if c.deps.Notifier != nil {
		c.deps.Notifier.NotifyGamesIngested(len(result.Games), len(result.Failures))
	}

	c.afterRecompute(ctx, total, len(result.Failures))
	return nil
}

// mergeLocked replaces games with the same file ID and keeps the collection
// sorted by filename. Caller holds the write lock.
func (c *Corpus) mergeLocked(incoming []*model.Game) {
	for _, game := range incoming {
		if _, exists := c.byID[game.ID]; !exists {
			c.games = append(c.games, game)
		} else {
			for i, existing := range c.games {
				if existing.ID == game.ID {
					c.games[i] = game
					break
				}
			}
		}
		c.byID[game.ID] = game
	}

	sort.Slice(c.games, func(i, j int) bool {
		return c.games[i].Filename < c.games[j].Filename
	})
}

// recomputeLocked rebuilds every season output from scratch. Caller holds the
// write lock.
func (c *Corpus) recomputeLocked() {
	c.profiles = metrics.ComputePlayerProfiles(c.games)
	c.advanced = metrics.ComputeAdvancedMetrics(c.games)

	c.byName = make(map[string]*model.PlayerProfile, len(c.profiles))
	for _, profile := range c.profiles {
		c.byName[profile.Name] = profile
	}
}

// afterRecompute pushes the fresh outputs to the snapshot store and cache.
func (c *Corpus) afterRecompute(ctx context.Context, gamesLoaded, failures int) {
	profiles := c.Profiles()
	advanced := c.Advanced()

	if c.deps.ProfileRepo != nil {
		if err := c.deps.ProfileRepo.SaveSnapshot(ctx, gamesLoaded, profiles, advanced); err != nil {
			log.Printf("[corpus] Failed to save profile snapshot: %v", err)
		}
	}
	if c.deps.Cache != nil {
		if err := c.deps.Cache.SetJSON(ctx, cache.KeyProfiles, profiles, cache.DefaultTTL); err != nil {
			log.Printf("[corpus] Failed to cache profiles: %v", err)
		}
		if err := c.deps.Cache.SetJSON(ctx, cache.KeyAdvanced, advanced, cache.DefaultTTL); err != nil {
			log.Printf("[corpus] Failed to cache advanced metrics: %v", err)
		}
	}
	if c.deps.Publisher != nil {
		payload := map[string]any{
			"games_loaded": gamesLoaded,
			"failures":     failures,
			"profiles":     len(profiles),
			"computed_at":  time.Now().UTC(),
		}
		if err := c.deps.Publisher.PublishProfilesRecomputed(ctx, payload); err != nil {
			log.Printf("[corpus] Failed to publish recompute event: %v", err)
		}
	}
	if c.deps.Notifier != nil {
		c.deps.Notifier.NotifyProfilesRecomputed(gamesLoaded)
	}
}

// ExecuteRescan implements the ingest job executor for directory rescans.
func (c *Corpus) ExecuteRescan(ctx context.Context, dir string, progress func(current, total int, message string)) error {
	progress(0, 0, "Scanning "+dir)
	result, err := c.IngestDirectory(ctx, dir)
	if err != nil {
		return err
	}
	total := len(result.Games) + len(result.Failures)
	progress(total, total, "Rescan complete")
	return nil
}

// ExecuteFiles implements the ingest job executor for explicit file lists.
func (c *Corpus) ExecuteFiles(ctx context.Context, files []string, progress func(current, total int, message string)) error {
	progress(0, len(files), "Parsing files")
	if _, err := c.IngestFiles(ctx, files); err != nil {
		return err
	}
	progress(len(files), len(files), "Ingest complete")
	return nil
}

// Games returns the current game collection, sorted by filename.
func (c *Corpus) Games() []*model.Game {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*model.Game(nil), c.games...)
}

// Game returns one game by file ID.
func (c *Corpus) Game(fileID string) (*model.Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	game, ok := c.byID[fileID]
	return game, ok
}

// Profiles returns the current player profiles, sorted by name.
func (c *Corpus) Profiles() []*model.PlayerProfile {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*model.PlayerProfile(nil), c.profiles...)
}

// Profile returns one player profile by canonical name.
func (c *Corpus) Profile(name string) (*model.PlayerProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	profile, ok := c.byName[name]
	return profile, ok
}

// Advanced returns the current season-level advanced metrics.
func (c *Corpus) Advanced() *model.AdvancedMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.advanced
}

// GamesLoaded returns the current corpus size.
func (c *Corpus) GamesLoaded() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.games)
}
