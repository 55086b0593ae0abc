package gamefile

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mhower/cu-basketball-analytics/internal/analyzer"
	"github.com/mhower/cu-basketball-analytics/internal/model"
)

const defaultParseWorkers = 8

// Failure records one file that could not be ingested. A bad file never
// aborts the batch.
type Failure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// Result holds the outcome of one batch ingest, games sorted by filename.
type Result struct {
	Games    []*model.Game `json:"games"`
	Failures []Failure     `json:"failures"`
}

// Ingester scans directories of game documents and parses them in parallel.
type Ingester struct {
	parser  *Parser
	workers int
}

// NewIngester creates an ingester with the default worker count.
func NewIngester(parser *Parser) *Ingester {
	return &Ingester{
		parser:  parser,
		workers: defaultParseWorkers,
	}
}

// IngestDirectory parses every .xml file in dir. Files that fail to parse are
// collected as failures and skipped.
func (in *Ingester) IngestDirectory(ctx context.Context, dir string) (*Result, error) {
	files, err := listGameFiles(dir)
	if err != nil {
		return nil, err
	}

	log.Printf("[ingest] Found %d game files in %s", len(files), dir)
	return in.IngestFiles(ctx, files)
}

// IngestFiles parses the given paths in parallel, preserving filename order in
// the result.
func (in *Ingester) IngestFiles(ctx context.Context, paths []string) (*Result, error) {
	result := &Result{}
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(in.workers)

	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			game, err := in.ingestOne(path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("[ingest] ✗ %s: %v", filepath.Base(path), err)
				result.Failures = append(result.Failures, Failure{
					Filename: filepath.Base(path),
					Reason:   err.Error(),
				})
				return nil
			}
			result.Games = append(result.Games, game)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Games, func(i, j int) bool {
		return result.Games[i].Filename < result.Games[j].Filename
	})
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Filename < result.Failures[j].Filename
	})

	log.Printf("[ingest] ✓ Parsed %d games (%d failures)", len(result.Games), len(result.Failures))
	return result, nil
}

func (in *Ingester) ingestOne(path string) (*model.Game, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	game, err := in.parser.Parse(content, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	analyzer.Annotate(game)
	return game, nil
}

// listGameFiles returns the .xml paths in dir sorted by filename.
func listGameFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".xml") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	sort.Strings(files)
	return files, nil
}
