package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"text/tabwriter"

	flag "github.com/spf13/pflag"

	"github.com/mhower/cu-basketball-analytics/internal/ingest/gamefile"
	"github.com/mhower/cu-basketball-analytics/internal/metrics"
	"github.com/mhower/cu-basketball-analytics/internal/model"
	"github.com/mhower/cu-basketball-analytics/internal/store"
	"github.com/mhower/cu-basketball-analytics/internal/store/repository"
)

func main() {
	var (
		dir       = flag.StringP("dir", "d", "data", "directory of game XML files")
		dsn       = flag.String("dsn", "", "Postgres DSN; omit to skip persistence")
		dryRun    = flag.Bool("dry-run", false, "parse and report without writing to the database")
		spellings = flag.StringSlice("team", nil, "tracked team spellings (default: Colorado aliases)")
		top       = flag.IntP("top", "n", 10, "number of players to show in the summary")
	)
	flag.Parse()

	ctx := context.Background()

	resolver := gamefile.NewResolver(*spellings)
	ingester := gamefile.NewIngester(gamefile.NewParser(resolver))

	result, err := ingester.IngestDirectory(ctx, *dir)
	if err != nil {
		log.Fatalf("Ingest failed: %v", err)
	}

	if *dsn != "" && !*dryRun {
		persist(ctx, *dsn, result)
	}

	printSummary(result, *top)

	if len(result.Failures) > 0 && len(result.Games) == 0 {
		os.Exit(1)
	}
}

func persist(ctx context.Context, dsn string, result *gamefile.Result) {
	db, err := store.NewDatabase(dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	gameRepo := repository.NewGameRepository(db)
	for _, game := range result.Games {
		if err := gameRepo.Upsert(ctx, game); err != nil {
			log.Fatalf("Failed to persist game %s: %v", game.ID, err)
		}
	}
	log.Printf("✓ Persisted %d games", len(result.Games))

	profiles := metrics.ComputePlayerProfiles(result.Games)
	advanced := metrics.ComputeAdvancedMetrics(result.Games)
	profileRepo := repository.NewProfileRepository(db)
	if err := profileRepo.SaveSnapshot(ctx, len(result.Games), profiles, advanced); err != nil {
		log.Fatalf("Failed to save profile snapshot: %v", err)
	}
	log.Println("✓ Saved profile snapshot")
}

func printSummary(result *gamefile.Result, top int) {
	fmt.Println()
	fmt.Printf("Parsed %d games, %d failures\n\n", len(result.Games), len(result.Failures))

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "GAME\tDATE\tOPPONENT\tRESULT\tSCORE")
	for _, game := range result.Games {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d-%d\n",
			game.Filename, game.Date, game.Opponent, game.Outcome,
			game.TrackedScore, game.OppScore)
	}
	w.Flush()

	if len(result.Failures) > 0 {
		fmt.Println()
		fmt.Fprintln(w, "FAILED FILE\tREASON")
		for _, failure := range result.Failures {
			fmt.Fprintf(w, "%s\t%s\n", failure.Filename, failure.Reason)
		}
		w.Flush()
	}

	profiles := metrics.ComputePlayerProfiles(result.Games)
	sort.SliceStable(profiles, func(i, j int) bool {
		return metricValue(profiles[i], "PPG") > metricValue(profiles[j], "PPG")
	})
	if len(profiles) > top {
		profiles = profiles[:top]
	}

	fmt.Println()
	fmt.Fprintln(w, "PLAYER\tGP\tPPG\tRPG\tAPG\tFG%")
	for _, profile := range profiles {
		fmt.Fprintf(w, "%s\t%d\t%.1f\t%.1f\t%.1f\t%.1f%%\n",
			profile.Name, profile.GamesPlayed,
			metricValue(profile, "PPG"), metricValue(profile, "RPG"),
			metricValue(profile, "APG"), metricValue(profile, "FG%")*100)
	}
	w.Flush()
}

func metricValue(profile *model.PlayerProfile, key string) float64 {
	if v, ok := profile.Metrics[key].(float64); ok {
		return v
	}
	return 0
}
