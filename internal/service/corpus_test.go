package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhower/cu-basketball-analytics/internal/ingest/gamefile"
)

const corpusGameDoc = `<bbgame>
  <venue date="01/15/2024" location="Events Center"></venue>
  <team vh="H" name="Colorado">
    <linescore score="70"></linescore>
    <player name="Sanders, Kennedy" pos="G">
      <stats tp="21" treb="4" ast="5" min="32" fgm="8" fga="15"></stats>
    </player>
  </team>
  <team vh="V" name="Utah"><linescore score="60"></linescore></team>
</bbgame>`

func newTestCorpus(t *testing.T) (*Corpus, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game01.xml"), []byte(corpusGameDoc), 0o644))

	ingester := gamefile.NewIngester(gamefile.NewParser(gamefile.NewResolver(nil)))
	return NewCorpus(ingester, Deps{}), dir
}

func TestCorpusIngestDirectoryRecomputes(t *testing.T) {
	corpus, dir := newTestCorpus(t)

	result, err := corpus.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, result.Games, 1)
	require.Empty(t, result.Failures)

	require.Equal(t, 1, corpus.GamesLoaded())

	game, ok := corpus.Game("game01")
	require.True(t, ok)
	require.Equal(t, "Utah", game.Opponent)

	profile, ok := corpus.Profile("Kennedy Sanders")
	require.True(t, ok)
	require.Equal(t, 1, profile.GamesPlayed)
	require.InDelta(t, 21.0, profile.Metrics["PPG"].(float64), 1e-9)

	require.NotNil(t, corpus.Advanced())
}

func TestCorpusReingestReplacesGame(t *testing.T) {
	corpus, dir := newTestCorpus(t)
	ctx := context.Background()

	_, err := corpus.IngestDirectory(ctx, dir)
	require.NoError(t, err)

	// Re-ingesting the same file must replace, not duplicate.
	_, err = corpus.IngestDirectory(ctx, dir)
	require.NoError(t, err)
	require.Equal(t, 1, corpus.GamesLoaded())
	require.Len(t, corpus.Profiles(), 1)
}

func TestCorpusGamesSortedByFilename(t *testing.T) {
	corpus, dir := newTestCorpus(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aaa.xml"), []byte(corpusGameDoc), 0o644))

	_, err := corpus.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	games := corpus.Games()
	require.Len(t, games, 2)
	require.Equal(t, "aaa.xml", games[0].Filename)
	require.Equal(t, "game01.xml", games[1].Filename)
}

func TestGameServiceViews(t *testing.T) {
	corpus, dir := newTestCorpus(t)
	_, err := corpus.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	games := NewGameService(corpus)

	summaries := games.ListGames()
	require.Len(t, summaries, 1)
	require.Equal(t, "W", summaries[0].Result)
	require.Equal(t, 70, summaries[0].TrackedScore)

	_, err = games.GetGame("missing")
	require.Error(t, err)

	runs, err := games.GetRuns("game01")
	require.NoError(t, err)
	require.Empty(t, runs)
}

func TestPlayerServiceViews(t *testing.T) {
	corpus, dir := newTestCorpus(t)
	_, err := corpus.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	players := NewPlayerService(corpus)

	summaries := players.ListPlayers()
	require.Len(t, summaries, 1)
	require.Equal(t, "Kennedy Sanders", summaries[0].Name)
	require.InDelta(t, 21.0, summaries[0].PPG, 1e-9)

	_, err = players.GetPlayer("Nobody Here")
	require.Error(t, err)
}

func TestAnalyticsOverview(t *testing.T) {
	corpus, dir := newTestCorpus(t)
	_, err := corpus.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	analytics := NewAnalyticsService(corpus, nil, nil)
	overview := analytics.GetOverview()
	require.Equal(t, 1, overview.GamesLoaded)
	require.Equal(t, 1, overview.Players)
	require.Equal(t, 1, overview.Wins)
	require.Zero(t, overview.Losses)
}
