package gamefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validGameDoc = `<bbgame>
  <team vh="H" name="Colorado"><linescore score="70"></linescore></team>
  <team vh="V" name="Utah"><linescore score="60"></linescore></team>
</bbgame>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIngestDirectorySkipsBadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b_good.xml", validGameDoc)
	writeFile(t, dir, "a_bad.xml", "this is not a game document at all")
	writeFile(t, dir, "notes.txt", "ignored entirely")

	ingester := NewIngester(NewParser(nil))
	result, err := ingester.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Games, 1)
	require.Equal(t, "b_good.xml", result.Games[0].Filename)
	require.Equal(t, "W", result.Games[0].Outcome)

	require.Len(t, result.Failures, 1)
	require.Equal(t, "a_bad.xml", result.Failures[0].Filename)
	require.Contains(t, result.Failures[0].Reason, "malformed game document")
}

func TestIngestDirectoryOrdering(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "game3.xml", validGameDoc)
	writeFile(t, dir, "game1.xml", validGameDoc)
	writeFile(t, dir, "game2.xml", validGameDoc)

	ingester := NewIngester(NewParser(nil))
	result, err := ingester.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Games, 3)
	require.Equal(t, "game1.xml", result.Games[0].Filename)
	require.Equal(t, "game2.xml", result.Games[1].Filename)
	require.Equal(t, "game3.xml", result.Games[2].Filename)
}

func TestIngestMissingDirectory(t *testing.T) {
	ingester := NewIngester(NewParser(nil))
	_, err := ingester.IngestDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestIngestFilesAnnotatesLineups(t *testing.T) {
	doc := `<bbgame>
  <team vh="H" name="Colorado">
    <linescore score="70"></linescore>
    <player name="A Ax" gs="1"><stats gs="1" tp="10"></stats></player>
    <player name="B Bx" gs="1"><stats gs="1" tp="10"></stats></player>
    <player name="C Cx" gs="1"><stats gs="1" tp="10"></stats></player>
    <player name="D Dx" gs="1"><stats gs="1" tp="10"></stats></player>
    <player name="E Ex" gs="1"><stats gs="1" tp="10"></stats></player>
    <player name="F Fx"><stats tp="20"></stats></player>
  </team>
  <team vh="V" name="Utah"><linescore score="60"></linescore></team>
  <plays>
    <period number="1">
      <play vh="H" time="05:00" action="SUB" type="OUT" checkname="Ax, A" hscore="10" vscore="8"></play>
      <play vh="H" time="05:00" action="SUB" type="IN" checkname="Fx, F" hscore="10" vscore="8"></play>
    </period>
  </plays>
</bbgame>`

	dir := t.TempDir()
	path := writeFile(t, dir, "subs.xml", doc)

	ingester := NewIngester(NewParser(nil))
	result, err := ingester.IngestFiles(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, result.Games, 1)

	lineups := result.Games[0].Lineups
	require.NotEmpty(t, lineups)
	for _, lineup := range lineups {
		require.Len(t, lineup.Players, 5)
	}
	require.Equal(t, []string{"B Bx", "C Cx", "D Dx", "E Ex", "F Fx"}, lineups[len(lineups)-1].Players)
}
