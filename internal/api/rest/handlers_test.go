package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/mhower/cu-basketball-analytics/internal/ingest/gamefile"
	"github.com/mhower/cu-basketball-analytics/internal/service"
)

const testGameDoc = `<bbgame>
  <team vh="H" name="Colorado">
    <linescore score="70"></linescore>
    <player name="Sanders, Kennedy" pos="G">
      <stats tp="21" min="32" fgm="8" fga="15"></stats>
    </player>
  </team>
  <team vh="V" name="Utah"><linescore score="60"></linescore></team>
</bbgame>`

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game01.xml"), []byte(testGameDoc), 0o644))

	ingester := gamefile.NewIngester(gamefile.NewParser(gamefile.NewResolver(nil)))
	corpus := service.NewCorpus(ingester, service.Deps{})
	_, err := corpus.IngestDirectory(context.Background(), dir)
	require.NoError(t, err)

	return NewHandler(corpus, service.NewAnalyticsService(corpus, nil, nil))
}

func TestHealthCheck(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, 1.0, body["games_loaded"])
}

func TestGetGame(t *testing.T) {
	handler := newTestHandler(t)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/games/game01", nil),
		map[string]string{"fileID": "game01"})
	rec := httptest.NewRecorder()
	handler.GetGame(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Utah", body["opponent"])
	require.Equal(t, "W", body["result"])
}

func TestGetGameNotFound(t *testing.T) {
	handler := newTestHandler(t)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/games/nope", nil),
		map[string]string{"fileID": "nope"})
	rec := httptest.NewRecorder()
	handler.GetGame(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPlayers(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.ListPlayers(rec, httptest.NewRequest(http.MethodGet, "/api/v1/players", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Players []struct {
			Name string  `json:"name"`
			PPG  float64 `json:"ppg"`
		} `json:"players"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Players, 1)
	require.Equal(t, "Kennedy Sanders", body.Players[0].Name)
	require.InDelta(t, 21.0, body.Players[0].PPG, 1e-9)
}

func TestGetAdvanced(t *testing.T) {
	handler := newTestHandler(t)

	rec := httptest.NewRecorder()
	handler.GetAdvanced(rec, httptest.NewRequest(http.MethodGet, "/api/v1/advanced", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Contains(t, body, "momentum_runs")
}
