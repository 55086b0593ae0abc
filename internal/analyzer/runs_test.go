package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhower/cu-basketball-analytics/internal/model"
)

func made(side, subType string) model.Event {
	return model.Event{Side: side, Action: "GOOD", Type: subType}
}

func missed(side string) model.Event {
	return model.Event{Side: side, Action: "MISS", Type: "JUMPER"}
}

func TestDetectRunsFiveConsecutiveBaskets(t *testing.T) {
	events := []model.Event{
		made("H", "LAYUP"),
		made("H", "JUMPER"),
		made("H", "LAYUP"),
		made("H", "JUMPER"),
		made("H", "LAYUP"),
	}

	runs := DetectRuns(events)
	require.Len(t, runs, 1)
	require.Equal(t, "H", runs[0].Side)
	require.Equal(t, 10, runs[0].Points)
	require.Equal(t, 0, runs[0].Start)
	require.Equal(t, 4, runs[0].End)
}

func TestDetectRunsBelowThresholdIgnored(t *testing.T) {
	events := []model.Event{
		made("H", "LAYUP"),
		made("H", "JUMPER"),
		made("V", "LAYUP"),
		made("V", "JUMPER"),
	}

	require.Empty(t, DetectRuns(events))
}

func TestDetectRunsClosedByOpponentBasket(t *testing.T) {
	events := []model.Event{
		made("H", "3PTR"),
		made("H", "3PTR"),
		made("V", "LAYUP"),
		made("V", "LAYUP"),
		made("V", "JUMPER"),
	}

	runs := DetectRuns(events)
	require.Len(t, runs, 2)
	require.Equal(t, "H", runs[0].Side)
	require.Equal(t, 6, runs[0].Points)
	require.Equal(t, "V", runs[1].Side)
	require.Equal(t, 6, runs[1].Points)
}

func TestDetectRunsMissesDoNotBreakStreak(t *testing.T) {
	events := []model.Event{
		made("H", "LAYUP"),
		missed("V"),
		made("H", "3PTR"),
		missed("V"),
		made("H", "FT"),
	}

	runs := DetectRuns(events)
	require.Len(t, runs, 1)
	require.Equal(t, 6, runs[0].Points)
}

func TestDetectRunsPointInference(t *testing.T) {
	require.Equal(t, 3, pointsForEvent(made("H", "3PTR")))
	require.Equal(t, 3, pointsForEvent(made("H", "3PT JUMPER")))
	require.Equal(t, 1, pointsForEvent(made("H", "FT")))
	require.Equal(t, 1, pointsForEvent(model.Event{Side: "H", Action: "FREE THROW MADE"}))
	require.Equal(t, 2, pointsForEvent(made("H", "LAYUP")))
	require.Equal(t, 2, pointsForEvent(made("H", "")))
}

func TestDetectRunsEmptyLog(t *testing.T) {
	require.Empty(t, DetectRuns(nil))
}
