package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhower/cu-basketball-analytics/internal/model"
)

func scored(h, v int) model.Event {
	return model.Event{HomeScore: h, AwayScore: v, Clock: "05:00", Period: "2"}
}

func TestDetectSwingsSingleJump(t *testing.T) {
	events := []model.Event{
		scored(0, 0),
		scored(4, 0),
		scored(14, 0),
	}

	swings := DetectSwings(events)
	require.Len(t, swings, 1)
	require.Equal(t, 10, swings[0].Swing)
	require.Equal(t, "2", swings[0].Period)
}

func TestDetectSwingsNegativeDirection(t *testing.T) {
	events := []model.Event{
		scored(10, 0),
		scored(10, 11),
	}

	swings := DetectSwings(events)
	require.Len(t, swings, 1)
	require.Equal(t, 11, swings[0].Swing)
}

func TestDetectSwingsGradualChangesIgnored(t *testing.T) {
	events := []model.Event{
		scored(2, 0),
		scored(4, 0),
		scored(6, 0),
		scored(8, 0),
		scored(10, 0),
		scored(12, 0),
	}

	require.Empty(t, DetectSwings(events))
}

func TestDetectSwingsFirstEventCountsFromZero(t *testing.T) {
	// The differential starts at zero, so a log opening mid-game with a
	// lopsided score registers as a swing.
	swings := DetectSwings([]model.Event{scored(12, 0)})
	require.Len(t, swings, 1)
	require.Equal(t, 12, swings[0].Swing)
}
