package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatLineNum(t *testing.T) {
	stats := StatLine{"tp": 12, "min": 31.5, "note": "DNP"}

	require.Equal(t, 12.0, stats.Num("tp"))
	require.Equal(t, 31.5, stats.Num("min"))
	require.Zero(t, stats.Num("note"), "text values read as zero")
	require.Zero(t, stats.Num("absent"))
}

func TestStatLineAddFrom(t *testing.T) {
	totals := StatLine{"tp": 10}
	totals.AddFrom(StatLine{"tp": 5, "treb": 3, "note": "DNP"})

	require.Equal(t, 15.0, totals.Num("tp"))
	require.Equal(t, 3.0, totals.Num("treb"))
	require.False(t, totals.Has("note"), "non-numeric values are not accumulated")
}

func TestTrackedLines(t *testing.T) {
	game := &Game{
		Players: map[string]*PlayerGameLine{
			"A": {Name: "A", Tracked: true},
			"B": {Name: "B", Tracked: false},
			"C": {Name: "C", Tracked: true},
		},
	}

	tracked := game.TrackedLines()
	require.Len(t, tracked, 2)
	for _, line := range tracked {
		require.True(t, line.Tracked)
	}
}
