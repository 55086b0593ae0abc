package analyzer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mhower/cu-basketball-analytics/internal/model"
)

func starterLine(name string) *model.PlayerGameLine {
	return &model.PlayerGameLine{
		Name:    name,
		TeamID:  "H",
		Tracked: true,
		Stats:   model.StatLine{"gs": 1},
	}
}

func benchLine(name string) *model.PlayerGameLine {
	return &model.PlayerGameLine{
		Name:    name,
		TeamID:  "H",
		Tracked: true,
		Stats:   model.StatLine{},
	}
}

func subEvent(side, subType, player string, seq int) model.Event {
	return model.Event{
		Seq:    seq,
		Period: "1",
		Clock:  "05:00",
		Side:   side,
		Player: player,
		Action: "SUB",
		Type:   subType,
	}
}

func lineupGame(events ...model.Event) *model.Game {
	return &model.Game{
		TrackedTeamID: "H",
		Players: map[string]*model.PlayerGameLine{
			"Ann Ames":  starterLine("Ann Ames"),
			"Bea Bell":  starterLine("Bea Bell"),
			"Cam Cole":  starterLine("Cam Cole"),
			"Dee Dunn":  starterLine("Dee Dunn"),
			"Eve Early": starterLine("Eve Early"),
			"Fay Field": benchLine("Fay Field"),
			"Gia Grant": benchLine("Gia Grant"),
		},
		Events: events,
	}
}

func TestTrackLineupsEverySnapshotHasFivePlayers(t *testing.T) {
	game := lineupGame(
		subEvent("H", "OUT", "Ann Ames", 0),
		subEvent("H", "IN", "Fay Field", 1),
		subEvent("H", "OUT", "Bea Bell", 2),
		subEvent("H", "OUT", "Cam Cole", 3),
		subEvent("H", "IN", "Gia Grant", 4),
		subEvent("H", "IN", "Bea Bell", 5),
	)

	snapshots := TrackLineups(game)
	require.NotEmpty(t, snapshots)
	for _, snapshot := range snapshots {
		require.Len(t, snapshot.Players, 5, "a snapshot must always hold exactly five players")
	}
}

func TestTrackLineupsSubSwap(t *testing.T) {
	game := lineupGame(
		subEvent("H", "OUT", "Ann Ames", 0),
		subEvent("H", "IN", "Fay Field", 1),
	)

	snapshots := TrackLineups(game)
	require.Len(t, snapshots, 1)
	require.Equal(t, "H", snapshots[0].Side)
	require.Equal(t, []string{"Bea Bell", "Cam Cole", "Dee Dunn", "Eve Early", "Fay Field"}, snapshots[0].Players)
}

func TestTrackLineupsIncompleteSideEmitsNothing(t *testing.T) {
	// Two outs with no replacement leave the side at four; no snapshot may
	// be emitted until it returns to exactly five.
	game := lineupGame(
		subEvent("H", "OUT", "Ann Ames", 0),
		subEvent("H", "OUT", "Bea Bell", 1),
		subEvent("H", "IN", "Fay Field", 2),
		subEvent("H", "IN", "Gia Grant", 3),
	)

	snapshots := TrackLineups(game)
	require.Len(t, snapshots, 1)
	require.Contains(t, snapshots[0].Players, "Gia Grant")
}

func TestTrackLineupsIgnoresNonSubEvents(t *testing.T) {
	game := lineupGame(
		model.Event{Seq: 0, Side: "H", Action: "GOOD", Type: "3PTR", Player: "Ann Ames"},
		model.Event{Seq: 1, Side: "H", Action: "TIMEOUT"},
	)

	require.Empty(t, TrackLineups(game))
}

func TestTrackLineupsNoEvents(t *testing.T) {
	require.Nil(t, TrackLineups(&model.Game{TrackedTeamID: "H"}))
}
