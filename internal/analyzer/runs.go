package analyzer

import (
	"strings"

	"github.com/mhower/cu-basketball-analytics/internal/model"
)

// MinRunPoints is the minimum point total for a streak to be recorded as a
// scoring run.
const MinRunPoints = 6

// DetectRuns finds scoring runs in a single game's event log. A made basket
// extends the current side's streak; an opposing made basket closes it,
// recording the streak only when it reached MinRunPoints. The trailing streak
// is flushed at log end under the same threshold.
//
// Point value per made basket is inferred from the action subtype (3PT
// indicator -> 3, free throw -> 1, else 2) and deliberately never
// cross-checked against the running-score delta on the event.
func DetectRuns(events []model.Event) []model.ScoringRun {
	var runs []model.ScoringRun

	current := model.ScoringRun{}
	active := false

	for idx, event := range events {
		if !isMadeBasket(event) {
			continue
		}

		points := pointsForEvent(event)
		if active && event.Side == current.Side {
			current.Points += points
			current.End = idx
			continue
		}

		if active && current.Points >= MinRunPoints {
			runs = append(runs, current)
		}
		current = model.ScoringRun{
			Side:   event.Side,
			Points: points,
			Start:  idx,
			End:    idx,
		}
		active = true
	}

	if active && current.Points >= MinRunPoints {
		runs = append(runs, current)
	}

	return runs
}

func isMadeBasket(event model.Event) bool {
	action := strings.ToUpper(event.Action)
	return strings.Contains(action, "GOOD") || strings.Contains(action, "MADE")
}

// pointsForEvent infers the point value of a made basket from its subtype.
func pointsForEvent(event model.Event) int {
	subtype := strings.ToUpper(event.Type)
	action := strings.ToUpper(event.Action)

	switch {
	case strings.Contains(subtype, "3PT") || strings.Contains(subtype, "3PTR"):
		return 3
	case strings.Contains(subtype, "FT") || strings.Contains(action, "FREE THROW"):
		return 1
	default:
		return 2
	}
}
