package analyzer

import "github.com/mhower/cu-basketball-analytics/internal/model"

// MinSwingPoints is the minimum jump in the running score differential
// between consecutive events for a momentum swing to be recorded.
const MinSwingPoints = 10

// DetectSwings records every instantaneous jump of at least MinSwingPoints in
// the running home-minus-away differential. This flags step changes between
// adjacent events, not swings sustained over a stretch of play.
func DetectSwings(events []model.Event) []model.MomentumSwing {
	var swings []model.MomentumSwing

	prevDiff := 0
	for _, event := range events {
		diff := event.HomeScore - event.AwayScore
		delta := diff - prevDiff
		if delta < 0 {
			delta = -delta
		}
		if delta >= MinSwingPoints {
			swings = append(swings, model.MomentumSwing{
				Clock:  event.Clock,
				Period: event.Period,
				Swing:  delta,
			})
		}
		prevDiff = diff
	}

	return swings
}

// Annotate attaches derived sequence facts to a freshly parsed game. Lineups
// live on the game entity; runs and swings are recomputed by the metrics
// engine from the event log and are returned here for direct consumers.
func Annotate(game *model.Game) {
	game.Lineups = TrackLineups(game)
}
