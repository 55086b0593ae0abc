package gamefile

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mhower/cu-basketball-analytics/internal/model"
)

// ErrMalformedDocument marks a document that cannot be parsed into a minimal
// valid game. It is the only parse failure surfaced to callers; every other
// irregularity resolves to a sentinel default.
var ErrMalformedDocument = errors.New("malformed game document")

// Sentinel defaults for missing fields. These are part of the output contract:
// downstream consumers key on them, so they must not change.
const (
	unknownValue    = "Unknown"
	unknownVenue    = "Unknown Venue"
	defaultPosition = "F"
	defaultClock    = "10:00"
	defaultPeriod   = "1"
)

// attrLookup names one place a logical field may live: an element selector
// plus an attribute on it. Each field carries an ordered list of these,
// evaluated first-match-wins, which keeps the vendor alias sets data-driven
// rather than buried in conditionals.
type attrLookup struct {
	Selector string
	Attr     string
}

var (
	dateLookups  = []attrLookup{{"venue", "date"}, {"venue", "gametime"}}
	venueLookups = []attrLookup{{"venue", "location"}}

	teamIDAttrs   = []string{"vh", "id", "code"}
	teamNameAttrs = []string{"name", "teamname"}
	periodAttrs   = []string{"prd", "period"}

	playerNameAttrs = []string{"name", "player"}
	positionAttrs   = []string{"pos", "position"}

	playClockAttrs  = []string{"time", "clock"}
	playSideAttrs   = []string{"vh", "team"}
	playPlayerAttrs = []string{"checkname", "player"}
)

// dateFormats is the fixed ordered list of calendar layouts attempted when
// parsing the raw date string. First success wins; total failure leaves the
// structured date absent while the raw string is preserved.
var dateFormats = []string{
	"01/02/2006",
	"2006-01-02",
	"01/02/06",
	"02/01/2006",
}

// Parser converts one raw game document into a canonical model.Game. It has
// no knowledge of metrics.
type Parser struct {
	resolver *Resolver
}

// NewParser creates a parser using the given roster resolver.
func NewParser(resolver *Resolver) *Parser {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return &Parser{resolver: resolver}
}

// Parse converts raw document bytes into a Game. The underlying HTML parser
// recovers from broken markup the way the vendors produce it; a document is
// rejected only when no team structure can be located at all.
func (p *Parser) Parse(content []byte, filename string) (*model.Game, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedDocument, filename, err)
	}

	game := &model.Game{
		ID:       strings.TrimSuffix(filename, ".xml"),
		Filename: filename,
		Date:     unknownValue,
		Venue:    unknownVenue,
		Teams:    map[string]*model.TeamResult{},
		Players:  map[string]*model.PlayerGameLine{},
		Opponent: unknownValue,
		Outcome:  model.OutcomeLoss,
		HomeAway: "Home",
	}

	if date := lookupAttr(doc, dateLookups); date != "" {
		game.Date = date
	} else if date := scanAnyAttr(doc, "date"); date != "" {
		game.Date = date
	}
	if game.Date != unknownValue {
		if parsed, ok := parseDate(game.Date); ok {
			game.ParsedDate = &parsed
		}
	}

	if venue := lookupAttr(doc, venueLookups); venue != "" {
		game.Venue = venue
	}

	orderedIDs := p.extractTeams(doc, game)
	if len(game.Teams) == 0 {
		return nil, fmt.Errorf("%w: %s: no team records found", ErrMalformedDocument, filename)
	}

	names := make(map[string]string, len(game.Teams))
	for id, team := range game.Teams {
		names[id] = team.Name
	}
	trackedID, oppID := p.resolver.ResolveTracked(orderedIDs, names)
	game.TrackedTeamID = trackedID
	game.HomeAway = HomeAway(trackedID)

	if tracked, ok := game.Teams[trackedID]; ok {
		game.TrackedScore = tracked.Score
	}
	if opp, ok := game.Teams[oppID]; ok {
		game.OppScore = opp.Score
		game.Opponent = opp.Name
	}

	switch {
	case game.TrackedScore > game.OppScore:
		game.Outcome = model.OutcomeWin
	case game.TrackedScore == game.OppScore:
		game.Outcome = model.OutcomeTie
	default:
		game.Outcome = model.OutcomeLoss
	}

	p.extractPlayers(doc, game, trackedID)
	game.Events = p.extractEvents(doc)

	return game, nil
}

// extractTeams populates game.Teams and returns team IDs in document order.
func (p *Parser) extractTeams(doc *goquery.Document, game *model.Game) []string {
	var ordered []string
	doc.Find("team").Each(func(_ int, team *goquery.Selection) {
		id := firstAttr(team, teamIDAttrs)
		if id == "" {
			return
		}

		result := &model.TeamResult{
			ID:     id,
			Name:   firstAttrOr(team, teamNameAttrs, unknownValue),
			Totals: model.StatLine{},
		}

		if linescore := team.Find("linescore").First(); linescore.Length() > 0 {
			result.Score = atoiOr(linescore.AttrOr("score", ""), 0)
			linescore.Find("lineprd").Each(func(_ int, prd *goquery.Selection) {
				result.Quarters = append(result.Quarters, model.QuarterScore{
					Period: firstAttr(prd, periodAttrs),
					Score:  atoiOr(prd.AttrOr("score", ""), 0),
				})
			})
		}

		totals := team.Find("totals stats").First()
		if totals.Length() == 0 {
			totals = team.Find("totals").First()
		}
		if totals.Length() > 0 {
			for key, value := range attrsOf(totals) {
				result.Totals[key] = coerce(value)
			}
		}

		if _, seen := game.Teams[id]; !seen {
			ordered = append(ordered, id)
		}
		game.Teams[id] = result
	})
	return ordered
}

// extractPlayers pulls every player stat line, keyed by normalized name.
func (p *Parser) extractPlayers(doc *goquery.Document, game *model.Game, trackedID string) {
	doc.Find("team").Each(func(_ int, team *goquery.Selection) {
		teamID := firstAttr(team, teamIDAttrs)
		if teamID == "" {
			return
		}
		tracked := teamID == trackedID

		team.Find("player").Each(func(_ int, player *goquery.Selection) {
			line := p.parsePlayer(player, teamID, tracked)
			if line != nil {
				game.Players[line.Name] = line
			}
		})
	})
}

func (p *Parser) parsePlayer(player *goquery.Selection, teamID string, tracked bool) *model.PlayerGameLine {
	name := firstAttr(player, playerNameAttrs)
	if name == "" || strings.ToUpper(name) == "TEAM" {
		return nil
	}

	line := &model.PlayerGameLine{
		Name:         NormalizeName(name),
		Position:     firstAttrOr(player, positionAttrs, defaultPosition),
		Jersey:       player.AttrOr("uni", ""),
		TeamID:       teamID,
		Tracked:      tracked,
		Stats:        model.StatLine{},
		QuarterStats: map[string]model.StatLine{},
	}

	if stats := player.Find("stats").First(); stats.Length() > 0 {
		for key, value := range attrsOf(stats) {
			line.Stats[key] = coerce(value)
		}
	}

	player.Find("statsbyprd").Each(func(_ int, prd *goquery.Selection) {
		period := firstAttr(prd, periodAttrs)
		if period == "" {
			return
		}
		qtr := model.StatLine{}
		for key, value := range attrsOf(prd) {
			if key == "prd" || key == "period" {
				continue
			}
			qtr[key] = coerce(value)
		}
		line.QuarterStats[period] = qtr
	})

	return line
}

// extractEvents walks the play-by-play section in document order. Sequence
// indices are assigned here and never reassigned.
func (p *Parser) extractEvents(doc *goquery.Document) []model.Event {
	section := doc.Find("plays").First()
	if section.Length() == 0 {
		section = doc.Find("playbyplay").First()
	}
	if section.Length() == 0 {
		return nil
	}

	var events []model.Event
	section.Find("period").Each(func(_ int, period *goquery.Selection) {
		label := period.AttrOr("number", "")
		if label == "" {
			label = firstAttrOr(period, periodAttrs, defaultPeriod)
		}
		period.Find("play").Each(func(_ int, play *goquery.Selection) {
			events = append(events, p.parseEvent(play, label, len(events)))
		})
	})

	// Some vendors skip period grouping entirely; those plays all share the
	// default period label.
	if len(events) == 0 {
		section.Find("play").Each(func(_ int, play *goquery.Selection) {
			events = append(events, p.parseEvent(play, defaultPeriod, len(events)))
		})
	}

	return events
}

// modeledPlayAttrs are the play attributes captured by named Event fields;
// anything else lands in Event.Extra untouched.
var modeledPlayAttrs = map[string]bool{
	"time": true, "clock": true, "vh": true, "team": true,
	"checkname": true, "player": true, "action": true, "type": true,
	"hscore": true, "vscore": true,
}

func (p *Parser) parseEvent(play *goquery.Selection, period string, seq int) model.Event {
	event := model.Event{
		Seq:       seq,
		Period:    period,
		Clock:     firstAttrOr(play, playClockAttrs, defaultClock),
		Side:      firstAttr(play, playSideAttrs),
		Action:    play.AttrOr("action", ""),
		Type:      play.AttrOr("type", ""),
		HomeScore: atoiOr(play.AttrOr("hscore", ""), 0),
		AwayScore: atoiOr(play.AttrOr("vscore", ""), 0),
		Text:      strings.TrimSpace(play.Text()),
	}

	if player := firstAttr(play, playPlayerAttrs); player != "" {
		event.Player = NormalizeName(player)
	}

	for key, value := range attrsOf(play) {
		if modeledPlayAttrs[key] {
			continue
		}
		if event.Extra == nil {
			event.Extra = map[string]string{}
		}
		event.Extra[key] = value
	}

	return event
}

// lookupAttr evaluates an ordered lookup list against the document, returning
// the first non-empty value.
func lookupAttr(doc *goquery.Document, lookups []attrLookup) string {
	for _, l := range lookups {
		sel := doc.Find(l.Selector).First()
		if sel.Length() == 0 {
			continue
		}
		if v := strings.TrimSpace(sel.AttrOr(l.Attr, "")); v != "" {
			return v
		}
	}
	return ""
}

// scanAnyAttr searches every element for the named attribute, in document
// order. Last-resort fallback after the targeted lookups fail.
func scanAnyAttr(doc *goquery.Document, attr string) string {
	found := ""
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v := strings.TrimSpace(s.AttrOr(attr, "")); v != "" {
			found = v
			return false
		}
		return true
	})
	return found
}

func firstAttr(s *goquery.Selection, names []string) string {
	for _, name := range names {
		if v := strings.TrimSpace(s.AttrOr(name, "")); v != "" {
			return v
		}
	}
	return ""
}

func firstAttrOr(s *goquery.Selection, names []string, fallback string) string {
	if v := firstAttr(s, names); v != "" {
		return v
	}
	return fallback
}

// attrsOf returns every attribute on the selection's first node.
func attrsOf(s *goquery.Selection) map[string]string {
	if len(s.Nodes) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(s.Nodes[0].Attr))
	for _, a := range s.Nodes[0].Attr {
		attrs[a.Key] = a.Val
	}
	return attrs
}

// coerce applies the uniform numeric coercion rule: integers unless the text
// carries a decimal point, floats when it does, and the raw text when neither
// parse succeeds.
func coerce(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if strings.Contains(trimmed, ".") {
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return f
		}
		return raw
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	return raw
}

func atoiOr(raw string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return n
	}
	return fallback
}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
