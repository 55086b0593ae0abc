package gamefile

import "strings"

// DefaultTrackedSpellings are the name fragments used to recognize the
// tracked program when no explicit configuration is supplied.
var DefaultTrackedSpellings = []string{"COLORADO", "COL"}

// Resolver decides which team in a document is the tracked program and owns
// the player-name normalization rules. The spelling list is injected so the
// engine works for any program, not just the default.
type Resolver struct {
	spellings []string
}

// NewResolver creates a resolver matching team names against the given
// spellings (case-insensitive substring match). An empty list falls back to
// DefaultTrackedSpellings.
func NewResolver(spellings []string) *Resolver {
	if len(spellings) == 0 {
		spellings = DefaultTrackedSpellings
	}
	upper := make([]string, 0, len(spellings))
	for _, s := range spellings {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			upper = append(upper, s)
		}
	}
	return &Resolver{spellings: upper}
}

// MatchesTracked reports whether a team name belongs to the tracked program.
func (r *Resolver) MatchesTracked(teamName string) bool {
	name := strings.ToUpper(teamName)
	for _, spelling := range r.spellings {
		if strings.Contains(name, spelling) {
			return true
		}
	}
	return false
}

// ResolveTracked picks the tracked team from team IDs in document order. When
// no name matches, the first team is assumed tracked (documented heuristic,
// never an error).
func (r *Resolver) ResolveTracked(orderedIDs []string, names map[string]string) (trackedID, oppID string) {
	for _, id := range orderedIDs {
		if r.MatchesTracked(names[id]) {
			trackedID = id
		} else if oppID == "" {
			oppID = id
		}
	}
	if trackedID == "" && len(orderedIDs) > 0 {
		trackedID = orderedIDs[0]
		oppID = ""
		if len(orderedIDs) > 1 {
			oppID = orderedIDs[1]
		}
	}
	return trackedID, oppID
}

// HomeAway maps the tracked team's side code to a home/away designation.
func HomeAway(trackedID string) string {
	switch trackedID {
	case "H":
		return "Home"
	case "V":
		return "Away"
	default:
		return "Home"
	}
}

// NormalizeName canonicalizes a player name: whitespace is collapsed and
// "Last, First" is rewritten to "First Last". Normalization is idempotent.
func NormalizeName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if comma := strings.Index(name, ","); comma >= 0 {
		last := strings.TrimSpace(name[:comma])
		first := strings.TrimSpace(name[comma+1:])
		name = strings.TrimSpace(first + " " + last)
	}
	return name
}
