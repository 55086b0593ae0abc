package gamefile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Sanders, Kennedy", "Kennedy Sanders"},
		{"SANDERS,KENNEDY", "KENNEDY SANDERS"},
		{"  Jo   Ann   Smith ", "Jo Ann Smith"},
		{"Kennedy Sanders", "Kennedy Sanders"},
		{"", ""},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, NormalizeName(tc.in))
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	once := NormalizeName("Sanders, Kennedy")
	require.Equal(t, once, NormalizeName(once))
}

func TestMatchesTracked(t *testing.T) {
	resolver := NewResolver(nil)

	require.True(t, resolver.MatchesTracked("Colorado"))
	require.True(t, resolver.MatchesTracked("UNIVERSITY OF COLORADO"))
	require.True(t, resolver.MatchesTracked("COL"))
	require.False(t, resolver.MatchesTracked("Utah"))
}

func TestResolveTracked(t *testing.T) {
	resolver := NewResolver(nil)

	tracked, opp := resolver.ResolveTracked(
		[]string{"V", "H"},
		map[string]string{"V": "Colorado", "H": "Stanford"},
	)
	require.Equal(t, "V", tracked)
	require.Equal(t, "H", opp)
}

func TestResolveTrackedFallback(t *testing.T) {
	resolver := NewResolver(nil)

	// No name matches: the first team is assumed tracked.
	tracked, opp := resolver.ResolveTracked(
		[]string{"H", "V"},
		map[string]string{"H": "Stanford", "V": "Utah"},
	)
	require.Equal(t, "H", tracked)
	require.Equal(t, "V", opp)
}

func TestResolverCustomSpellings(t *testing.T) {
	resolver := NewResolver([]string{"buffaloes"})

	require.True(t, resolver.MatchesTracked("Colorado Buffaloes"))
	require.False(t, resolver.MatchesTracked("Colorado"))
}

func TestHomeAway(t *testing.T) {
	require.Equal(t, "Home", HomeAway("H"))
	require.Equal(t, "Away", HomeAway("V"))
	require.Equal(t, "Home", HomeAway("X"))
}
