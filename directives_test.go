package cachepolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRequestDirectives(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		expected RequestDirectives
	}{
		{
			"empty header",
			"",
			newRequestDirectives(),
		},
		{
			"valid header",
			"max-age=3600, min-fresh=10, no-transform, only-if-cached, no-store",
			RequestDirectives{NoStore: true, NoTransform: true, OnlyIfCached: true, MaxAge: 3600, MinFresh: 10, MaxStale: noSeconds},
		},
		{
			"bare max-stale accepts any staleness",
			"min-fresh=100, max-stale, no-cache",
			RequestDirectives{NoCache: true, MaxAge: noSeconds, MinFresh: 100, MaxStale: maxSeconds, HasMaxStale: true},
		},
		{
			"quoted args are valid",
			`max-age="3600", min-fresh="10"`,
			RequestDirectives{MaxAge: 3600, MinFresh: 10, MaxStale: noSeconds},
		},
		{
			"unknown directives ignored",
			"max-age=10, unknown-directive, unknown-with-argument=50",
			RequestDirectives{MaxAge: 10, MinFresh: noSeconds, MaxStale: noSeconds},
		},
		{
			"malformed numbers treated as absent",
			"max-age=ten, min-fresh=20, max-stale=-5",
			RequestDirectives{MaxAge: noSeconds, MinFresh: 20, MaxStale: noSeconds},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, ParseRequestDirectives(c.header))
		})
	}
}

func TestParseResponseDirectives(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		expected ResponseDirectives
	}{
		{
			"empty header",
			"",
			newResponseDirectives(),
		},
		{
			"public with max-age and s-maxage",
			"public, max-age=300, s-maxage=600",
			func() ResponseDirectives {
				cc := newResponseDirectives()
				cc.Public = true
				cc.MaxAge = 300
				cc.SMaxAge = 600
				return cc
			}(),
		},
		{
			"no-cache with field list",
			`no-cache="set-cookie"`,
			func() ResponseDirectives {
				cc := newResponseDirectives()
				cc.NoCache = true
				cc.NoCacheFields = []string{"set-cookie"}
				return cc
			}(),
		},
		{
			"private with field list and immutable",
			`private="x-session", immutable`,
			func() ResponseDirectives {
				cc := newResponseDirectives()
				cc.Private = true
				cc.PrivateFields = []string{"x-session"}
				cc.Immutable = true
				return cc
			}(),
		},
		{
			"stale-while-revalidate and stale-if-error",
			"max-age=60, stale-while-revalidate=30, stale-if-error=120",
			func() ResponseDirectives {
				cc := newResponseDirectives()
				cc.MaxAge = 60
				cc.StaleWhileRevalidate = 30
				cc.StaleIfError = 120
				return cc
			}(),
		},
		{
			"pre-check post-check recorded but inert by default",
			"pre-check=3600, post-check=1200, max-age=0",
			func() ResponseDirectives {
				cc := newResponseDirectives()
				cc.PreCheck = 3600
				cc.PostCheck = 1200
				cc.MaxAge = 0
				return cc
			}(),
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.expected, ParseResponseDirectives(c.header))
		})
	}
}

func TestResponseDirectivesEffectiveCargoCult(t *testing.T) {
	raw := ParseResponseDirectives("no-cache, no-store, pre-check=3600, post-check=1200, max-age=0")

	ignored := raw.effective(true)
	assert.False(t, ignored.NoCache)
	assert.False(t, ignored.NoStore)
	assert.Equal(t, int64(noSeconds), ignored.MaxAge)

	honored := raw.effective(false)
	assert.True(t, honored.NoCache)
	assert.True(t, honored.NoStore)
	assert.Equal(t, int64(0), honored.MaxAge)
}

func TestRequestDirectivesEffectiveCargoCult(t *testing.T) {
	req := ParseRequestDirectives("no-cache")
	res := ParseResponseDirectives("pre-check=3600, post-check=1200")

	assert.False(t, req.effective(true, res).NoCache)
	assert.True(t, req.effective(false, res).NoCache)
}
