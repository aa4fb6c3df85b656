package cachepolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAfterResponse304MatchingETag(t *testing.T) {
	p := New(
		NewRequest("GET", "/widgets", Header{}),
		NewResponse(200, Header{headerETag: `"v1"`, headerCacheControl: "max-age=100"}),
		1000, DefaultOptions(),
	)

	revReq := NewRequest("GET", "/widgets", Header{headerIfNoneMatch: `"v1"`})
	revRes := NewResponse(304, Header{headerETag: `"v1"`, headerCacheControl: "max-age=300", headerDate: formatHTTPDate(2000)})

	outcome := p.AfterResponse(revReq, revRes, 2000)
	assert.Equal(t, NotModified, outcome.Disposition)
	assert.Equal(t, int64(300), outcome.Policy.FreshnessLifetime())
}

func TestAfterResponse304MismatchedETagIsModified(t *testing.T) {
	p := New(
		NewRequest("GET", "/widgets", Header{}),
		NewResponse(200, Header{headerETag: `"v1"`, headerCacheControl: "max-age=100"}),
		1000, DefaultOptions(),
	)

	revReq := NewRequest("GET", "/widgets", Header{headerIfNoneMatch: `"v1"`})
	revRes := NewResponse(304, Header{headerETag: `"v2"`})

	outcome := p.AfterResponse(revReq, revRes, 2000)
	assert.Equal(t, Modified, outcome.Disposition)
}

func TestAfterResponse304OmittingETagIsModified(t *testing.T) {
	p := New(
		NewRequest("GET", "/widgets", Header{}),
		NewResponse(200, Header{headerETag: `"v1"`, headerCacheControl: "max-age=100"}),
		1000, DefaultOptions(),
	)

	revReq := NewRequest("GET", "/widgets", Header{headerIfNoneMatch: `"v1"`})
	revRes := NewResponse(304, Header{}) // origin omitted ETag on the 304

	outcome := p.AfterResponse(revReq, revRes, 2000)
	assert.Equal(t, Modified, outcome.Disposition)
}

func TestAfterResponse200IsModified(t *testing.T) {
	p := New(
		NewRequest("GET", "/widgets", Header{}),
		NewResponse(200, Header{headerETag: `"v1"`, headerCacheControl: "max-age=100"}),
		1000, DefaultOptions(),
	)

	revReq := NewRequest("GET", "/widgets", Header{})
	revRes := NewResponse(200, Header{headerETag: `"v2"`, headerCacheControl: "max-age=50"})

	outcome := p.AfterResponse(revReq, revRes, 2000)
	assert.Equal(t, Modified, outcome.Disposition)
	assert.Equal(t, int64(50), outcome.Policy.FreshnessLifetime())
}

func TestAfterResponse5xxStaleIfErrorWithinBudget(t *testing.T) {
	p := New(
		NewRequest("GET", "/widgets", Header{}),
		NewResponse(200, Header{headerCacheControl: "max-age=100, stale-if-error=200"}),
		1000, DefaultOptions(),
	)

	revReq := NewRequest("GET", "/widgets", Header{})
	revRes := NewResponse(503, Header{})

	outcome := p.AfterResponse(revReq, revRes, 1250) // age 250, lifetime 100, budget 100+200=300
	assert.Equal(t, NotModified, outcome.Disposition)
	assert.Contains(t, outcome.Policy.res.Header.Get(headerWarning), "110")
}

func TestAfterResponse5xxStaleIfErrorExceeded(t *testing.T) {
	p := New(
		NewRequest("GET", "/widgets", Header{}),
		NewResponse(200, Header{headerCacheControl: "max-age=100, stale-if-error=50"}),
		1000, DefaultOptions(),
	)

	revReq := NewRequest("GET", "/widgets", Header{})
	revRes := NewResponse(503, Header{})

	outcome := p.AfterResponse(revReq, revRes, 1200) // age 200 > 100+50
	assert.Equal(t, Modified, outcome.Disposition)
}

func TestAfterResponse5xxWithoutStaleIfErrorIsModified(t *testing.T) {
	p := New(
		NewRequest("GET", "/widgets", Header{}),
		NewResponse(200, Header{headerCacheControl: "max-age=100"}),
		1000, DefaultOptions(),
	)

	outcome := p.AfterResponse(NewRequest("GET", "/widgets", Header{}), NewResponse(500, Header{}), 1050)
	assert.Equal(t, Modified, outcome.Disposition)
}

func TestStaleIfErrorAccessor(t *testing.T) {
	withDirective := New(NewRequest("GET", "/", Header{}), NewResponse(200, Header{headerCacheControl: "max-age=60, stale-if-error=120"}), 0, DefaultOptions())
	n, ok := withDirective.StaleIfError()
	assert.True(t, ok)
	assert.Equal(t, int64(120), n)

	without := New(NewRequest("GET", "/", Header{}), NewResponse(200, Header{headerCacheControl: "max-age=60"}), 0, DefaultOptions())
	_, ok = without.StaleIfError()
	assert.False(t, ok)
}

func TestDropWarning1xxKeeps2xx(t *testing.T) {
	got := dropWarning1xx(`110 anderson "Response is stale", 214 - "Transformation applied"`)
	assert.Equal(t, `214 - "Transformation applied"`, got)
}
