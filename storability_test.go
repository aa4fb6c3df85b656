package cachepolicy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStorable(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		reqHdr   Header
		status   int
		resHdr   Header
		opts     Options
		expected bool
	}{
		{
			"GET 200 with max-age is storable",
			"GET", nil,
			200, Header{headerCacheControl: "max-age=60"},
			DefaultOptions(), true,
		},
		{
			"POST is never storable",
			"POST", nil,
			200, Header{headerCacheControl: "max-age=60"},
			DefaultOptions(), false,
		},
		{
			"no-store on response blocks storage",
			"GET", nil,
			200, Header{headerCacheControl: "no-store, max-age=60"},
			DefaultOptions(), false,
		},
		{
			"no-store on request blocks storage",
			"GET", Header{headerCacheControl: "no-store"},
			200, Header{headerCacheControl: "max-age=60"},
			DefaultOptions(), false,
		},
		{
			"private response not storable in shared cache",
			"GET", nil,
			200, Header{headerCacheControl: "private, max-age=60"},
			DefaultOptions(), false,
		},
		{
			"private response storable in private cache",
			"GET", nil,
			200, Header{headerCacheControl: "private, max-age=60"},
			func() Options { o := DefaultOptions(); o.Shared = false; return o }(), true,
		},
		{
			"authenticated request requires public/must-revalidate/s-maxage in shared cache",
			"GET", Header{headerAuthorization: "Bearer x"},
			200, Header{headerCacheControl: "max-age=60"},
			DefaultOptions(), false,
		},
		{
			"authenticated request with public is storable",
			"GET", Header{headerAuthorization: "Bearer x"},
			200, Header{headerCacheControl: "public, max-age=60"},
			DefaultOptions(), true,
		},
		{
			"default-cacheable status without explicit freshness is storable",
			"GET", nil,
			404, Header{},
			DefaultOptions(), true,
		},
		{
			"non-default status without explicit freshness is not storable",
			"GET", nil,
			403, Header{},
			DefaultOptions(), false,
		},
		{
			"HEAD with max-age is storable",
			"HEAD", nil,
			200, Header{headerCacheControl: "max-age=60"},
			DefaultOptions(), true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := New(NewRequest(c.method, "/", c.reqHdr), NewResponse(c.status, c.resHdr), 0, c.opts)
			assert.Equal(t, c.expected, p.IsStorable())
		})
	}
}
