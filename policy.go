package cachepolicy

import "strconv"

// CachePolicy is an immutable record of the original request/response
// pair plus everything needed to answer freshness and reuse queries
// about it. Two CachePolicy values are independent; no method mutates
// its receiver (spec.md §3, Invariant 5).
type CachePolicy struct {
	req     Request
	res     Response
	created int64
	opts    Options

	reqCC RequestDirectives
	resCC ResponseDirectives
	vary  []string
}

// New builds a CachePolicy from the request and response the cache
// observed at created (seconds since epoch).
func New(req Request, res Response, created int64, opts Options) *CachePolicy {
	return &CachePolicy{
		req:     req,
		res:     res,
		created: created,
		opts:    opts,
		reqCC:   ParseRequestDirectives(req.Header.Get(headerCacheControl)),
		resCC:   ParseResponseDirectives(res.Header.Get(headerCacheControl)),
		vary:    parseVary(res.Header),
	}
}

// Verdict is the outcome of BeforeRequest.
type Verdict int

const (
	// Fresh means the host may return the cached body using the
	// returned headers.
	Fresh Verdict = iota
	// Stale means the host must revalidate using the returned
	// (conditional request) headers.
	Stale
)

// Result is the return value of BeforeRequest.
type Result struct {
	Verdict Verdict
	Headers Header
}

// BeforeRequest decides whether a candidate new request may reuse this
// policy's response, per spec.md §4.4.
func (p *CachePolicy) BeforeRequest(newReq Request, now int64) Result {
	if !p.matchesStaleOk(newReq) {
		return Result{Verdict: Stale, Headers: p.buildRevalidationHeaders(newReq)}
	}

	if !p.passesFreshnessWithSlack(newReq, now) {
		return Result{Verdict: Stale, Headers: p.buildRevalidationHeaders(newReq)}
	}

	headers := p.reusableResponseHeaders(now)
	return Result{Verdict: Fresh, Headers: headers}
}

// StatusCode returns the original response's status code, so a host
// reconstructing an HTTP response from a stored policy doesn't need to
// track it separately.
func (p *CachePolicy) StatusCode() int {
	return p.res.StatusCode
}

// matchesStaleOk runs every pre-freshness gate of §4.4 (method, URL,
// client no-cache/no-store/Pragma, Vary, response no-cache, shared-cache
// authentication). It returns false the moment any gate fails.
func (p *CachePolicy) matchesStaleOk(newReq Request) bool {
	if newReq.Method != p.req.Method {
		return false
	}
	if newReq.URL != p.req.URL {
		return false
	}

	resCC := p.resCC.effective(p.opts.IgnoreCargoCult)
	reqCC := ParseRequestDirectives(newReq.Header.Get(headerCacheControl)).effective(p.opts.IgnoreCargoCult, p.resCC)

	if reqCC.NoCache || reqCC.NoStore {
		return false
	}
	if !newReq.Header.Has(headerCacheControl) && pragmaForcesNoCache(newReq) {
		return false
	}

	if hasVaryStar(p.vary) {
		return false
	}
	if !varyMatches(p.vary, p.req, newReq) {
		return false
	}

	if resCC.NoCache && len(resCC.NoCacheFields) == 0 {
		return false
	}

	if p.opts.Shared && p.req.Header.Has(headerAuthorization) {
		if !resCC.Public && !resCC.MustRevalidate && resCC.SMaxAge == noSeconds {
			return false
		}
	}

	return true
}

// pragmaForcesNoCache implements the RFC 7234 §5.4 fallback: a request
// with no Cache-Control at all honors Pragma: no-cache as if
// Cache-Control: no-cache were present.
func pragmaForcesNoCache(req Request) bool {
	for _, tok := range splitCommaList(req.Header.Get(headerPragma)) {
		if tok == "no-cache" {
			return true
		}
	}
	return false
}

// passesFreshnessWithSlack implements §4.4 rule 7, evaluating the
// candidate new request's own min-fresh/max-age/max-stale directives
// rather than the stored request's.
func (p *CachePolicy) passesFreshnessWithSlack(newReq Request, now int64) bool {
	reqCC := ParseRequestDirectives(newReq.Header.Get(headerCacheControl)).effective(p.opts.IgnoreCargoCult, p.resCC)
	resCC := p.resCC.effective(p.opts.IgnoreCargoCult)

	age := p.Age(now)
	lifetime := p.FreshnessLifetime()

	if reqCC.MinFresh != noSeconds {
		if age+reqCC.MinFresh >= lifetime {
			return false
		}
	}
	if reqCC.MaxAge != noSeconds {
		if age > reqCC.MaxAge {
			return false
		}
	}

	if age < lifetime {
		// Fresh regardless of max-stale.
		return true
	}

	if !reqCC.HasMaxStale {
		return false
	}
	if resCC.MustRevalidate || (p.opts.Shared && resCC.ProxyRevalidate) {
		return false
	}

	staleness := age - lifetime
	return staleness <= reqCC.MaxStale
}

// reusableResponseHeaders builds the header set returned with a Fresh
// verdict: hop-by-hop filtered, no-cache-field stripped, Age overwritten.
func (p *CachePolicy) reusableResponseHeaders(now int64) Header {
	headers := filterHopByHop(p.res.Header)
	headers = stripNoCacheFields(headers, p.resCC.NoCacheFields)
	headers.Set(headerAge, formatSeconds(p.Age(now)))
	return headers
}

func formatSeconds(n int64) string {
	if n < 0 {
		n = 0
	}
	return strconv.FormatInt(n, 10)
}
