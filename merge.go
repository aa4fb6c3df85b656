package cachepolicy

import "strings"

// Disposition is the outcome of AfterResponse.
type Disposition int

const (
	// Modified means the revalidation response is a new representation;
	// the host must store it (or not, per its own storability check) and
	// serve its body.
	Modified Disposition = iota
	// NotModified means the stored body is still valid; the host serves
	// the stored body together with Outcome.Policy's headers.
	NotModified
)

// Outcome is the return value of AfterResponse.
type Outcome struct {
	Disposition Disposition
	Policy      *CachePolicy
}

// AfterResponse merges a revalidation exchange back into this policy, per
// spec.md §4.6. revReq and revRes are the request actually sent and the
// response actually received while revalidating.
func (p *CachePolicy) AfterResponse(revReq Request, revRes Response, now int64) Outcome {
	if revRes.StatusCode == 304 {
		if p.selectorsMatch(revRes) {
			merged := mergeFreshenedHeaders(p.res.Header, revRes.Header)
			return Outcome{Disposition: NotModified, Policy: New(p.req, NewResponse(p.res.StatusCode, merged), now, p.opts)}
		}
		return Outcome{Disposition: Modified, Policy: New(revReq, revRes, now, p.opts)}
	}

	if revRes.StatusCode >= 500 && revRes.StatusCode < 600 {
		if n, ok := p.staleIfError(revRes); ok && p.Age(now) <= p.FreshnessLifetime()+n {
			headers := p.res.Header.Clone()
			headers.Add(headerWarning, "110")
			return Outcome{Disposition: NotModified, Policy: New(p.req, NewResponse(p.res.StatusCode, headers), now, p.opts)}
		}
	}

	return Outcome{Disposition: Modified, Policy: New(revReq, revRes, now, p.opts)}
}

// selectorsMatch reports whether a 304 response validates this policy's
// stored response: matching ETags when either side has one, else matching
// Last-Modified (including the degenerate case where neither exists).
func (p *CachePolicy) selectorsMatch(revRes Response) bool {
	origETag := p.res.Header.Get(headerETag)
	newETag := revRes.Header.Get(headerETag)
	if origETag != "" || newETag != "" {
		return origETag == newETag
	}
	return p.res.Header.Get(headerLastModified) == revRes.Header.Get(headerLastModified)
}

// staleIfError returns the stale-if-error grace period that applies to
// this revalidation, preferring the directive carried on the revalidation
// response itself over the one recorded on the original response.
func (p *CachePolicy) staleIfError(revRes Response) (int64, bool) {
	if cc := ParseResponseDirectives(revRes.Header.Get(headerCacheControl)); cc.StaleIfError != noSeconds {
		return cc.StaleIfError, true
	}
	if p.resCC.StaleIfError != noSeconds {
		return p.resCC.StaleIfError, true
	}
	return 0, false
}

// StaleIfError reports the grace period, in seconds, the stored response
// may keep being served after a revalidation failure, per RFC 7234
// §4.2.4. Hosts that cannot reach the origin at all (a transport error,
// not a response) never call AfterResponse; this accessor lets them
// decide whether to keep serving the stored response anyway.
func (p *CachePolicy) StaleIfError() (seconds int64, ok bool) {
	if p.resCC.StaleIfError != noSeconds {
		return p.resCC.StaleIfError, true
	}
	return 0, false
}

// freshenedHeaders is the set of stored-response headers a successful 304
// replaces, per RFC 7234 §4.3.4.
var freshenedHeaders = [...]string{
	headerCacheControl, "content-location", headerDate, headerETag, headerExpires, headerLastModified, headerVary,
}

// mergeFreshenedHeaders applies a validating 304's headers onto the stored
// response's headers, then drops any 1xx Warning entries the freshening
// makes obsolete while keeping 2xx entries.
func mergeFreshenedHeaders(stored, revRes Header) Header {
	merged := stored.Clone()
	for _, name := range freshenedHeaders {
		if revRes.Has(name) {
			merged.Set(name, revRes.Get(name))
		}
	}
	if merged.Has(headerWarning) {
		merged.Set(headerWarning, dropWarning1xx(merged.Get(headerWarning)))
	}
	return merged
}

// dropWarning1xx removes warn-code 1xx entries from a Warning header
// value, keeping 2xx (and any other) entries, per RFC 7234 §4.3.4.
func dropWarning1xx(value string) string {
	var kept []string
	for _, entry := range splitDirectives(value) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		code := entry
		if sp := strings.IndexByte(entry, ' '); sp >= 0 {
			code = entry[:sp]
		}
		if len(code) == 3 && code[0] == '1' {
			continue
		}
		kept = append(kept, entry)
	}
	return strings.Join(kept, ", ")
}
