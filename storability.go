package cachepolicy

// defaultCacheableStatusCodes is the fixed set of response status codes
// that are cacheable by default, absent any explicit freshness directive.
// https://tools.ietf.org/html/rfc7231#section-6.1
var defaultCacheableStatusCodes = map[int]struct{}{
	200: {}, 203: {}, 204: {}, 206: {},
	300: {}, 301: {},
	404: {}, 405: {}, 410: {}, 414: {},
	501: {},
}

// IsStorable reports whether the (request, response) pair the policy was
// built from may be stored at all. It is advisory: a policy built from a
// non-storable response still answers queries, the host is responsible
// for not caching it (spec.md §3, Invariant 4).
func (p *CachePolicy) IsStorable() bool {
	if !p.isCacheableMethod() {
		return false
	}

	resCC := p.resCC.effective(p.opts.IgnoreCargoCult)
	reqCC := p.reqCC.effective(p.opts.IgnoreCargoCult, p.resCC)

	if reqCC.NoStore || resCC.NoStore {
		return false
	}

	if p.opts.Shared {
		if resCC.Private {
			return false
		}
		if p.req.Header.Has(headerAuthorization) {
			if !resCC.Public && !resCC.MustRevalidate && resCC.SMaxAge == noSeconds {
				return false
			}
		}
	}

	return p.hasExplicitFreshnessOrDefaultStatus(resCC)
}

// isCacheableMethod reports whether the original request's method may be
// cached. Only GET and HEAD are cacheable, matching spec.md §4.2's
// default (the host may declare additional shared-cache methods via
// future Options; none are exposed today since the corpus shows none in
// active use beyond GET/HEAD).
func (p *CachePolicy) isCacheableMethod() bool {
	switch p.req.Method {
	case "GET", "HEAD":
		return true
	default:
		return false
	}
}

func (p *CachePolicy) hasExplicitFreshnessOrDefaultStatus(resCC ResponseDirectives) bool {
	if p.res.Header.Has(headerExpires) {
		return true
	}
	if resCC.MaxAge != noSeconds {
		return true
	}
	if p.opts.Shared && resCC.SMaxAge != noSeconds {
		return true
	}

	statuses := p.opts.CacheableByDefaultStatusCodes
	if statuses == nil {
		statuses = defaultCacheableStatusCodes
	}
	_, ok := statuses[p.res.StatusCode]
	return ok
}
