package cachepolicy

// dateValue returns the policy's effective Date baseline: the parsed
// Date header when present, parseable, and trusted, otherwise the
// creation timestamp. The second return reports whether the header
// itself (as opposed to the fallback) was usable.
func (p *CachePolicy) dateValue() (value int64, usable bool) {
	if p.opts.TrustServerDate {
		if v, ok := parseHTTPDate(p.res.Header.Get(headerDate)); ok {
			return v, true
		}
	}
	return p.created, false
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

// Age computes the response's current age at now, per spec.md §4.3.
func (p *CachePolicy) Age(now int64) int64 {
	date, _ := p.dateValue()

	apparentAge := maxInt64(0, p.created-date)

	var ageHeaderValue int64
	if v, ok := parseNonNegativeSeconds(p.res.Header.Get(headerAge)); ok {
		ageHeaderValue = v
	}
	correctedAge := ageHeaderValue + (now - p.created)

	return maxInt64(apparentAge, correctedAge)
}

// FreshnessLifetime computes the response's freshness lifetime, per the
// ordered rules of spec.md §4.3. It does not depend on now.
func (p *CachePolicy) FreshnessLifetime() int64 {
	resCC := p.resCC.effective(p.opts.IgnoreCargoCult)

	if p.opts.Shared && resCC.SMaxAge != noSeconds {
		return resCC.SMaxAge
	}

	_, dateUsable := p.dateValue()
	clockConflict := !dateUsable && !p.opts.TrustServerDate

	if resCC.MaxAge != noSeconds && !clockConflict {
		return resCC.MaxAge
	}

	if clockConflict {
		if resCC.Immutable {
			return p.opts.ImmutableMinTTL
		}
		return p.heuristicFreshnessLifetime(resCC)
	}

	if p.res.Header.Has(headerExpires) {
		if expires, ok := parseHTTPDate(p.res.Header.Get(headerExpires)); ok {
			date, _ := p.dateValue()
			return maxInt64(0, expires-date)
		}
	}

	if resCC.Immutable {
		return p.opts.ImmutableMinTTL
	}

	return p.heuristicFreshnessLifetime(resCC)
}

// heuristicFreshnessLifetime implements spec.md §4.3 rule 5: a fraction
// of the time since Last-Modified, for statuses the host allows to be
// heuristically cacheable.
func (p *CachePolicy) heuristicFreshnessLifetime(resCC ResponseDirectives) int64 {
	lastModified, ok := parseHTTPDate(p.res.Header.Get(headerLastModified))
	if !ok {
		return 0
	}

	statuses := p.opts.CacheableByDefaultStatusCodes
	if statuses == nil {
		statuses = defaultCacheableStatusCodes
	}
	if _, ok := statuses[p.res.StatusCode]; !ok {
		return 0
	}

	date, _ := p.dateValue()
	delta := date - lastModified
	if delta <= 0 {
		return 0
	}
	return int64(float64(delta) * p.opts.CacheHeuristic)
}

// IsStale reports whether the response is stale at now: its current age
// has reached or exceeded its freshness lifetime.
func (p *CachePolicy) IsStale(now int64) bool {
	return p.Age(now) >= p.FreshnessLifetime()
}

// TimeToLive returns the remaining time, in seconds, before the response
// becomes stale at now. Never negative.
func (p *CachePolicy) TimeToLive(now int64) int64 {
	return maxInt64(0, p.FreshnessLifetime()-p.Age(now))
}
