package cachepolicy

// buildRevalidationHeaders constructs the conditional request headers
// sent to revalidate this policy's response, per spec.md §4.5. It starts
// from the new request's own headers (hop-by-hop filtered) and strips
// any pre-existing conditional headers before adding its own.
func (p *CachePolicy) buildRevalidationHeaders(newReq Request) Header {
	headers := filterHopByHop(newReq.Header)
	for _, h := range [...]string{headerIfNoneMatch, headerIfModifiedSince, headerIfMatch, headerIfUnmodifiedSince, headerIfRange} {
		headers.Del(h)
	}

	etag := p.res.Header.Get(headerETag)
	lastModified := p.res.Header.Get(headerLastModified)
	newReqCC := ParseRequestDirectives(newReq.Header.Get(headerCacheControl))

	if etag != "" {
		headers.Set(headerIfNoneMatch, etag)
	}

	// A strong ETag without Last-Modified uses If-None-Match alone; a
	// no-cache response or request never gets a conditional added at all
	// beyond the bare If-None-Match above.
	etagOnly := etag != "" && lastModified == ""
	noCache := p.resCC.NoCache || newReqCC.NoCache

	if !noCache && !etagOnly {
		switch {
		case lastModified != "":
			headers.Set(headerIfModifiedSince, lastModified)
		case etag == "":
			if date := p.res.Header.Get(headerDate); date != "" {
				headers.Set(headerIfModifiedSince, date)
			}
		}
	}

	return headers
}
