// Package transport wires the cachepolicy engine into an http.RoundTripper,
// grounded on the teacher's pkg/server/middleware.Transport.
package transport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/polarcache/cachepolicy"
	"github.com/polarcache/cachepolicy/hostcache/clock"
	hostconfig "github.com/polarcache/cachepolicy/hostcache/config"
	"github.com/polarcache/cachepolicy/hostcache/key"
	"github.com/polarcache/cachepolicy/hostcache/metrics"
	"github.com/polarcache/cachepolicy/hostcache/store"
)

// XCacheHeader is the debug header the demo host adds to every response
// it serves, reporting HIT, MISS, STALE-IF-ERROR, or PASS.
const XCacheHeader = "X-Cache"

const (
	statusHit          = "HIT"
	statusMiss         = "MISS"
	statusPass         = "PASS"
	statusStaleIfError = "STALE-IF-ERROR"
)

// Transport implements http.RoundTripper, consulting a cachepolicy engine
// and a store.Provider around each request.
type Transport struct {
	// Next is the underlying transport. Defaults to http.DefaultTransport.
	Next http.RoundTripper

	Store   store.Provider
	Clock   clock.Source
	Metrics *metrics.Collector
	Opts    cachepolicy.Options

	// Overrides are per-path-prefix adjustments, checked in order.
	Overrides []hostconfig.PathOverride
}

// RoundTrip applies the cache policy engine around a single request.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if override := t.matchOverride(req.URL.Path); override != nil && override.Exclude {
		t.observeBypass()
		resp, err := t.send(req)
		if resp != nil {
			resp.Header.Set(XCacheHeader, statusPass)
		}
		return resp, err
	}

	if req.Method != http.MethodGet && req.Method != http.MethodHead {
		t.observeBypass()
		resp, err := t.send(req)
		if resp != nil {
			resp.Header.Set(XCacheHeader, statusPass)
		}
		return resp, err
	}

	ctx := req.Context()
	k := key.FromURL(req.URL, "").ShardedName()
	now := t.Clock.Now()

	stored := t.loadPolicy(ctx, k)
	newReq := requestSnapshot(req)

	if stored != nil {
		result := stored.policy.BeforeRequest(newReq, now)
		t.observeLookup(result.Verdict)

		if result.Verdict == cachepolicy.Fresh {
			return t.serveStored(stored, result.Headers), nil
		}

		req = applyConditionalHeaders(req, result.Headers)
	}

	resp, err := t.send(req)
	if err != nil {
		if stored != nil {
			if n, ok := stored.policy.StaleIfError(); ok && stored.policy.Age(now) <= stored.policy.FreshnessLifetime()+n {
				log.Debug().Str("key", k).Msg("hostcache: serving stale-if-error response after transport failure")
				resp := t.serveStored(stored, stored.policy.BeforeRequest(newReq, now).Headers)
				resp.Header.Set(XCacheHeader, statusStaleIfError)
				return resp, nil
			}
		}
		return nil, err
	}

	return t.handleResponse(ctx, k, req.URL.Path, now, stored, newReq, resp)
}

type storedEntry struct {
	policy *cachepolicy.CachePolicy
	body   []byte
}

func (t *Transport) loadPolicy(ctx context.Context, k string) *storedEntry {
	raw := t.Store.Get(ctx, k)
	if raw == nil {
		return nil
	}
	entry, err := store.DecodeEntry(raw)
	if err != nil {
		return nil
	}
	policy, err := cachepolicy.Unmarshal(entry.Policy)
	if err != nil {
		return nil
	}
	return &storedEntry{policy: policy, body: entry.Body}
}

func (t *Transport) handleResponse(ctx context.Context, k, path string, now int64, stored *storedEntry, newReq cachepolicy.Request, resp *http.Response) (*http.Response, error) {
	override := t.matchOverride(path)

	if stored == nil {
		policy := cachepolicy.New(newReq, responseSnapshot(resp), now, t.Opts)
		return t.storeIfCacheable(ctx, k, policy, resp, override, statusMiss)
	}

	outcome := stored.policy.AfterResponse(newReq, responseSnapshot(resp), now)

	if outcome.Disposition == cachepolicy.NotModified {
		_ = resp.Body.Close()
		t.observeRevalidated()
		headers := outcome.Policy.BeforeRequest(newReq, now).Headers
		served := t.serveStored(&storedEntry{policy: outcome.Policy, body: stored.body}, headers)
		served.Header.Set(XCacheHeader, statusHit)
		t.persist(ctx, k, outcome.Policy, stored.body, override)
		return served, nil
	}

	return t.storeIfCacheable(ctx, k, outcome.Policy, resp, override, statusMiss)
}

func (t *Transport) storeIfCacheable(ctx context.Context, k string, policy *cachepolicy.CachePolicy, resp *http.Response, override *hostconfig.PathOverride, xcache string) (*http.Response, error) {
	resp.Header.Set(XCacheHeader, xcache)

	if override != nil && override.Exclude {
		t.Store.Delete(ctx, k)
		return resp, nil
	}
	if !policy.IsStorable() {
		t.Store.Delete(ctx, k)
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil
	}
	_ = resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	t.persist(ctx, k, policy, body, override)
	return resp, nil
}

func (t *Transport) persist(ctx context.Context, k string, policy *cachepolicy.CachePolicy, body []byte, override *hostconfig.PathOverride) {
	data, err := policy.Marshal()
	if err != nil {
		return
	}
	entry := &store.Entry{Policy: data, Body: body, StoredAt: t.Clock.Now()}
	encoded, err := entry.Encode()
	if err != nil {
		return
	}

	ttl := policy.TimeToLive(t.Clock.Now())
	if override != nil && override.TTLSeconds > ttl {
		ttl = override.TTLSeconds
	}
	t.Store.Set(ctx, k, encoded, secondsToDuration(ttl))
}

func (t *Transport) serveStored(stored *storedEntry, headers cachepolicy.Header) *http.Response {
	resp := &http.Response{
		StatusCode: stored.policy.StatusCode(),
		Header:     toHTTPHeader(headers),
		Body:       io.NopCloser(bytes.NewReader(stored.body)),
	}
	resp.Header.Set(XCacheHeader, statusHit)
	return resp
}

func (t *Transport) matchOverride(path string) *hostconfig.PathOverride {
	for i := range t.Overrides {
		if strings.HasPrefix(path, t.Overrides[i].PathPrefix) {
			return &t.Overrides[i]
		}
	}
	return nil
}

func (t *Transport) observeLookup(v cachepolicy.Verdict) {
	if t.Metrics == nil {
		return
	}
	if v == cachepolicy.Fresh {
		t.Metrics.ObserveFresh()
	} else {
		t.Metrics.ObserveStale()
	}
}

func (t *Transport) observeRevalidated() {
	if t.Metrics != nil {
		t.Metrics.ObserveRevalidated()
	}
}

func (t *Transport) observeBypass() {
	if t.Metrics != nil {
		t.Metrics.ObserveBypass()
	}
}

func (t *Transport) send(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}
	return next.RoundTrip(req)
}

func applyConditionalHeaders(req *http.Request, headers cachepolicy.Header) *http.Request {
	forked := new(http.Request)
	*forked = *req
	forked.Header = make(http.Header, len(req.Header))
	for k, v := range req.Header {
		forked.Header[k] = v
	}
	for name, value := range headers {
		forked.Header.Set(name, value)
	}
	return forked
}

func requestSnapshot(req *http.Request) cachepolicy.Request {
	h := cachepolicy.NewHeader()
	for name, values := range req.Header {
		for _, v := range values {
			h.Add(name, v)
		}
	}
	return cachepolicy.NewRequest(req.Method, req.URL.String(), h)
}

func responseSnapshot(resp *http.Response) cachepolicy.Response {
	h := cachepolicy.NewHeader()
	for name, values := range resp.Header {
		for _, v := range values {
			h.Add(name, v)
		}
	}
	return cachepolicy.NewResponse(resp.StatusCode, h)
}

func toHTTPHeader(h cachepolicy.Header) http.Header {
	out := make(http.Header, len(h))
	for name, value := range h {
		out.Set(name, value)
	}
	return out
}

func secondsToDuration(seconds int64) time.Duration {
	if seconds < 0 {
		seconds = 0
	}
	return time.Duration(seconds) * time.Second
}
