package cachepolicy

// Options configures how a CachePolicy interprets directives. See
// spec.md §6 for the full table; DefaultOptions returns the documented
// defaults.
type Options struct {
	// Shared selects shared (proxy) cache rules when true: s-maxage is
	// honored, "private" responses are rejected, and Authorization is
	// constrained. False selects private (single-user) cache rules.
	Shared bool

	// CacheHeuristic is the multiplier applied to (Date - Last-Modified)
	// when computing heuristic freshness lifetime. Must be in [0, 1].
	CacheHeuristic float64

	// ImmutableMinTTL is the default freshness lifetime, in seconds, for
	// responses carrying the "immutable" directive.
	ImmutableMinTTL int64

	// IgnoreCargoCult enables the pre-check/post-check cargo-cult rule:
	// when both directives are present, no-cache, no-store and a zero
	// max-age are treated as absent.
	IgnoreCargoCult bool

	// TrustServerDate selects whether the response's Date header is used
	// as the age baseline. When false, the policy's creation time is
	// used instead.
	TrustServerDate bool

	// CacheableByDefaultStatusCodes overrides the status codes that are
	// heuristically cacheable absent an explicit freshness directive. A
	// nil map uses defaultCacheableStatusCodes.
	CacheableByDefaultStatusCodes map[int]struct{}
}

// DefaultOptions returns the option defaults from spec.md §6.
func DefaultOptions() Options {
	return Options{
		Shared:          true,
		CacheHeuristic:  0.1,
		ImmutableMinTTL: 86400,
		IgnoreCargoCult: false,
		TrustServerDate: true,
	}
}
