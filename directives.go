package cachepolicy

import (
	"strconv"
	"strings"
)

// directiveToken is one parsed Cache-Control directive: a name, and
// either no value (present), a bare token value, or a quoted-string
// value.
type directiveToken struct {
	name     string
	value    string
	hasValue bool
}

// splitDirectives tokenizes a Cache-Control (or similarly-shaped) header
// value into its comma-separated directives, honoring quoted-string
// values that may themselves contain commas.
//
//	Cache-Control   = 1#cache-directive
//	cache-directive = token [ "=" ( token / quoted-string ) ]
func splitDirectives(header string) []string {
	var out []string
	var buf strings.Builder
	inQuotes := false
	for _, r := range header {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			buf.WriteRune(r)
		case r == ',' && !inQuotes:
			out = append(out, buf.String())
			buf.Reset()
		default:
			buf.WriteRune(r)
		}
	}
	out = append(out, buf.String())
	return out
}

// parseDirectiveTokens parses every directive in header into tokens.
// Malformed pieces (empty, or an unquoted value containing whitespace)
// are dropped rather than surfaced as errors, per the engine's silent
// degrade-to-absent error model.
func parseDirectiveTokens(header string) []directiveToken {
	var tokens []directiveToken
	for _, part := range splitDirectives(header) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		name, rest, hasEquals := strings.Cut(part, "=")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		if !hasEquals {
			tokens = append(tokens, directiveToken{name: name})
			continue
		}

		value := strings.TrimSpace(rest)
		if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
			value = value[1 : len(value)-1]
		} else if strings.ContainsAny(value, " \t") {
			// An unquoted value containing whitespace is rejected as absent.
			continue
		}

		tokens = append(tokens, directiveToken{name: name, value: value, hasValue: true})
	}
	return tokens
}

// parseNonNegativeSeconds parses a delta-seconds directive argument.
// Malformed or negative numbers yield (0, false).
func parseNonNegativeSeconds(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// noSeconds is the sentinel for "directive absent" in the numeric
// directive fields below.
const noSeconds int64 = -1

// RequestDirectives is a strongly-typed view of the request's
// Cache-Control directives.
// https://httpwg.org/specs/rfc7234.html#cache-request-directive
type RequestDirectives struct {
	NoCache      bool
	NoStore      bool
	NoTransform  bool
	OnlyIfCached bool

	// MaxAge is noSeconds when absent.
	MaxAge int64
	// MinFresh is noSeconds when absent.
	MinFresh int64
	// MaxStale is noSeconds when absent, math.MaxInt64 when present with
	// no argument (meaning "any amount of staleness is acceptable").
	MaxStale    int64
	HasMaxStale bool
}

func newRequestDirectives() RequestDirectives {
	return RequestDirectives{MaxAge: noSeconds, MinFresh: noSeconds, MaxStale: noSeconds}
}

// ParseRequestDirectives parses a request Cache-Control header (pass
// multiple headers pre-joined with commas; Header.Add already does this).
func ParseRequestDirectives(header string) RequestDirectives {
	cc := newRequestDirectives()
	for _, t := range parseDirectiveTokens(header) {
		switch t.name {
		case "no-cache":
			cc.NoCache = true
		case "no-store":
			cc.NoStore = true
		case "no-transform":
			cc.NoTransform = true
		case "only-if-cached":
			cc.OnlyIfCached = true
		case "max-age":
			if n, ok := parseNonNegativeSeconds(t.value); ok {
				cc.MaxAge = n
			}
		case "min-fresh":
			if n, ok := parseNonNegativeSeconds(t.value); ok {
				cc.MinFresh = n
			}
		case "max-stale":
			if !t.hasValue {
				cc.HasMaxStale = true
				cc.MaxStale = maxSeconds
			} else if n, ok := parseNonNegativeSeconds(t.value); ok {
				cc.HasMaxStale = true
				cc.MaxStale = n
			}
		}
	}
	return cc
}

// maxSeconds is used for a bare "max-stale" (no argument): any amount of
// staleness is acceptable.
const maxSeconds int64 = 1<<63 - 1

// ResponseDirectives is a strongly-typed view of the response's
// Cache-Control directives.
// https://httpwg.org/specs/rfc7234.html#cache-response-directive
type ResponseDirectives struct {
	NoCache       bool
	NoCacheFields []string // from no-cache="field1 field2"; nil if bare or absent

	NoStore         bool
	NoTransform     bool
	MustRevalidate  bool
	ProxyRevalidate bool
	Public          bool

	Private       bool
	PrivateFields []string

	Immutable bool

	// MaxAge, SMaxAge, StaleWhileRevalidate, StaleIfError are noSeconds
	// when absent.
	MaxAge               int64
	SMaxAge              int64
	StaleWhileRevalidate int64
	StaleIfError         int64

	PreCheck  int64
	PostCheck int64
}

func newResponseDirectives() ResponseDirectives {
	return ResponseDirectives{
		MaxAge: noSeconds, SMaxAge: noSeconds,
		StaleWhileRevalidate: noSeconds, StaleIfError: noSeconds,
		PreCheck: noSeconds, PostCheck: noSeconds,
	}
}

// ParseResponseDirectives parses a response Cache-Control header.
func ParseResponseDirectives(header string) ResponseDirectives {
	cc := newResponseDirectives()
	for _, t := range parseDirectiveTokens(header) {
		switch t.name {
		case "no-cache":
			cc.NoCache = true
			if t.hasValue {
				cc.NoCacheFields = strings.Fields(t.value)
			}
		case "no-store":
			cc.NoStore = true
		case "no-transform":
			cc.NoTransform = true
		case "must-revalidate":
			cc.MustRevalidate = true
		case "proxy-revalidate":
			cc.ProxyRevalidate = true
		case "public":
			cc.Public = true
		case "private":
			cc.Private = true
			if t.hasValue {
				cc.PrivateFields = strings.Fields(t.value)
			}
		case "immutable":
			cc.Immutable = true
		case "max-age":
			if n, ok := parseNonNegativeSeconds(t.value); ok {
				cc.MaxAge = n
			}
		case "s-maxage":
			if n, ok := parseNonNegativeSeconds(t.value); ok {
				cc.SMaxAge = n
			}
		case "stale-while-revalidate":
			if n, ok := parseNonNegativeSeconds(t.value); ok {
				cc.StaleWhileRevalidate = n
			}
		case "stale-if-error":
			if n, ok := parseNonNegativeSeconds(t.value); ok {
				cc.StaleIfError = n
			}
		case "pre-check":
			if n, ok := parseNonNegativeSeconds(t.value); ok {
				cc.PreCheck = n
			}
		case "post-check":
			if n, ok := parseNonNegativeSeconds(t.value); ok {
				cc.PostCheck = n
			}
		}
	}
	return cc
}

// cargoCultFires reports whether the pre-check/post-check cargo-cult rule
// applies: both directives are present and the option is enabled.
func (cc ResponseDirectives) cargoCultFires(ignoreCargoCult bool) bool {
	return ignoreCargoCult && cc.PreCheck != noSeconds && cc.PostCheck != noSeconds
}

// effective returns cc with no-cache, no-store and a zero max-age
// suppressed when the cargo-cult rule fires, per spec.md §4.3.
func (cc ResponseDirectives) effective(ignoreCargoCult bool) ResponseDirectives {
	if !cc.cargoCultFires(ignoreCargoCult) {
		return cc
	}
	out := cc
	out.NoCache = false
	out.NoCacheFields = nil
	out.NoStore = false
	if out.MaxAge == 0 {
		out.MaxAge = noSeconds
	}
	return out
}

// effective returns cc with no-cache suppressed when the cargo-cult rule
// fires against the paired response directives.
func (cc RequestDirectives) effective(ignoreCargoCult bool, resCC ResponseDirectives) RequestDirectives {
	if !resCC.cargoCultFires(ignoreCargoCult) {
		return cc
	}
	out := cc
	out.NoCache = false
	return out
}
