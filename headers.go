package cachepolicy

// Well-known header names, lowercased to match Header's storage form.
const (
	headerCacheControl = "cache-control"
	headerPragma       = "pragma"
	headerDate         = "date"
	headerAge          = "age"
	headerExpires      = "expires"
	headerVary         = "vary"
	headerConnection   = "connection"
	headerAuthorization = "authorization"

	headerETag         = "etag"
	headerLastModified = "last-modified"

	headerIfNoneMatch     = "if-none-match"
	headerIfModifiedSince = "if-modified-since"
	headerIfMatch         = "if-match"
	headerIfUnmodifiedSince = "if-unmodified-since"
	headerIfRange         = "if-range"

	headerWarning = "warning"
)

// hopByHopDenylist is the fixed set of headers that are meaningful only
// on a single transport connection and must never be forwarded.
// https://httpwg.org/specs/rfc7230.html#header.connection
var hopByHopDenylist = map[string]struct{}{
	headerConnection:        {},
	"keep-alive":            {},
	"proxy-authenticate":    {},
	"proxy-authorization":   {},
	"te":                    {},
	"trailer":               {},
	"transfer-encoding":     {},
	"upgrade":               {},
}
