package cachepolicy

import "time"

// httpDateLayouts are the three HTTP-date formats a recipient must
// accept, preferred format first.
// https://datatracker.ietf.org/doc/html/rfc7231#section-7.1.1.1
var httpDateLayouts = [...]string{
	"Mon, 02 Jan 2006 15:04:05 GMT",  // IMF-fixdate (preferred)
	"Monday, 02-Jan-06 15:04:05 GMT", // obsolete RFC 850 format
	time.ANSIC,                       // obsolete asctime() format
}

// parseHTTPDate parses an HTTP-date header value, returning (0, false) if
// it is empty or unparseable in any accepted format. An unparseable or
// absent date is treated as "unusable"; callers fall back per the
// ordered freshness rules rather than erroring.
func parseHTTPDate(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	for _, layout := range httpDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Unix(), true
		}
	}
	return 0, false
}

// formatHTTPDate formats a Unix timestamp as a preferred-format HTTP-date.
func formatHTTPDate(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(httpDateLayouts[0])
}
