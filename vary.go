package cachepolicy

import "strings"

// varyStar is the sentinel meaning "this response is never reusable",
// per spec.md §3 Invariant 3.
const varyStar = "*"

// parseVary extracts the lowercased field names listed in the response's
// Vary header, preserving the "*" sentinel if present.
func parseVary(header Header) []string {
	raw := header.Get(headerVary)
	if raw == "" {
		return nil
	}
	var out []string
	for _, name := range splitCommaList(raw) {
		out = append(out, strings.ToLower(name))
	}
	return out
}

// hasVaryStar reports whether vary contains the "*" sentinel.
func hasVaryStar(vary []string) bool {
	for _, v := range vary {
		if v == varyStar {
			return true
		}
	}
	return false
}

// foldHeaderValue normalizes a header value for Vary comparison:
// lowercased and whitespace-folded, matching spec.md §4.4 rule 4.
func foldHeaderValue(v string) string {
	return strings.Join(strings.Fields(strings.ToLower(v)), " ")
}

// varyMatches reports whether newReq matches the original request for
// every field named in vary (excluding "*", handled by the caller).
func varyMatches(vary []string, original, newReq Request) bool {
	for _, name := range vary {
		if name == varyStar {
			continue
		}
		a := foldHeaderValue(original.Header.Get(name))
		b := foldHeaderValue(newReq.Header.Get(name))
		if a != b {
			return false
		}
	}
	return true
}
