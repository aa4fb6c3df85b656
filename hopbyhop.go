package cachepolicy

import "strings"

// filterHopByHop removes the fixed hop-by-hop denylist and every field
// named in the header set's own Connection header, per spec.md §4.7. It
// returns a new Header; the input is not mutated.
func filterHopByHop(header Header) Header {
	out := header.Clone()

	connectionNamed := map[string]struct{}{}
	for _, name := range splitCommaList(out.Get(headerConnection)) {
		connectionNamed[strings.ToLower(name)] = struct{}{}
	}

	for name := range out {
		if _, denied := hopByHopDenylist[name]; denied {
			delete(out, name)
			continue
		}
		if _, named := connectionNamed[name]; named {
			delete(out, name)
		}
	}

	return out
}

// stripNoCacheFields additionally removes every field name listed in a
// response's "no-cache=field1 field2" directive, used only when
// producing reused-response headers (spec.md §4.7).
func stripNoCacheFields(header Header, fields []string) Header {
	if len(fields) == 0 {
		return header
	}
	out := header
	for _, f := range fields {
		out.Del(f)
	}
	return out
}
