// Package cachepolicy implements the reuse, freshness and revalidation
// rules of HTTP caching (RFC 7234 / RFC 9111) for both shared and private
// caches.
//
// The package is pure policy: given the request/response pair used to
// build a CachePolicy, plus either a candidate new request or a
// revalidation exchange, it returns a verdict together with the header
// sets a host should forward. It performs no I/O, stores no bodies,
// indexes no cache entries and reads no clock; a host cache supplies
// storage, transport and time.
package cachepolicy
