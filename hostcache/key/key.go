// Package key builds and hashes the cache keys the demo host uses to
// index stored policies, grounded on the teacher's pkg/cache/key.go.
package key

import (
	"fmt"
	"net/url"

	xxhash "github.com/cespare/xxhash/v2"
)

// Key identifies a cached entry by request coordinates.
type Key struct {
	Scheme string
	Host   string
	Path   string
	Query  string
}

// FromURL builds a Key from a parsed request URL and scheme.
func FromURL(u *url.URL, scheme string) Key {
	if scheme == "" {
		scheme = u.Scheme
	}
	if scheme == "" {
		scheme = "http"
	}
	return Key{
		Scheme: scheme,
		Host:   u.Host,
		Path:   u.Path,
		Query:  u.Query().Encode(),
	}
}

// String encodes the key as a canonical URL string.
func (k Key) String() string {
	u := url.URL{Scheme: k.Scheme, Host: k.Host, Path: k.Path, RawQuery: k.Query}
	return u.String()
}

// Hash produces a stable hash of the key, consistent across restarts,
// architectures and builds. Suitable for a persistent store's index.
func (k Key) Hash() uint64 {
	return xxhash.Sum64String(k.String())
}

// ShardedName returns a string key for in-process or remote stores,
// namespaced by hash to keep collisions between distinct URLs impossible
// in practice while staying human-greppable.
func (k Key) ShardedName() string {
	return fmt.Sprintf("%016x:%s", k.Hash(), k.String())
}
