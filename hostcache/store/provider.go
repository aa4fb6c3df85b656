// Package store provides the pluggable cache backends the demo host uses
// to persist cachepolicy.CachePolicy snapshots, grounded on the teacher's
// pkg/provider package.
package store

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"time"
)

// Provider is a generalized interface to a cache backend.
type Provider interface {
	// Get retrieves an entry by key, returning nil if absent.
	Get(ctx context.Context, key string) []byte

	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Delete removes key, reporting whether it was present.
	Delete(ctx context.Context, key string) bool

	// Size returns the number of entries currently stored.
	Size() int
}

const (
	// BackendMemory selects the in-process LRU backend.
	BackendMemory = "memory"
	// BackendRedis selects the Redis-backed backend.
	BackendRedis = "redis"
)

var errUnsupportedBackend = errors.New("hostcache/store: unsupported backend")

// New creates a Provider for the named backend.
func New(backend string, memCfg MemoryConfig, redisCfg RedisConfig) (Provider, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemory(memCfg), nil
	case BackendRedis:
		return NewRedis(redisCfg)
	default:
		return nil, errUnsupportedBackend
	}
}

// Entry is the gob-encoded wire form stored against a key: the
// marshaled cachepolicy.CachePolicy, the response body it governs, and
// the timestamp it was stored at.
type Entry struct {
	Policy   []byte
	Body     []byte
	StoredAt int64
}

// Encode encodes an entry into a byte slice.
func (e *Entry) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(e); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeEntry decodes a byte slice produced by Entry.Encode.
func DecodeEntry(data []byte) (*Entry, error) {
	var e Entry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}
