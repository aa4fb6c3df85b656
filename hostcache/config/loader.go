package config

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Loader loads Configuration from a YAML file and optionally watches it
// for changes, grounded on the teacher's pkg/config.Loader.
type Loader struct {
	path string

	watch         bool
	watchInterval time.Duration

	config     atomic.Pointer[Configuration]
	configHash []byte

	Events chan bool
	done   chan struct{}
}

// NewLoader creates a Loader and performs its first Load.
func NewLoader(path string, watch bool, interval time.Duration) (*Loader, error) {
	l := &Loader{
		path:          path,
		watch:         watch,
		watchInterval: interval,
		Events:        make(chan bool),
		done:          make(chan struct{}),
	}
	if _, err := l.Load(); err != nil {
		return nil, err
	}
	return l, nil
}

// Load re-reads the config file. It returns false, nil when the file's
// content hash has not changed since the last successful load.
func (l *Loader) Load() (bool, error) {
	buf, err := os.ReadFile(l.path)
	if err != nil {
		return false, err
	}

	sum := md5.Sum(buf)
	hash := sum[:]
	if bytes.Equal(l.configHash, hash) {
		return false, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)

	cfg := &Configuration{}
	if err := dec.Decode(cfg); err != nil {
		return false, err
	}

	l.configHash = hash
	l.config.Store(cfg)
	return true, nil
}

// Config returns the most recently loaded Configuration.
func (l *Loader) Config() *Configuration {
	return l.config.Load()
}

// Checksum returns the hex-encoded md5 of the currently loaded file.
func (l *Loader) Checksum() string {
	return hex.EncodeToString(l.configHash)
}

// Watch starts a goroutine that reloads the file on watchInterval and
// sends on Events whenever content actually changed. It stops when ctx is
// canceled or Close is called.
func (l *Loader) Watch(ctx context.Context) {
	if !l.watch {
		return
	}
	go func() {
		tick := time.NewTicker(l.watchInterval)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
			}

			changed, err := l.Load()
			if err != nil {
				log.Error().Err(err).Str("path", l.path).Msg("hostcache: error reloading config file")
				continue
			}
			if changed {
				l.notifyChange()
			}
		}
	}()
}

// Close stops any pending notifyChange send from blocking forever.
func (l *Loader) Close() {
	close(l.done)
}

func (l *Loader) notifyChange() bool {
	select {
	case l.Events <- true:
		return true
	case <-l.done:
		return false
	}
}
