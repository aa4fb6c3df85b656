// Command cachepolicy-demo wires the cachepolicy engine into hostcache's
// reference pieces: a storage provider, a prometheus registry, and an
// http.RoundTripper-based transport. It serves a debug API and a metrics
// endpoint; it does not proxy requests itself. Grounded on the teacher's
// cmd/kache/main.go and pkg/api/debug.go.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/polarcache/cachepolicy"
	"github.com/polarcache/cachepolicy/hostcache/clock"
	"github.com/polarcache/cachepolicy/hostcache/config"
	"github.com/polarcache/cachepolicy/hostcache/key"
	"github.com/polarcache/cachepolicy/hostcache/logging"
	"github.com/polarcache/cachepolicy/hostcache/metrics"
	"github.com/polarcache/cachepolicy/hostcache/store"
	"github.com/polarcache/cachepolicy/hostcache/transport"
)

const (
	configFileOption       = "config.file"
	configAutoReloadOption = "config.auto-reload"
	listenOption           = "listen"
)

func main() {
	// Cleanup flags registered via init() methods of 3rd-party libraries.
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	var configFile string
	flag.StringVar(&configFile, configFileOption, "cachepolicy-demo.yml", "Path to the YAML config file.")

	var configAutoReload bool
	flag.BoolVar(&configAutoReload, configAutoReloadOption, false, "Watch the config file for changes.")

	var listenAddr string
	flag.StringVar(&listenAddr, listenOption, ":8080", "Address the debug/admin API listens on.")

	flag.Parse()

	ldr, err := config.NewLoader(configFile, configAutoReload, 10*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config from %s: %v\n", configFile, err)
		os.Exit(1)
	}
	cfg := ldr.Config()

	logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		FilePath:   cfg.Log.FilePath,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})

	log.Info().Msg("cachepolicy-demo is starting")
	log.Info().Str("config", configFile).Msg("cachepolicy-demo initializing application")

	reg := prometheus.NewRegistry()
	cacheMetrics := metrics.NewCollector(reg)

	backend, err := store.New(cfg.Backend.Kind,
		storeMemoryConfig(cfg.Backend.Memory),
		storeRedisConfig(cfg.Backend.Redis),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing storage backend")
	}

	opts := cachepolicy.DefaultOptions()
	opts.Shared = cfg.Cache.Shared
	if cfg.Cache.ImmutableMinTTLSeconds > 0 {
		opts.ImmutableMinTTL = cfg.Cache.ImmutableMinTTLSeconds
	}

	overrides := make([]config.PathOverride, len(cfg.Cache.Overrides))
	copy(overrides, cfg.Cache.Overrides)

	ct := &transport.Transport{
		Store:     backend,
		Clock:     clock.NewSystemSource(),
		Metrics:   cacheMetrics,
		Opts:      opts,
		Overrides: overrides,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ldr.Watch(ctx)

	router := mux.NewRouter()
	appendDebugRoutes(router, backend, cfg)
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:    listenAddr,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", listenAddr).Msg("cachepolicy-demo: debug API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("running debug API")
		}
	}()

	// The caching transport is usable as an ordinary http.Client
	// transport by anything embedding this demo. This binary sends no
	// requests through it; the debug API above only reads stored entries.
	_ = &http.Client{Transport: ct}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("cachepolicy-demo is shutting down")
	ldr.Close()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func storeMemoryConfig(c config.MemoryConfig) store.MemoryConfig {
	if c.MaxEntries <= 0 {
		return store.DefaultMemoryConfig
	}
	return store.MemoryConfig{MaxEntries: c.MaxEntries}
}

func storeRedisConfig(c config.RedisConfig) store.RedisConfig {
	return store.RedisConfig{
		Endpoint:    c.Endpoint,
		Username:    c.Username,
		Password:    c.Password,
		DB:          c.DB,
		MaxItemSize: c.MaxItemSize,
	}
}

// appendDebugRoutes exposes /debug/policy, grounded on pkg/api/debug.go's
// pattern of attaching diagnostic routes directly on the mux.Router.
func appendDebugRoutes(router *mux.Router, backend store.Provider, cfg *config.Configuration) {
	router.Methods(http.MethodGet).Path("/debug/policy").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := r.URL.Query().Get("url")
		if u == "" {
			http.Error(w, "missing url query parameter", http.StatusBadRequest)
			return
		}
		parsed, err := url.Parse(u)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		k := key.FromURL(parsed, "").ShardedName()
		raw := backend.Get(r.Context(), k)
		if raw == nil {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]any{"key": k, "cached": false})
			return
		}

		entry, err := store.DecodeEntry(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		policy, err := cachepolicy.Unmarshal(entry.Policy)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		now := clock.NewSystemSource().Now()
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"key":                k,
			"cached":             true,
			"status_code":        policy.StatusCode(),
			"age_seconds":        policy.Age(now),
			"freshness_lifetime": policy.FreshnessLifetime(),
			"storable":           policy.IsStorable(),
			"stored_at":          entry.StoredAt,
			"body_bytes":         len(entry.Body),
		})
	})
}
