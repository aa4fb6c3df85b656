// Package config holds the demo host's YAML-loaded configuration,
// grounded on the teacher's pkg/config package.
package config

// Configuration is the root of the demo host's config file.
type Configuration struct {
	Log     Log     `yaml:"log"`
	Cache   Cache   `yaml:"cache"`
	Backend Backend `yaml:"backend"`
}

// Log configures hostcache/logging.Init.
type Log struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	FilePath   string `yaml:"file_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Cache configures engine-level defaults and per-path policy overrides.
type Cache struct {
	// Shared selects shared vs private cachepolicy.Options.Shared.
	Shared bool `yaml:"shared"`

	// ImmutableMinTTLSeconds overrides cachepolicy.Options.ImmutableMinTTL.
	ImmutableMinTTLSeconds int64 `yaml:"immutable_min_ttl_seconds"`

	// Overrides is a list of per-path-prefix policy adjustments, applied
	// in order with the first matching prefix winning.
	Overrides []PathOverride `yaml:"overrides"`
}

// PathOverride adjusts caching behavior for requests whose path has the
// given prefix.
type PathOverride struct {
	PathPrefix string `yaml:"path_prefix"`

	// TTLSeconds, if non-zero, floors how long the host keeps the entry in
	// its store to at least this many seconds. It does not change the
	// freshness lifetime the engine computes from the response's own
	// directives, so a kept entry past that lifetime is still revalidated.
	TTLSeconds int64 `yaml:"ttl_seconds"`

	// Exclude, if true, makes the host skip caching entirely for this
	// prefix regardless of what IsStorable reports.
	Exclude bool `yaml:"exclude"`
}

// Backend selects and configures the storage Provider.
type Backend struct {
	Kind   string       `yaml:"kind"`
	Memory MemoryConfig `yaml:"memory"`
	Redis  RedisConfig  `yaml:"redis"`
}

// MemoryConfig mirrors hostcache/store.MemoryConfig for YAML decoding.
type MemoryConfig struct {
	MaxEntries int `yaml:"max_entries"`
}

// RedisConfig mirrors hostcache/store.RedisConfig for YAML decoding.
type RedisConfig struct {
	Endpoint    string `yaml:"endpoint"`
	Username    string `yaml:"username"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	MaxItemSize int    `yaml:"max_item_size"`
}
