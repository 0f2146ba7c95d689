// Package config loads and validates assetcore's runtime configuration:
// cache TTLs, the projects root directory, scanner ignore rules, and
// renderer timeouts/pacing. It follows the same load/validate/watch shape
// used throughout the rest of this module's ambient stack.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"sync/atomic"
)

// configPtr holds the current config for thread-safe access.
var configPtr atomic.Pointer[Config]

// loadedConfigFile stores the path of the config file used by the last
// successful Load.
var loadedConfigFile atomic.Value

// DefaultConfigFilename is the name assetcore looks for in its search path.
const DefaultConfigFilename = "assetcore.toml"

// Get returns the current Config. It is safe for concurrent use. If no
// config has been loaded yet, it returns the default config.
func Get() *Config {
	if c := configPtr.Load(); c != nil {
		return c
	}
	d := DefaultConfig()
	configPtr.Store(d)
	return d
}

func set(cfg *Config) {
	configPtr.Store(cfg)
}

// Config is the top-level configuration for assetcore.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    toml:"server"`
	Cache     CacheConfig     `mapstructure:"cache"     toml:"cache"`
	Scanner   ScannerConfig   `mapstructure:"scanner"   toml:"scanner"`
	Renderer  RendererConfig  `mapstructure:"renderer"  toml:"renderer"`
	Thumbnail ThumbnailConfig `mapstructure:"thumbnail" toml:"thumbnail"`
}

// ServerConfig holds the core process settings.
type ServerConfig struct {
	LogLevel    string `mapstructure:"log_level"    toml:"log_level"`
	ProjectsDir string `mapstructure:"projects_dir" toml:"projects_dir"`
}

// CacheConfig holds the in-memory MemoryCache settings. Enabled and
// MaxEntries are passed to the cache; the sweep interval and TTL fields are
// loaded and validated but not read anywhere else: the cache applies the
// fixed TTL constants in internal/cache, and no sweeper is started from
// this config.
type CacheConfig struct {
	Enabled                  bool `mapstructure:"enabled"                     toml:"enabled"`
	MaxEntries               int  `mapstructure:"max_entries"                 toml:"max_entries"`
	SweepIntervalSeconds     int  `mapstructure:"sweep_interval_seconds"      toml:"sweep_interval_seconds"`
	ScriptListTTLSeconds     int  `mapstructure:"script_list_ttl_seconds"     toml:"script_list_ttl_seconds"`
	CompiledScriptTTLSeconds int  `mapstructure:"compiled_script_ttl_seconds" toml:"compiled_script_ttl_seconds"`
	ManifestTTLSeconds       int  `mapstructure:"manifest_ttl_seconds"        toml:"manifest_ttl_seconds"`
	FilesTTLSeconds          int  `mapstructure:"files_ttl_seconds"           toml:"files_ttl_seconds"`
	AssetsTTLSeconds         int  `mapstructure:"assets_ttl_seconds"          toml:"assets_ttl_seconds"`
	AssetTreeTTLSeconds      int  `mapstructure:"asset_tree_ttl_seconds"      toml:"asset_tree_ttl_seconds"`
}

// ScannerConfig holds scanner settings. ExtraIgnoreDirs is loaded but
// scanner.Scan does not read it: the scanner applies only its fixed rules
// (dotfiles, .git, the named config files, scenes/*.json).
type ScannerConfig struct {
	ExtraIgnoreDirs []string `mapstructure:"extra_ignore_dirs" toml:"extra_ignore_dirs"`
}

// RendererConfig holds renderer settings. GlbRenderer, GlbTimeoutSeconds
// and GlbRetryMaxAttempts configure the GLB renderer; DefaultSizes,
// GlbBatchDelayMs and GlbBatchBackoffMs are loaded and validated but not
// read: RenderBatch uses its own fixed sizes and delays.
type RendererConfig struct {
	DefaultSizes        []int  `mapstructure:"default_sizes"          toml:"default_sizes"`
	GlbRenderer         string `mapstructure:"glb_renderer"            toml:"glb_renderer"` // path to external renderer binary
	GlbTimeoutSeconds   int    `mapstructure:"glb_timeout_seconds"    toml:"glb_timeout_seconds"`
	GlbBatchDelayMs     int    `mapstructure:"glb_batch_delay_ms"     toml:"glb_batch_delay_ms"`
	GlbBatchBackoffMs   int    `mapstructure:"glb_batch_backoff_ms"   toml:"glb_batch_backoff_ms"`
	GlbRetryMaxAttempts int    `mapstructure:"glb_retry_max_attempts" toml:"glb_retry_max_attempts"`
}

// ThumbnailConfig holds ThumbnailIndex settings. MaxAgeDays is loaded and
// validated but not read: the render dispatcher sweeps index entries with
// its own fixed 30-day limit.
type ThumbnailConfig struct {
	MaxAgeDays int `mapstructure:"max_age_days" toml:"max_age_days"`
}

// Load reads configuration from disk with the following precedence:
//  1. Environment variables (ASSETCORE_ prefix, _ as separator)
//  2. The file at explicitPath if non-empty
//  3. ~/.assetcore/assetcore.toml
//  4. ./assetcore.toml
//  5. Built-in defaults
//
// The loaded config is validated and stored in the global atomic pointer.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	setViperDefaults(v)

	v.SetEnvPrefix("ASSETCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".assetcore"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("assetcore")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if cf := v.ConfigFileUsed(); cf != "" {
		loadedConfigFile.Store(cf)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	)); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Server.ProjectsDir = expandHome(cfg.Server.ProjectsDir)

	if err := validate(cfg); err != nil {
		return nil, err
	}

	set(cfg)
	return cfg, nil
}

// InitConfig writes the default configuration file to
// ~/.assetcore/assetcore.toml. If the file already exists it is not
// overwritten.
func InitConfig() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("determining home directory: %w", err)
	}

	dir := filepath.Join(homeDir, ".assetcore")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(dir, DefaultConfigFilename)
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists: %s\n", path)
		return nil
	}

	cfg := DefaultConfig()
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("Config written to %s\n", path)
	return nil
}

// ConfigFilePath returns the path of the config file that was loaded, or
// empty if no file was found.
func ConfigFilePath() string {
	if v, ok := loadedConfigFile.Load().(string); ok {
		return v
	}
	return ""
}

func setViperDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("server.log_level", d.Server.LogLevel)
	v.SetDefault("server.projects_dir", d.Server.ProjectsDir)

	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.max_entries", d.Cache.MaxEntries)
	v.SetDefault("cache.sweep_interval_seconds", d.Cache.SweepIntervalSeconds)
	v.SetDefault("cache.script_list_ttl_seconds", d.Cache.ScriptListTTLSeconds)
	v.SetDefault("cache.compiled_script_ttl_seconds", d.Cache.CompiledScriptTTLSeconds)
	v.SetDefault("cache.manifest_ttl_seconds", d.Cache.ManifestTTLSeconds)
	v.SetDefault("cache.files_ttl_seconds", d.Cache.FilesTTLSeconds)
	v.SetDefault("cache.assets_ttl_seconds", d.Cache.AssetsTTLSeconds)
	v.SetDefault("cache.asset_tree_ttl_seconds", d.Cache.AssetTreeTTLSeconds)

	v.SetDefault("scanner.extra_ignore_dirs", d.Scanner.ExtraIgnoreDirs)

	v.SetDefault("renderer.default_sizes", d.Renderer.DefaultSizes)
	v.SetDefault("renderer.glb_renderer", d.Renderer.GlbRenderer)
	v.SetDefault("renderer.glb_timeout_seconds", d.Renderer.GlbTimeoutSeconds)
	v.SetDefault("renderer.glb_batch_delay_ms", d.Renderer.GlbBatchDelayMs)
	v.SetDefault("renderer.glb_batch_backoff_ms", d.Renderer.GlbBatchBackoffMs)
	v.SetDefault("renderer.glb_retry_max_attempts", d.Renderer.GlbRetryMaxAttempts)

	v.SetDefault("thumbnail.max_age_days", d.Thumbnail.MaxAgeDays)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
