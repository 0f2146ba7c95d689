package config

import (
	"fmt"
	"strings"
)

// validate checks the Config for invalid or out-of-range values. It returns
// a combined error if any checks fail.
func validate(cfg *Config) error {
	var errs []string

	if !isValidEnum(cfg.Server.LogLevel, ValidLogLevels) {
		errs = append(errs, fmt.Sprintf("server.log_level must be one of %v, got %q", ValidLogLevels, cfg.Server.LogLevel))
	}
	if cfg.Server.ProjectsDir == "" {
		errs = append(errs, "server.projects_dir must not be empty")
	}

	if cfg.Cache.MaxEntries < 1 {
		errs = append(errs, fmt.Sprintf("cache.max_entries must be at least 1, got %d", cfg.Cache.MaxEntries))
	}
	if cfg.Cache.SweepIntervalSeconds < 1 {
		errs = append(errs, fmt.Sprintf("cache.sweep_interval_seconds must be at least 1, got %d", cfg.Cache.SweepIntervalSeconds))
	}
	for name, ttl := range map[string]int{
		"cache.script_list_ttl_seconds":     cfg.Cache.ScriptListTTLSeconds,
		"cache.compiled_script_ttl_seconds": cfg.Cache.CompiledScriptTTLSeconds,
		"cache.manifest_ttl_seconds":        cfg.Cache.ManifestTTLSeconds,
		"cache.files_ttl_seconds":           cfg.Cache.FilesTTLSeconds,
		"cache.assets_ttl_seconds":          cfg.Cache.AssetsTTLSeconds,
		"cache.asset_tree_ttl_seconds":      cfg.Cache.AssetTreeTTLSeconds,
	} {
		if ttl < 0 {
			errs = append(errs, fmt.Sprintf("%s must be non-negative (0 means immortal), got %d", name, ttl))
		}
	}

	for _, size := range cfg.Renderer.DefaultSizes {
		if size < 1 {
			errs = append(errs, fmt.Sprintf("renderer.default_sizes entries must be positive, got %d", size))
		}
	}
	if cfg.Renderer.GlbTimeoutSeconds < 1 {
		errs = append(errs, fmt.Sprintf("renderer.glb_timeout_seconds must be at least 1, got %d", cfg.Renderer.GlbTimeoutSeconds))
	}
	if cfg.Renderer.GlbBatchDelayMs < 0 {
		errs = append(errs, fmt.Sprintf("renderer.glb_batch_delay_ms must be non-negative, got %d", cfg.Renderer.GlbBatchDelayMs))
	}
	if cfg.Renderer.GlbBatchBackoffMs < 0 {
		errs = append(errs, fmt.Sprintf("renderer.glb_batch_backoff_ms must be non-negative, got %d", cfg.Renderer.GlbBatchBackoffMs))
	}
	if cfg.Renderer.GlbRetryMaxAttempts < 0 {
		errs = append(errs, fmt.Sprintf("renderer.glb_retry_max_attempts must be non-negative, got %d", cfg.Renderer.GlbRetryMaxAttempts))
	}

	if cfg.Thumbnail.MaxAgeDays < 1 {
		errs = append(errs, fmt.Sprintf("thumbnail.max_age_days must be at least 1, got %d", cfg.Thumbnail.MaxAgeDays))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// isValidEnum returns true if val is in the allowed list (case-insensitive).
func isValidEnum(val string, allowed []string) bool {
	lower := strings.ToLower(val)
	for _, a := range allowed {
		if strings.ToLower(a) == lower {
			return true
		}
	}
	return false
}
