package config

// ValidLogLevels lists the zerolog level names accepted by server.log_level.
var ValidLogLevels = []string{"trace", "debug", "info", "warn", "error"}

// DefaultConfig returns a Config populated with assetcore's built-in
// defaults, matching the constants documented throughout spec.md.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			LogLevel:    "info",
			ProjectsDir: "./projects",
		},
		Cache: CacheConfig{
			Enabled:                  true,
			MaxEntries:               10000,
			SweepIntervalSeconds:     60,
			ScriptListTTLSeconds:     300,
			CompiledScriptTTLSeconds: 600,
			ManifestTTLSeconds:       86400,
			FilesTTLSeconds:          86400,
			AssetsTTLSeconds:         86400,
			AssetTreeTTLSeconds:      86400,
		},
		Scanner: ScannerConfig{
			ExtraIgnoreDirs: nil,
		},
		Renderer: RendererConfig{
			DefaultSizes:        []int{128, 256, 512},
			GlbRenderer:         "",
			GlbTimeoutSeconds:   30,
			GlbBatchDelayMs:     100,
			GlbBatchBackoffMs:   500,
			GlbRetryMaxAttempts: 3,
		},
		Thumbnail: ThumbnailConfig{
			MaxAgeDays: 30,
		},
	}
}
