package config

import "streamdetails/internal/archive"

const (
	defaultConfigPath     = "~/.config/streamdetails/config.toml"
	defaultDataDir        = "~/.local/share/streamdetails"
	defaultLogDir         = "~/.local/share/streamdetails/logs"
	defaultBufferSize     = archive.DefaultBufferSize
	defaultMaxElements    = 1 << 16
	defaultSubtitlePolicy = "first"
	defaultFFprobeBinary  = "ffprobe"
	defaultProbeTimeout   = 60
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	preferredLanguageEnv = "STREAMDETAILS_PREFERRED_LANGUAGE"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Archive: Archive{
			BufferSize:  defaultBufferSize,
			Checksum:    true,
			MaxElements: defaultMaxElements,
		},
		Ranking: Ranking{
			SubtitlePolicy: defaultSubtitlePolicy,
		},
		Probe: Probe{
			FFprobeBinary:  defaultFFprobeBinary,
			TimeoutSeconds: defaultProbeTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
