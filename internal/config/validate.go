package config

import (
	"errors"
	"fmt"

	"streamdetails/internal/language"
	"streamdetails/internal/streams"
)

const minBufferSize = 64

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateArchive(); err != nil {
		return err
	}
	if err := c.validateRanking(); err != nil {
		return err
	}
	if c.Probe.TimeoutSeconds < 0 {
		return errors.New("probe.timeout_seconds must not be negative")
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateArchive() error {
	if c.Archive.BufferSize < minBufferSize {
		return fmt.Errorf("archive.buffer_size must be at least %d", minBufferSize)
	}
	if c.Archive.MaxElements <= 0 {
		return errors.New("archive.max_elements must be positive")
	}
	return nil
}

func (c *Config) validateRanking() error {
	policy, err := streams.ParseSubtitlePolicy(c.Ranking.SubtitlePolicy)
	if err != nil {
		return fmt.Errorf("ranking.subtitle_policy: %w", err)
	}
	if c.Ranking.PreferredLanguage != "" && language.ToISO3(c.Ranking.PreferredLanguage) == "und" {
		return fmt.Errorf("ranking.preferred_language %q is not a recognized language", c.Ranking.PreferredLanguage)
	}
	if policy == streams.SubtitlePreferLanguage && c.Ranking.PreferredLanguage == "" {
		return fmt.Errorf("ranking.preferred_language must be set when subtitle_policy is %q (or set %s)", policy, preferredLanguageEnv)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
