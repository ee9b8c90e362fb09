package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeArchive()
	c.normalizeRanking()
	c.normalizeProbe()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeArchive() {
	if c.Archive.BufferSize == 0 {
		c.Archive.BufferSize = defaultBufferSize
	}
	if c.Archive.MaxElements == 0 {
		c.Archive.MaxElements = defaultMaxElements
	}
}

func (c *Config) normalizeRanking() {
	c.Ranking.SubtitlePolicy = strings.ToLower(strings.TrimSpace(c.Ranking.SubtitlePolicy))
	if c.Ranking.SubtitlePolicy == "" {
		c.Ranking.SubtitlePolicy = defaultSubtitlePolicy
	}
	c.Ranking.PreferredLanguage = strings.TrimSpace(c.Ranking.PreferredLanguage)
	if c.Ranking.PreferredLanguage == "" {
		if value, ok := os.LookupEnv(preferredLanguageEnv); ok {
			c.Ranking.PreferredLanguage = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeProbe() {
	c.Probe.FFprobeBinary = strings.TrimSpace(c.Probe.FFprobeBinary)
	if c.Probe.FFprobeBinary == "" {
		c.Probe.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Probe.TimeoutSeconds == 0 {
		c.Probe.TimeoutSeconds = defaultProbeTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
