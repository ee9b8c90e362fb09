package testsupport

import (
	"path/filepath"
	"testing"

	"streamdetails/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithChecksum toggles sealed archive payloads.
func WithChecksum(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.Checksum = enabled
	}
}

// WithPreferredLanguage selects the preferred-language subtitle policy.
func WithPreferredLanguage(lang string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ranking.SubtitlePolicy = "preferred_language"
		b.cfg.Ranking.PreferredLanguage = lang
	}
}

// WithoutLogDir disables file logging.
func WithoutLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = ""
	}
}
