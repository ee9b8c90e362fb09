package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"streamdetails/internal/config"
	"streamdetails/internal/logging"
	"streamdetails/internal/testsupport"
)

func TestNewFromConfigWritesJSONLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg, "run-1")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "store").Info("stored details", logging.String(logging.FieldKey, "movie.mkv"))

	content, err := os.ReadFile(cfg.LogFilePath())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &record); err != nil {
		t.Fatalf("log file line is not JSON: %v (%q)", err, content)
	}
	if record["msg"] != "stored details" || record["level"] != "info" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record["component"] != "store" || record["key"] != "movie.mkv" || record["run_id"] != "run-1" {
		t.Fatalf("missing structured fields: %v", record)
	}
}

func TestNewFromConfigWithoutLogDirSkipsFile(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutLogDir())
	if cfg.LogFilePath() != "" {
		t.Fatalf("expected no log file path, got %q", cfg.LogFilePath())
	}
	logger, err := logging.NewFromConfig(cfg, "run-2")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Debug("not written anywhere")

	entries, err := os.ReadDir(filepath.Dir(cfg.Paths.DataDir))
	if err != nil {
		t.Fatalf("read base dir: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() == "logs" {
			t.Fatal("expected no log directory to be created")
		}
	}
}

func TestNewFromConfigNilUsesDefaults(t *testing.T) {
	logger, err := logging.NewFromConfig(nil, "")
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger.Enabled(context.Background(), -4) {
		t.Fatal("expected debug disabled by default")
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger = logging.NewComponentLogger(logger, "archive")
	logger.Info("decoded", logging.Int("videos", 2), logging.String("codec", "h264 main"))
	logger.Debug("hidden")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	for _, want := range []string{" INFO archive: decoded", "videos=2", `codec="h264 main"`} {
		if !strings.Contains(line, want) {
			t.Fatalf("expected %q in %q", want, line)
		}
	}
	if strings.Contains(line, "hidden") {
		t.Fatalf("debug record leaked at info level: %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithRecordKey(context.Background(), "show/e01")
	ctx = logging.WithPath(ctx, "/tmp/e01.sdx")
	logging.WithContext(ctx, logger).Warn("checksum mismatch", logging.Error(errors.New("bad crc")))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	for _, want := range []string{`"key":"show/e01"`, `"path":"/tmp/e01.sdx"`, `"error":"bad crc"`, `"level":"warn"`} {
		if !strings.Contains(string(content), want) {
			t.Fatalf("expected %s in %s", want, content)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "stale record", "store_stale", logging.String(logging.FieldErrorHint, "re-run encode"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, `"event_type":"store_stale"`) || !strings.Contains(text, `"error_hint":"re-run encode"`) {
		t.Fatalf("unexpected warn output: %s", text)
	}
	if strings.Count(text, "error_hint") != 1 {
		t.Fatalf("expected caller hint to win: %s", text)
	}
}
