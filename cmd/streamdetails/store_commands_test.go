package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestStoreLifecycle(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"store", "put", "/media/film.mkv", "--ffprobe", env.reportPath}, env.configPath)
	if err != nil {
		t.Fatalf("store put: %v", err)
	}
	requireContains(t, out, "Stored /media/film.mkv (1 video, 2 audio, 2 subtitle)")

	out, _, err = runCLI(t, []string{"store", "get", "/media/film.mkv", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("store get: %v", err)
	}
	var view struct {
		MediaPath     string                      `json:"media_path"`
		Sealed        bool                        `json:"sealed"`
		Resolution    string                      `json:"resolution"`
		AudioCodec    string                      `json:"audio_codec"`
		AudioChannels int                         `json:"audio_channels"`
		Streams       map[string][]map[string]any `json:"streams"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("store get output is not JSON: %v\n%s", err, out)
	}
	if view.MediaPath != "/media/film.mkv" || !view.Sealed || view.Resolution != "1080" {
		t.Fatalf("unexpected record view: %+v", view)
	}
	if view.AudioCodec != "truehd" || view.AudioChannels != 8 || len(view.Streams["audio"]) != 2 {
		t.Fatalf("unexpected audio summary: %+v", view)
	}

	out, _, err = runCLI(t, []string{"store", "get", "/media/film.mkv"}, env.configPath)
	if err != nil {
		t.Fatalf("store get table: %v", err)
	}
	requireContains(t, out, "Sealed: yes")
	requireContains(t, out, "1920x1080")

	out, _, err = runCLI(t, []string{"store", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("store list: %v", err)
	}
	requireContains(t, out, "/media/film.mkv")
	requireContains(t, out, "truehd 8ch")

	out, _, err = runCLI(t, []string{"store", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("store stats: %v", err)
	}
	requireContains(t, out, "1080")
	requireContains(t, out, "total")

	out, _, err = runCLI(t, []string{"store", "remove", "/media/film.mkv"}, env.configPath)
	if err != nil {
		t.Fatalf("store remove: %v", err)
	}
	requireContains(t, out, "Removed /media/film.mkv")

	out, _, err = runCLI(t, []string{"store", "remove", "/media/film.mkv"}, env.configPath)
	if err != nil {
		t.Fatalf("store remove again: %v", err)
	}
	requireContains(t, out, "Nothing stored")

	if _, _, err := runCLI(t, []string{"store", "get", "/media/film.mkv"}, env.configPath); err == nil {
		t.Fatal("expected get of removed record to fail")
	}

	out, _, err = runCLI(t, []string{"store", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("store list empty: %v", err)
	}
	requireContains(t, out, "No stored media")
}

func TestStorePutInspectsMediaFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	env := setupCLITestEnv(t)
	stub := filepath.Join(env.baseDir, "ffprobe-stub")
	script := "#!/bin/sh\ncat '" + env.reportPath + "'\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	env.cfg.Probe.FFprobeBinary = stub
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "FFprobe: "+stub)

	out, _, err = runCLI(t, []string{"store", "put", "/media/probed.mkv"}, env.configPath)
	if err != nil {
		t.Fatalf("store put: %v", err)
	}
	requireContains(t, out, "Stored /media/probed.mkv (1 video, 2 audio, 2 subtitle)")

	archivePath := filepath.Join(env.baseDir, "probed.sdx")
	if _, _, err := runCLI(t, []string{"encode", "--media", "/media/probed.mkv", "--out", archivePath}, env.configPath); err != nil {
		t.Fatalf("encode --media: %v", err)
	}
	if _, _, err := runCLI(t, []string{"encode", "--media", "/media/probed.mkv", "--ffprobe", env.reportPath, "--out", archivePath}, env.configPath); err == nil {
		t.Fatal("expected --media with --ffprobe to fail")
	}
}

func TestStorePutReportsMissingFFprobe(t *testing.T) {
	env := setupCLITestEnv(t)
	env.cfg.Probe.FFprobeBinary = filepath.Join(env.baseDir, "no-such-ffprobe")
	writeTestConfig(t, env.configPath, env.cfg)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("optional ffprobe should not fail validation: %v", err)
	}
	requireContains(t, out, "FFprobe: unavailable")

	if _, _, err := runCLI(t, []string{"store", "put", "/media/film.mkv"}, env.configPath); err == nil {
		t.Fatal("expected store put without report or ffprobe to fail")
	}
}
