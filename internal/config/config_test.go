package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"introcut/internal/config"
)

func TestLoadDefaultsExpandPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogs := filepath.Join(tempHome, ".local", "share", "introcut", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if cfg.Detection.MinIntroDuration != 20 || cfg.Detection.MaxIntroDuration != 150 {
		t.Fatalf("unexpected intro bounds: %+v", cfg.Detection)
	}
	if cfg.Detection.ConfidenceThreshold != 0.6 {
		t.Fatalf("unexpected confidence threshold: %v", cfg.Detection.ConfidenceThreshold)
	}
	if !cfg.Audio.Enabled || !cfg.Video.Enabled {
		t.Fatal("expected audio and video extractors enabled by default")
	}
	if cfg.FFmpegBinary() != "ffmpeg" || cfg.FFprobeBinary() != "ffprobe" {
		t.Fatalf("unexpected tool bindings: %q %q", cfg.FFmpegBinary(), cfg.FFprobeBinary())
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	contents := strings.Join([]string{
		"[detection]",
		"min_intro_duration = 10",
		"max_intro_duration = 180",
		"default_intro_duration = 45",
		"confidence_threshold = 0.8",
		"",
		"[tools]",
		"ffmpeg = \"/opt/ffmpeg/bin/ffmpeg\"",
		"",
		"[batch]",
		"extensions = [\"MKV\", \"webm\", \"\"]",
	}, "\n")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to be found")
	}
	if cfg.Detection.MinIntroDuration != 10 || cfg.Detection.MaxIntroDuration != 180 {
		t.Fatalf("unexpected bounds: %+v", cfg.Detection)
	}
	if cfg.FFmpegBinary() != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary: %q", cfg.FFmpegBinary())
	}
	want := []string{".mkv", ".webm"}
	if len(cfg.Batch.Extensions) != len(want) {
		t.Fatalf("unexpected extensions: %v", cfg.Batch.Extensions)
	}
	for i, ext := range want {
		if cfg.Batch.Extensions[i] != ext {
			t.Fatalf("extension %d: got %q want %q", i, cfg.Batch.Extensions[i], ext)
		}
	}
}

func TestValidateRejectsInvertedBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Detection.MinIntroDuration = 200
	cfg.Detection.MaxIntroDuration = 100
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for inverted bounds")
	}
}

func TestValidateRejectsPositiveNoiseFloor(t *testing.T) {
	cfg := config.Default()
	cfg.Audio.SilenceNoiseDB = 5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error for positive noise floor")
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "[detection]") {
		t.Fatal("sample config missing detection section")
	}
}
