package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir     string `toml:"log_dir"`
	HistoryDir string `toml:"history_dir"`
}

// Detection contains the bounds shared by every evidence extractor and by the
// fusion engine. All durations are seconds.
type Detection struct {
	MinIntroDuration     int     `toml:"min_intro_duration"`
	MaxIntroDuration     int     `toml:"max_intro_duration"`
	DefaultIntroDuration int     `toml:"default_intro_duration"`
	ConfidenceThreshold  float64 `toml:"confidence_threshold"`
}

// Audio contains thresholds for the audio evidence extractor.
type Audio struct {
	Enabled           bool    `toml:"enabled"`
	SilenceNoiseDB    int     `toml:"silence_noise_db"`
	SilenceMinSeconds float64 `toml:"silence_min_seconds"`
}

// Video contains thresholds for the video evidence extractor.
type Video struct {
	Enabled             bool    `toml:"enabled"`
	SceneThreshold      float64 `toml:"scene_threshold"`
	BlackMinSeconds     float64 `toml:"black_min_seconds"`
	BlackPixelThreshold float64 `toml:"black_pixel_threshold"`
	FrameSampling       bool    `toml:"frame_sampling"`
}

// Subtitles contains thresholds for the subtitle evidence extractor.
type Subtitles struct {
	MinDialogueDensity float64 `toml:"min_dialogue_density"`
	SilenceGapSeconds  float64 `toml:"silence_gap_seconds"`
	Language           string  `toml:"language"`
}

// Batch contains settings for directory batch runs.
type Batch struct {
	Workers    int      `toml:"workers"`
	Extensions []string `toml:"extensions"`
}

// Tools contains external binary bindings.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for introcut.
//
// Configuration sections by subsystem:
//   - Paths: log and history store directories
//   - Detection: shared intro bounds and the fusion confidence threshold
//   - Audio: silencedetect noise floor and minimum silence length
//   - Video: scene-change sensitivity, black-frame thresholds, frame sampling
//   - Subtitles: dialogue density and silence-gap thresholds, caption language
//   - Batch: worker count and recognized media extensions
//   - Tools: ffmpeg/ffprobe binary overrides
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Detection Detection `toml:"detection"`
	Audio     Audio     `toml:"audio"`
	Video     Video     `toml:"video"`
	Subtitles Subtitles `toml:"subtitles"`
	Batch     Batch     `toml:"batch"`
	Tools     Tools     `toml:"tools"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/introcut/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("introcut.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the CLI writes into.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.HistoryDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable name.
func (c *Config) FFmpegBinary() string {
	if binary := strings.TrimSpace(c.Tools.FFmpeg); binary != "" {
		return binary
	}
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable name used for media inspection.
func (c *Config) FFprobeBinary() string {
	if binary := strings.TrimSpace(c.Tools.FFprobe); binary != "" {
		return binary
	}
	return "ffprobe"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
