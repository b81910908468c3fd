package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDetection()
	c.normalizeAudio()
	c.normalizeVideo()
	c.normalizeSubtitles()
	c.normalizeBatch()
	c.normalizeTools()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryDir) == "" {
		c.Paths.HistoryDir = defaultHistoryDir
	}
	if c.Paths.HistoryDir, err = expandPath(c.Paths.HistoryDir); err != nil {
		return fmt.Errorf("paths.history_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDetection() {
	if c.Detection.MinIntroDuration <= 0 {
		c.Detection.MinIntroDuration = defaultMinIntroDuration
	}
	if c.Detection.MaxIntroDuration <= 0 {
		c.Detection.MaxIntroDuration = defaultMaxIntroDuration
	}
	if c.Detection.DefaultIntroDuration <= 0 {
		c.Detection.DefaultIntroDuration = defaultDefaultIntroDuration
	}
	if c.Detection.ConfidenceThreshold <= 0 {
		c.Detection.ConfidenceThreshold = defaultConfidenceThreshold
	}
}

func (c *Config) normalizeAudio() {
	if c.Audio.SilenceNoiseDB >= 0 {
		c.Audio.SilenceNoiseDB = defaultSilenceNoiseDB
	}
	if c.Audio.SilenceMinSeconds <= 0 {
		c.Audio.SilenceMinSeconds = defaultSilenceMinSeconds
	}
}

func (c *Config) normalizeVideo() {
	if c.Video.SceneThreshold <= 0 {
		c.Video.SceneThreshold = defaultSceneThreshold
	}
	if c.Video.BlackMinSeconds <= 0 {
		c.Video.BlackMinSeconds = defaultBlackMinSeconds
	}
	if c.Video.BlackPixelThreshold < 0 {
		c.Video.BlackPixelThreshold = defaultBlackPixelThreshold
	}
}

func (c *Config) normalizeSubtitles() {
	if c.Subtitles.MinDialogueDensity <= 0 {
		c.Subtitles.MinDialogueDensity = defaultMinDialogueDensity
	}
	if c.Subtitles.SilenceGapSeconds <= 0 {
		c.Subtitles.SilenceGapSeconds = defaultSilenceGapSeconds
	}
	c.Subtitles.Language = strings.ToLower(strings.TrimSpace(c.Subtitles.Language))
	if c.Subtitles.Language == "" {
		c.Subtitles.Language = defaultSubtitleLanguage
	}
}

func (c *Config) normalizeBatch() {
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultBatchWorkers
	}
	if len(c.Batch.Extensions) == 0 {
		c.Batch.Extensions = defaultBatchExtensions()
		return
	}
	exts := make([]string, 0, len(c.Batch.Extensions))
	seen := make(map[string]struct{}, len(c.Batch.Extensions))
	for _, ext := range c.Batch.Extensions {
		normalized := strings.ToLower(strings.TrimSpace(ext))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	if len(exts) == 0 {
		exts = defaultBatchExtensions()
	}
	c.Batch.Extensions = exts
}

func (c *Config) normalizeTools() {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
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
