package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDetection(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateVideo(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.MinIntroDuration >= c.Detection.MaxIntroDuration {
		return fmt.Errorf(
			"detection.min_intro_duration (%d) must be below detection.max_intro_duration (%d)",
			c.Detection.MinIntroDuration, c.Detection.MaxIntroDuration,
		)
	}
	if c.Detection.DefaultIntroDuration > c.Detection.MaxIntroDuration {
		return errors.New("detection.default_intro_duration must not exceed detection.max_intro_duration")
	}
	if c.Detection.ConfidenceThreshold <= 0 || c.Detection.ConfidenceThreshold > 1 {
		return errors.New("detection.confidence_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SilenceNoiseDB >= 0 {
		return errors.New("audio.silence_noise_db must be negative (a dBFS noise floor)")
	}
	return nil
}

func (c *Config) validateVideo() error {
	if c.Video.SceneThreshold <= 0 || c.Video.SceneThreshold >= 1 {
		return errors.New("video.scene_threshold must be between 0 and 1")
	}
	if c.Video.BlackPixelThreshold < 0 || c.Video.BlackPixelThreshold > 1 {
		return errors.New("video.black_pixel_threshold must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	if c.Subtitles.MinDialogueDensity <= 0 || c.Subtitles.MinDialogueDensity > 1 {
		return errors.New("subtitles.min_dialogue_density must be between 0 and 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
