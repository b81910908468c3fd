package detect

import (
	"context"
	"log/slog"
	"time"

	"introcut/internal/config"
	"introcut/internal/logging"
	"introcut/internal/media/ffmpeg"
	"introcut/internal/media/ffprobe"
	"introcut/internal/services"
	"introcut/internal/subtitles"
)

// InspectFunc reports the stream layout of a media file. It matches
// ffprobe.Inspect with the binary bound.
type InspectFunc func(ctx context.Context, path string) (ffprobe.Result, error)

// Detector runs the configured evidence extractors over a media file and
// fuses their candidates into one result. Extractors that are disabled or
// whose input stream is missing are skipped, never failed.
type Detector struct {
	audio    *AudioExtractor
	video    *VideoExtractor
	subtitle *SubtitleExtractor
	inspect  InspectFunc
	bounds   Bounds
	logger   *slog.Logger
}

// BoundsFromConfig converts the configured detection section into extractor
// bounds.
func BoundsFromConfig(detection config.Detection) Bounds {
	return Bounds{
		MinIntroSeconds:     float64(detection.MinIntroDuration),
		MaxIntroSeconds:     float64(detection.MaxIntroDuration),
		DefaultIntroSeconds: float64(detection.DefaultIntroDuration),
		ConfidenceThreshold: detection.ConfidenceThreshold,
	}
}

// New assembles a detector from configuration. The ffmpeg prober is capped at
// four times the analysis window so a wedged probe cannot stall a run.
func New(cfg *config.Config, logger *slog.Logger) *Detector {
	bounds := BoundsFromConfig(cfg.Detection)
	timeout := time.Duration(4*cfg.Detection.MaxIntroDuration) * time.Second
	prober := ffmpeg.NewProber(
		ffmpeg.WithBinary(cfg.FFmpegBinary()),
		ffmpeg.WithTimeout(timeout),
	)

	detector := &Detector{
		bounds:   bounds,
		subtitle: NewSubtitleExtractor(bounds, cfg.Subtitles.MinDialogueDensity, cfg.Subtitles.SilenceGapSeconds, cfg.Subtitles.Language, logger),
		logger:   logging.WithComponent(logger, "detector"),
	}
	if cfg.Audio.Enabled {
		detector.audio = NewAudioExtractor(prober, bounds, cfg.Audio.SilenceNoiseDB, cfg.Audio.SilenceMinSeconds, logger)
	}
	if cfg.Video.Enabled {
		detector.video = NewVideoExtractor(prober, bounds, cfg.Video.SceneThreshold, cfg.Video.BlackMinSeconds, cfg.Video.BlackPixelThreshold, cfg.Video.FrameSampling, logger)
	}

	ffprobeBinary := cfg.FFprobeBinary()
	detector.inspect = func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, ffprobeBinary, path)
	}
	return detector
}

// NewWithExtractors assembles a detector from pre-built parts. Nil extractors
// and a nil inspect function are allowed; missing parts are skipped.
func NewWithExtractors(bounds Bounds, audio *AudioExtractor, video *VideoExtractor, subtitle *SubtitleExtractor, inspect InspectFunc, logger *slog.Logger) *Detector {
	return &Detector{
		audio:    audio,
		video:    video,
		subtitle: subtitle,
		inspect:  inspect,
		bounds:   bounds,
		logger:   logging.WithComponent(logger, "detector"),
	}
}

// Bounds returns the detection bounds the detector was built with.
func (d *Detector) Bounds() Bounds {
	return d.bounds
}

// Detect runs every applicable extractor over mediaPath and returns the fused
// result. subtitlePath may be empty. Detect is total: extractor and tool
// failures degrade to fewer candidates, and zero candidates still yields the
// default estimate.
func (d *Detector) Detect(ctx context.Context, mediaPath, subtitlePath string) Result {
	logger := logging.WithContext(ctx, d.logger)

	hasAudio, hasVideo := true, true
	if d.inspect != nil && mediaPath != "" {
		probe, err := d.inspect(ctx, mediaPath)
		if err != nil {
			logger.Warn("media inspection failed, assuming all streams present",
				slog.String("path", mediaPath),
				slog.Any("error", err))
		} else {
			hasAudio = probe.HasAudio()
			hasVideo = probe.HasVideo()
		}
	}

	var candidates []Candidate
	if d.audio != nil && hasAudio && mediaPath != "" {
		if candidate, ok := d.audio.Extract(ctx, mediaPath); ok {
			candidates = append(candidates, candidate)
		}
	}
	if d.video != nil && hasVideo && mediaPath != "" {
		if candidate, ok := d.video.Extract(ctx, mediaPath); ok {
			candidates = append(candidates, candidate)
		}
	}
	if d.subtitle != nil && subtitlePath != "" {
		cues, err := subtitles.ParseFile(subtitlePath)
		if err != nil {
			logFailure(logger, services.Recoverable(err), "subtitle parse failed",
				slog.String("path", subtitlePath),
				slog.Any("error", err))
		} else if candidate, ok := d.subtitle.Extract(cues); ok {
			candidates = append(candidates, candidate)
		}
	}

	result := Fuse(candidates, d.bounds)
	logger.Info("detection complete",
		slog.String("path", mediaPath),
		slog.String("method", string(result.Method)),
		slog.Float64("intro_end", result.IntroEnd),
		slog.Float64("confidence", result.Confidence),
		slog.Int("candidates", len(candidates)))
	return result
}

// logFailure records an extraction failure at a severity matching its
// recoverability: configuration mistakes surface as errors, tool and parse
// failures stay warnings.
func logFailure(logger *slog.Logger, recoverable bool, msg string, attrs ...any) {
	if recoverable {
		logger.Warn(msg, attrs...)
		return
	}
	logger.Error(msg, attrs...)
}

// DetectFromSubtitles estimates the intro end from a caption file alone. It
// is total: parse failures and empty files fall back to the default duration.
func (d *Detector) DetectFromSubtitles(subtitlePath string) (float64, string) {
	cues, err := subtitles.ParseFile(subtitlePath)
	if err != nil {
		d.logger.Warn("subtitle parse failed",
			slog.String("path", subtitlePath),
			slog.Any("error", err))
		return d.bounds.DefaultIntroSeconds, "subtitle file unreadable, using default"
	}
	return d.subtitle.DetectFromCues(cues)
}
