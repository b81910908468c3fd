package detect

import (
	"context"
	"log/slog"

	"introcut/internal/logging"
	"introcut/internal/media/ffmpeg"
	"introcut/internal/services"
)

// AudioProber is the slice of the ffmpeg prober the audio extractor needs.
type AudioProber interface {
	DetectSilence(ctx context.Context, path string, window float64, noiseDB int, minSeconds float64) ([]ffmpeg.SilenceInterval, error)
}

// longSilenceSeconds is the silence length treated as a reliable intro/body
// boundary. Shorter silences are ordinary pauses.
const longSilenceSeconds = 3.0

// musicFallbackSeconds is the fixed estimate the low-confidence spectral
// fallback reports when no qualifying silence exists.
const musicFallbackSeconds = 60.0

// AudioExtractor derives an intro-end candidate from the audio track: a long
// silence ending inside the intro bounds, or a coarse music-length estimate
// when no such silence exists.
type AudioExtractor struct {
	prober     AudioProber
	bounds     Bounds
	noiseDB    int
	minSilence float64
	logger     *slog.Logger
}

// NewAudioExtractor wires an audio extractor.
func NewAudioExtractor(prober AudioProber, bounds Bounds, noiseDB int, minSilence float64, logger *slog.Logger) *AudioExtractor {
	return &AudioExtractor{
		prober:     prober,
		bounds:     bounds,
		noiseDB:    noiseDB,
		minSilence: minSilence,
		logger:     logging.WithComponent(logger, "audio-extractor"),
	}
}

// Extract scans the first MaxIntroSeconds of audio. Tool failures degrade to
// "no candidate".
func (e *AudioExtractor) Extract(ctx context.Context, path string) (Candidate, bool) {
	intervals, err := e.prober.DetectSilence(ctx, path, e.bounds.MaxIntroSeconds, e.noiseDB, e.minSilence)
	if err != nil {
		logFailure(logging.WithContext(ctx, e.logger), services.Recoverable(err),
			"silence scan failed", slog.Any("error", err))
		return Candidate{}, false
	}

	if longest, ok := e.longestQualifyingSilence(intervals); ok {
		return NewCandidate(longest.End, 0.8, MethodAudioSilence, Details{
			"silence_duration": longest.Duration(),
			"silence_start":    longest.Start,
			"silence_end":      longest.End,
		}), true
	}

	// No usable silence boundary. Trade precision for coverage with a fixed
	// music-length estimate.
	estimate := musicFallbackSeconds
	if e.bounds.MaxIntroSeconds < estimate {
		estimate = e.bounds.MaxIntroSeconds
	}
	e.logger.Debug("no qualifying silence, using music estimate", slog.Float64("seconds", estimate))
	return NewCandidate(estimate, 0.6, MethodMusicAnalysis, Details{
		"estimated": true,
		"intervals": len(intervals),
	}), true
}

func (e *AudioExtractor) longestQualifyingSilence(intervals []ffmpeg.SilenceInterval) (ffmpeg.SilenceInterval, bool) {
	var longest ffmpeg.SilenceInterval
	found := false
	for _, interval := range intervals {
		if !e.bounds.InRange(interval.End) {
			continue
		}
		if !found || interval.Duration() > longest.Duration() {
			longest = interval
			found = true
		}
	}
	if !found || longest.Duration() <= longSilenceSeconds {
		return ffmpeg.SilenceInterval{}, false
	}
	return longest, true
}
