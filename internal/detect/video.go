package detect

import (
	"context"
	"log/slog"

	"introcut/internal/logging"
	"introcut/internal/media/ffmpeg"
	"introcut/internal/services"
)

// VideoProber is the slice of the ffmpeg prober the video extractor needs.
type VideoProber interface {
	BlackSegments(ctx context.Context, path string, window float64, minSeconds float64, pixelThreshold float64) ([]ffmpeg.BlackSegment, error)
	SceneChanges(ctx context.Context, path string, window float64, threshold float64) ([]float64, error)
	SampleFrames(ctx context.Context, path string, window float64) ([]ffmpeg.FrameSample, error)
}

const (
	// densityWindowSeconds is the bucket size for scene and text density.
	densityWindowSeconds = 10.0
	// sceneGapSeconds is the inter-cut gap treated as an intro boundary.
	sceneGapSeconds = 15.0
	// blackLuminance is the sampled-frame YAVG below which a frame is black.
	blackLuminance = 10.0
	// textEdgeLuminance is the edge-map YAVG above which a frame likely
	// carries overlaid text (2% of full scale).
	textEdgeLuminance = 5.1
)

// VideoExtractor derives an intro-end candidate from the picture, trying the
// strongest evidence first: black-frame cuts, then a drop in scene-change
// density, then a long gap between cuts.
type VideoExtractor struct {
	prober         VideoProber
	bounds         Bounds
	sceneThreshold float64
	blackMin       float64
	blackPixel     float64
	frameSampling  bool
	logger         *slog.Logger
}

// NewVideoExtractor wires a video extractor.
func NewVideoExtractor(prober VideoProber, bounds Bounds, sceneThreshold, blackMin, blackPixel float64, frameSampling bool, logger *slog.Logger) *VideoExtractor {
	return &VideoExtractor{
		prober:         prober,
		bounds:         bounds,
		sceneThreshold: sceneThreshold,
		blackMin:       blackMin,
		blackPixel:     blackPixel,
		frameSampling:  frameSampling,
		logger:         logging.WithComponent(logger, "video-extractor"),
	}
}

// Extract scans the first MaxIntroSeconds of video. Strategies run in
// priority order and the first success wins; probe failures fall through to
// the next strategy.
func (e *VideoExtractor) Extract(ctx context.Context, path string) (Candidate, bool) {
	if e.frameSampling {
		if candidate, ok := e.fromFrameSamples(ctx, path); ok {
			return candidate, true
		}
	} else if candidate, ok := e.fromBlackSegments(ctx, path); ok {
		return candidate, true
	}

	times, err := e.prober.SceneChanges(ctx, path, e.bounds.MaxIntroSeconds, e.sceneThreshold)
	if err != nil {
		logFailure(logging.WithContext(ctx, e.logger), services.Recoverable(err),
			"scene probe failed", slog.Any("error", err))
		return Candidate{}, false
	}

	if candidate, ok := e.fromDensityDrop(times); ok {
		return candidate, true
	}
	return e.fromSceneGap(times)
}

func (e *VideoExtractor) fromBlackSegments(ctx context.Context, path string) (Candidate, bool) {
	segments, err := e.prober.BlackSegments(ctx, path, e.bounds.MaxIntroSeconds, e.blackMin, e.blackPixel)
	if err != nil {
		logFailure(logging.WithContext(ctx, e.logger), services.Recoverable(err),
			"blackdetect probe failed", slog.Any("error", err))
		return Candidate{}, false
	}
	for _, segment := range segments {
		if segment.End >= e.bounds.MinIntroSeconds {
			return NewCandidate(segment.End, 0.8, MethodBlackScreen, Details{
				"black_start": segment.Start,
				"black_end":   segment.End,
			}), true
		}
	}
	return Candidate{}, false
}

// fromFrameSamples is the sampled-frame variant: one frame per second scored
// for blackness and text likelihood. The last in-range black frame wins;
// otherwise a drop in text-frame density marks the intro end.
func (e *VideoExtractor) fromFrameSamples(ctx context.Context, path string) (Candidate, bool) {
	samples, err := e.prober.SampleFrames(ctx, path, e.bounds.MaxIntroSeconds)
	if err != nil {
		logFailure(logging.WithContext(ctx, e.logger), services.Recoverable(err),
			"frame sampling failed", slog.Any("error", err))
		return Candidate{}, false
	}

	var blackTimes, textTimes []float64
	for _, sample := range samples {
		if sample.Luminance < blackLuminance {
			blackTimes = append(blackTimes, sample.Seconds)
		}
		if sample.EdgeDensity > textEdgeLuminance {
			textTimes = append(textTimes, sample.Seconds)
		}
	}

	for i := len(blackTimes) - 1; i >= 0; i-- {
		if e.bounds.InRange(blackTimes[i]) {
			// The frame after the black gap is where the body starts.
			return NewCandidate(blackTimes[i]+1, 0.8, MethodBlackScreen, Details{
				"black_frame_at": blackTimes[i],
				"black_frames":   len(blackTimes),
			}), true
		}
	}

	if dropPoint, ok := findDensityDropPoint(bucketCounts(textTimes, e.bounds.MaxIntroSeconds)); ok && e.bounds.InRange(dropPoint) {
		return NewCandidate(dropPoint, 0.7, MethodTextDensity, Details{
			"text_frames": len(textTimes),
		}), true
	}
	return Candidate{}, false
}

func (e *VideoExtractor) fromDensityDrop(times []float64) (Candidate, bool) {
	counts := bucketCounts(times, e.bounds.MaxIntroSeconds)
	for bucket := 0; bucket+1 < len(counts); bucket++ {
		bucketStart := float64(bucket) * densityWindowSeconds
		if !e.bounds.InRange(bucketStart) {
			continue
		}
		if counts[bucket] < 3 || counts[bucket+1] > 1 {
			continue
		}
		for _, t := range times {
			if t > bucketStart+densityWindowSeconds {
				return NewCandidate(t, 0.75, MethodSceneDensityDrop, Details{
					"scene_changes":  len(times),
					"density_before": counts[bucket],
					"density_after":  counts[bucket+1],
					"window_start":   bucketStart,
				}), true
			}
		}
	}
	return Candidate{}, false
}

func (e *VideoExtractor) fromSceneGap(times []float64) (Candidate, bool) {
	for i := 1; i < len(times); i++ {
		if times[i] < e.bounds.MinIntroSeconds {
			continue
		}
		gap := times[i] - times[i-1]
		if gap > sceneGapSeconds {
			return NewCandidate(times[i], 0.65, MethodSceneGap, Details{
				"scene_changes": len(times),
				"gap_seconds":   gap,
			}), true
		}
	}
	return Candidate{}, false
}

// bucketCounts counts events per fixed 10-second window, including empty
// windows up to the analysis limit.
func bucketCounts(times []float64, limit float64) []int {
	buckets := int(limit/densityWindowSeconds) + 1
	counts := make([]int, buckets)
	for _, t := range times {
		bucket := int(t / densityWindowSeconds)
		if bucket >= 0 && bucket < buckets {
			counts[bucket]++
		}
	}
	return counts
}

// findDensityDropPoint returns the start of the window following the first
// window where density falls by more than half from at least 3 events.
func findDensityDropPoint(counts []int) (float64, bool) {
	for bucket := 0; bucket+1 < len(counts); bucket++ {
		current := counts[bucket]
		next := counts[bucket+1]
		if current >= 3 && float64(next)/float64(current) < 0.5 {
			return float64(bucket+1) * densityWindowSeconds, true
		}
	}
	return 0, false
}
