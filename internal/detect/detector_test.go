package detect

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"introcut/internal/logging"
	"introcut/internal/media/ffmpeg"
	"introcut/internal/media/ffprobe"
)

func inspectWith(streams ...string) InspectFunc {
	result := ffprobe.Result{}
	for _, codecType := range streams {
		result.Streams = append(result.Streams, ffprobe.Stream{CodecType: codecType})
	}
	return func(ctx context.Context, path string) (ffprobe.Result, error) {
		return result, nil
	}
}

func TestDetectorAudioSilenceWins(t *testing.T) {
	prober := &fakeAudioProber{intervals: []ffmpeg.SilenceInterval{{Start: 37, End: 42}}}
	detector := NewWithExtractors(
		testBounds(),
		newTestAudioExtractor(prober),
		nil,
		nil,
		inspectWith("audio", "video"),
		logging.NewNop(),
	)

	result := detector.Detect(context.Background(), "episode.mkv", "")
	if result.Method != MethodAudioSilence {
		t.Fatalf("method = %q, want %q", result.Method, MethodAudioSilence)
	}
	if result.IntroEnd != 42 {
		t.Errorf("intro end = %v, want 42", result.IntroEnd)
	}
	if result.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", result.Confidence)
	}
}

func TestDetectorSkipsExtractorsForMissingStreams(t *testing.T) {
	audioProber := &fakeAudioProber{err: errors.New("should never run")}
	videoProber := &fakeVideoProber{blackErr: errors.New("should never run"), scenesErr: errors.New("should never run")}
	detector := NewWithExtractors(
		testBounds(),
		newTestAudioExtractor(audioProber),
		newTestVideoExtractor(videoProber, false),
		nil,
		inspectWith(), // container with no decodable streams
		logging.NewNop(),
	)

	result := detector.Detect(context.Background(), "episode.mkv", "")
	if result.Method != MethodDefault {
		t.Fatalf("method = %q, want %q", result.Method, MethodDefault)
	}
	if result.IntroEnd != 60 {
		t.Errorf("intro end = %v, want default 60", result.IntroEnd)
	}
}

func TestDetectorInspectionFailureStillRunsExtractors(t *testing.T) {
	prober := &fakeAudioProber{intervals: []ffmpeg.SilenceInterval{{Start: 30, End: 38}}}
	detector := NewWithExtractors(
		testBounds(),
		newTestAudioExtractor(prober),
		nil,
		nil,
		func(ctx context.Context, path string) (ffprobe.Result, error) {
			return ffprobe.Result{}, errors.New("ffprobe missing")
		},
		logging.NewNop(),
	)

	result := detector.Detect(context.Background(), "episode.mkv", "")
	if result.Method != MethodAudioSilence {
		t.Fatalf("method = %q, want %q", result.Method, MethodAudioSilence)
	}
}

func TestDetectorCombinesMediaAndSubtitleEvidence(t *testing.T) {
	bounds := testBounds()
	bounds.ConfidenceThreshold = 0.9

	prober := &fakeAudioProber{intervals: []ffmpeg.SilenceInterval{{Start: 35, End: 40}}}
	subtitlePath := writeTestSubtitle(t, `1
00:00:50,000 --> 00:00:53,000
So tell me what actually happened out there last night.

2
00:00:53,500 --> 00:00:56,000
I already told you everything I know about it, twice.
`)

	detector := NewWithExtractors(
		bounds,
		NewAudioExtractor(prober, bounds, -30, 2.0, logging.NewNop()),
		nil,
		NewSubtitleExtractor(bounds, 0.3, 30, "en", logging.NewNop()),
		inspectWith("audio"),
		logging.NewNop(),
	)

	result := detector.Detect(context.Background(), "episode.mkv", subtitlePath)
	if result.Method != MethodWeightedAverage {
		t.Fatalf("method = %q, want %q", result.Method, MethodWeightedAverage)
	}
	if result.IntroEnd < 40 || result.IntroEnd > 50 {
		t.Errorf("intro end = %v, want between the two estimates", result.IntroEnd)
	}
}

func TestDetectorDetectFromSubtitles(t *testing.T) {
	path := writeTestSubtitle(t, `1
00:00:45,000 --> 00:00:48,000
Welcome back. We have a great deal of ground to cover.
`)
	detector := NewWithExtractors(testBounds(), nil, nil,
		NewSubtitleExtractor(testBounds(), 0.3, 30, "en", logging.NewNop()),
		nil, logging.NewNop())

	seconds, reason := detector.DetectFromSubtitles(path)
	if seconds != 45 {
		t.Errorf("seconds = %v, want 45", seconds)
	}
	if reason == "" {
		t.Error("want an explanatory reason")
	}
}

func TestDetectorDetectFromSubtitlesUnreadable(t *testing.T) {
	detector := NewWithExtractors(testBounds(), nil, nil,
		NewSubtitleExtractor(testBounds(), 0.3, 30, "en", logging.NewNop()),
		nil, logging.NewNop())

	seconds, _ := detector.DetectFromSubtitles(filepath.Join(t.TempDir(), "missing.srt"))
	if seconds != 60 {
		t.Errorf("seconds = %v, want default 60", seconds)
	}
}

func writeTestSubtitle(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "episode.srt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write subtitle fixture: %v", err)
	}
	return path
}
