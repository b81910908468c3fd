package detect

import (
	"testing"

	"introcut/internal/logging"
	"introcut/internal/subtitles"
)

func newTestSubtitleExtractor() *SubtitleExtractor {
	return NewSubtitleExtractor(testBounds(), 0.3, 30, "en", logging.NewNop())
}

func cue(start, end float64, text string) subtitles.Cue {
	return subtitles.Cue{Start: start, End: end, Text: text}
}

func TestSubtitleExtractDialogueDensity(t *testing.T) {
	cues := []subtitles.Cue{
		cue(30, 32, "So tell me what actually happened out there last night."),
		cue(33, 35, "I already told you everything I know about it, twice."),
		cue(36, 38, "Then tell me a third time, and slower than before."),
		cue(40, 42, "Fine, but you are not going to like any of it."),
	}
	candidate, ok := newTestSubtitleExtractor().Extract(cues)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if candidate.Method != MethodSubtitleDialogue {
		t.Fatalf("method = %q, want %q", candidate.Method, MethodSubtitleDialogue)
	}
	if candidate.EndSeconds != 30 {
		t.Errorf("end = %v, want 30 (start of the dense window)", candidate.EndSeconds)
	}
	if candidate.Confidence != 0.6 {
		t.Errorf("confidence = %v, want 0.6", candidate.Confidence)
	}
}

func TestSubtitleExtractSilenceBreak(t *testing.T) {
	cues := []subtitles.Cue{
		cue(2, 4, "Previously, on a show you have almost certainly forgotten."),
		cue(39, 41, "Morning. You look like you slept in the barn again."),
	}
	candidate, ok := newTestSubtitleExtractor().Extract(cues)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if candidate.EndSeconds != 39 {
		t.Errorf("end = %v, want 39 (dialogue resuming after the gap)", candidate.EndSeconds)
	}
}

func TestSubtitleExtractLateFirstCaption(t *testing.T) {
	cues := []subtitles.Cue{
		cue(52, 55, "Welcome back. We have a great deal of ground to cover."),
		cue(56, 58, "Then we should probably stop wasting time, shouldn't we?"),
	}
	candidate, ok := newTestSubtitleExtractor().Extract(cues)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if candidate.EndSeconds != 52 {
		t.Errorf("end = %v, want 52 (first caption past the minimum)", candidate.EndSeconds)
	}
}

func TestSubtitleExtractLyricHeavyOpeningRaisesConfidence(t *testing.T) {
	cues := []subtitles.Cue{
		cue(1, 3, "♪ Here we go ♪"),
		cue(4, 6, "♪ Down the road ♪"),
		cue(7, 9, "♪ Into the night ♪"),
		cue(10, 12, "♪ Hold on tight ♪"),
		cue(39, 41, "Morning. You look like you slept in the barn again."),
	}
	candidate, ok := newTestSubtitleExtractor().Extract(cues)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if candidate.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8 for a lyric-heavy opening", candidate.Confidence)
	}
	if candidate.Details["lyric_score"].(float64) <= 3 {
		t.Errorf("lyric_score = %v, want > 3", candidate.Details["lyric_score"])
	}
}

func TestSubtitleExtractFirstDialogueFallback(t *testing.T) {
	cues := []subtitles.Cue{
		cue(2, 3, "Hm."),
		cue(12, 13, "Wait."),
		cue(26, 27, "Shh."),
		cue(45, 48, "I can't believe you came all this way just to see me."),
	}
	candidate, ok := newTestSubtitleExtractor().Extract(cues)
	if !ok {
		t.Fatal("expected a candidate")
	}
	if candidate.EndSeconds != 45 {
		t.Errorf("end = %v, want 45 (first ordinary dialogue line)", candidate.EndSeconds)
	}
	if candidate.Details["reason"] != "first ordinary dialogue line" {
		t.Errorf("reason = %v", candidate.Details["reason"])
	}
}

func TestSubtitleExtractEmpty(t *testing.T) {
	if _, ok := newTestSubtitleExtractor().Extract(nil); ok {
		t.Fatal("no cues should produce no candidate")
	}
}

func TestDetectFromCuesFallsBackToDefault(t *testing.T) {
	extractor := newTestSubtitleExtractor()

	seconds, reason := extractor.DetectFromCues(nil)
	if seconds != 60 {
		t.Errorf("empty file: seconds = %v, want 60", seconds)
	}
	if reason == "" {
		t.Error("empty file: want an explanatory reason")
	}

	cues := []subtitles.Cue{
		cue(1, 2, "Hm."),
		cue(14, 15, "Wait."),
	}
	seconds, _ = extractor.DetectFromCues(cues)
	if seconds != 60 {
		t.Errorf("sparse captions: seconds = %v, want default 60", seconds)
	}
}

func TestDetectFromCuesDensity(t *testing.T) {
	cues := []subtitles.Cue{
		cue(30, 32, "So tell me what actually happened out there last night."),
		cue(33, 35, "I already told you everything I know about it, twice."),
		cue(36, 38, "Then tell me a third time, and slower than before."),
		cue(40, 42, "Fine, but you are not going to like any of it."),
	}
	seconds, _ := newTestSubtitleExtractor().DetectFromCues(cues)
	if seconds != 30 {
		t.Errorf("seconds = %v, want 30", seconds)
	}
}
