package ffprobe

import "testing"

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "subtitle"},
		},
		Format: Format{Duration: "1425.7"},
	}
	if !result.HasVideo() {
		t.Fatal("expected video stream")
	}
	if !result.HasAudio() {
		t.Fatal("expected audio stream")
	}
	if result.DurationSeconds() != 1425.7 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
}

func TestDurationHandlesInvalidValues(t *testing.T) {
	for _, value := range []string{"", "bad", "-3"} {
		result := Result{Format: Format{Duration: value}}
		if result.DurationSeconds() != 0 {
			t.Fatalf("duration %q should parse to 0, got %v", value, result.DurationSeconds())
		}
	}
}
