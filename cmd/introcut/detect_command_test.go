package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDetectSubtitlesOnly(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "episode.srt")
	fixture := `1
00:00:45,000 --> 00:00:48,000
Welcome back. We have a great deal of ground to cover.
`
	if err := os.WriteFile(input, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, _, err := runCLI(t, []string{"detect", input, "--subtitles-only"}, writeTestConfig(t))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	requireContains(t, out, "00:00:45,000")
}

func TestDetectSubtitlesOnlyNeedsSubtitleFile(t *testing.T) {
	if _, _, err := runCLI(t, []string{"detect", "episode.mkv", "--subtitles-only"}, writeTestConfig(t)); err == nil {
		t.Fatal("expected an error when no subtitle file is available")
	}
}
