package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const adjustFixture = `1
00:00:10,000 --> 00:00:12,000
Theme song line

2
00:01:05,000 --> 00:01:08,000
First real dialogue.
`

func TestSubtitlesAdjustWritesOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "episode.srt")
	if err := os.WriteFile(input, []byte(adjustFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	output := filepath.Join(dir, "adjusted.srt")

	out, _, err := runCLI(t, []string{"subtitles", "adjust", input, "--offset", "60", "--output", output}, "")
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	requireContains(t, out, "Wrote adjusted subtitles")

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	rendered := string(data)
	if strings.Contains(rendered, "Theme song line") {
		t.Error("cue inside the removed intro should be dropped")
	}
	requireContains(t, rendered, "00:00:05,000 --> 00:00:08,000")
	requireContains(t, rendered, "First real dialogue.")
}

func TestSubtitlesAdjustRejectsNonPositiveOffset(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "episode.srt")
	if err := os.WriteFile(input, []byte(adjustFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, _, err := runCLI(t, []string{"subtitles", "adjust", input, "--offset", "0"}, ""); err == nil {
		t.Fatal("expected an error for a zero offset")
	}
}

func TestSubtitlesDetect(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "episode.srt")
	fixture := `1
00:00:52,000 --> 00:00:55,000
Welcome back. We have a great deal of ground to cover.
`
	if err := os.WriteFile(input, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, _, err := runCLI(t, []string{"subtitles", "detect", input}, writeTestConfig(t))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	requireContains(t, out, "00:00:52,000")
	requireContains(t, out, "Reason:")
}

func TestSubtitlesDetectJSON(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "episode.srt")
	fixture := `1
00:00:52,000 --> 00:00:55,000
Welcome back. We have a great deal of ground to cover.
`
	if err := os.WriteFile(input, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	out, _, err := runCLI(t, []string{"subtitles", "detect", input, "--json"}, writeTestConfig(t))
	if err != nil {
		t.Fatalf("detect: %v", err)
	}
	requireContains(t, out, `"intro_end_seconds": 52`)
	requireContains(t, out, `"reason"`)
}
