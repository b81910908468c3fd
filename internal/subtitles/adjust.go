package subtitles

import (
	"fmt"
	"os"
)

// Adjust shifts every cue earlier by offset seconds, clamping start times at
// zero. Cues whose original end time falls at or before the offset belonged
// wholly to the removed intro and are dropped. Surviving cues are renumbered
// from 1.
func Adjust(cues []Cue, offset float64) []Cue {
	adjusted := make([]Cue, 0, len(cues))
	for _, cue := range cues {
		if cue.End <= offset {
			continue
		}
		start := cue.Start - offset
		if start < 0 {
			start = 0
		}
		adjusted = append(adjusted, Cue{
			Index: len(adjusted) + 1,
			Start: start,
			End:   cue.End - offset,
			Text:  cue.Text,
		})
	}
	return adjusted
}

// AdjustFile rewrites an SRT file with its timeline shifted earlier by offset
// seconds. When outputPath is empty the input file is overwritten.
func AdjustFile(inputPath, outputPath string, offset float64) (string, error) {
	cues, err := ParseFile(inputPath)
	if err != nil {
		return "", err
	}

	if outputPath == "" {
		outputPath = inputPath
	}
	if err := os.WriteFile(outputPath, []byte(Render(Adjust(cues, offset))), 0o644); err != nil {
		return "", fmt.Errorf("write srt: %w", err)
	}
	return outputPath, nil
}
