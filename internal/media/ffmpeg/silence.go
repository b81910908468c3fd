package ffmpeg

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SilenceInterval is a closed audio region below the silencedetect noise
// floor, in seconds from the start of the file.
type SilenceInterval struct {
	Start float64
	End   float64
}

// Duration returns the interval length in seconds.
func (s SilenceInterval) Duration() float64 {
	return s.End - s.Start
}

var (
	silenceStartRe = regexp.MustCompile(`silence_start:\s*(-?\d+(?:\.\d+)?)`)
	silenceEndRe   = regexp.MustCompile(`silence_end:\s*(-?\d+(?:\.\d+)?)`)
)

// DetectSilence runs silencedetect over the first window seconds and returns
// the closed silence intervals in file order. A trailing silence_start with no
// matching silence_end (silence running past the window) is discarded.
func (p *Prober) DetectSilence(ctx context.Context, path string, window float64, noiseDB int, minSeconds float64) ([]SilenceInterval, error) {
	filter := fmt.Sprintf("silencedetect=n=%ddB:d=%s", noiseDB, formatSeconds(minSeconds))
	output, err := p.run(ctx, path, window, "-vn", "-af", filter)
	if err != nil {
		return nil, err
	}
	return parseSilence(output), nil
}

func parseSilence(output string) []SilenceInterval {
	var intervals []SilenceInterval
	var pendingStart *float64

	for _, line := range strings.Split(output, "\n") {
		if match := silenceStartRe.FindStringSubmatch(line); match != nil {
			if value, err := strconv.ParseFloat(match[1], 64); err == nil {
				start := value
				if start < 0 {
					start = 0
				}
				pendingStart = &start
			}
			continue
		}
		if match := silenceEndRe.FindStringSubmatch(line); match != nil {
			if pendingStart == nil {
				continue
			}
			if value, err := strconv.ParseFloat(match[1], 64); err == nil && value >= *pendingStart {
				intervals = append(intervals, SilenceInterval{Start: *pendingStart, End: value})
			}
			pendingStart = nil
		}
	}
	return intervals
}
