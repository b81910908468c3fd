package ffmpeg

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// FrameSample describes one sampled frame: its timestamp, average luminance
// (0-255), and the average luminance of its edge map (a text-likelihood
// proxy; credit overlays produce dense edges).
type FrameSample struct {
	Seconds     float64
	Luminance   float64
	EdgeDensity float64
}

var yavgRe = regexp.MustCompile(`lavfi\.signalstats\.YAVG=(\d+(?:\.\d+)?)`)

// SampleFrames samples one frame per second over the first window seconds and
// returns per-frame luminance and edge statistics. Two ffmpeg passes are
// used: signalstats on the raw frames, then on the edge-detected frames.
func (p *Prober) SampleFrames(ctx context.Context, path string, window float64) ([]FrameSample, error) {
	rawOutput, err := p.run(ctx, path, window, "-an", "-vf", "fps=1,signalstats,metadata=print")
	if err != nil {
		return nil, err
	}
	luminance := parseFrameStats(rawOutput)

	edgeOutput, err := p.run(ctx, path, window, "-an", "-vf", "fps=1,edgedetect,signalstats,metadata=print")
	if err != nil {
		return nil, err
	}
	edges := parseFrameStats(edgeOutput)

	samples := make([]FrameSample, 0, len(luminance))
	for i, stat := range luminance {
		sample := FrameSample{Seconds: stat.seconds, Luminance: stat.yavg}
		if i < len(edges) {
			sample.EdgeDensity = edges[i].yavg
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

type frameStat struct {
	seconds float64
	yavg    float64
}

func parseFrameStats(output string) []frameStat {
	var stats []frameStat
	pending := -1.0

	for _, line := range strings.Split(output, "\n") {
		if match := ptsTimeRe.FindStringSubmatch(line); match != nil {
			if value, err := strconv.ParseFloat(match[1], 64); err == nil {
				pending = value
			}
			continue
		}
		if match := yavgRe.FindStringSubmatch(line); match != nil && pending >= 0 {
			if value, err := strconv.ParseFloat(match[1], 64); err == nil {
				stats = append(stats, frameStat{seconds: pending, yavg: value})
			}
			pending = -1
		}
	}
	return stats
}
