package ffmpeg

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BlackSegment is a run of near-zero-luminance frames, in seconds.
type BlackSegment struct {
	Start float64
	End   float64
}

// blackdetect prints all three values on one line:
// black_start:12.3 black_end:14.5 black_duration:2.2
var blackSegmentRe = regexp.MustCompile(`black_start:(\d+(?:\.\d+)?)\s+black_end:(\d+(?:\.\d+)?)`)

// BlackSegments runs blackdetect over the first window seconds and returns
// the reported segments in file order.
func (p *Prober) BlackSegments(ctx context.Context, path string, window float64, minSeconds float64, pixelThreshold float64) ([]BlackSegment, error) {
	filter := fmt.Sprintf("blackdetect=d=%s:pix_th=%s", formatSeconds(minSeconds), formatSeconds(pixelThreshold))
	output, err := p.run(ctx, path, window, "-an", "-vf", filter)
	if err != nil {
		return nil, err
	}
	return parseBlackSegments(output), nil
}

func parseBlackSegments(output string) []BlackSegment {
	var segments []BlackSegment
	for _, line := range strings.Split(output, "\n") {
		match := blackSegmentRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		start, errStart := strconv.ParseFloat(match[1], 64)
		end, errEnd := strconv.ParseFloat(match[2], 64)
		if errStart != nil || errEnd != nil || end < start {
			continue
		}
		segments = append(segments, BlackSegment{Start: start, End: end})
	}
	return segments
}
