package ffmpeg

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ptsTimeRe = regexp.MustCompile(`pts_time:(\d+(?:\.\d+)?)`)

// SceneChanges runs the scene-change select filter over the first window
// seconds and returns the change timestamps in ascending order.
func (p *Prober) SceneChanges(ctx context.Context, path string, window float64, threshold float64) ([]float64, error) {
	filter := fmt.Sprintf("select='gt(scene,%s)',metadata=print", formatSeconds(threshold))
	output, err := p.run(ctx, path, window, "-an", "-vf", filter)
	if err != nil {
		return nil, err
	}
	return parseSceneTimes(output), nil
}

func parseSceneTimes(output string) []float64 {
	var times []float64
	for _, line := range strings.Split(output, "\n") {
		match := ptsTimeRe.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if value, err := strconv.ParseFloat(match[1], 64); err == nil {
			times = append(times, value)
		}
	}
	return times
}
