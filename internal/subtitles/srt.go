package subtitles

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"introcut/internal/services"
)

// Cue is a single SRT caption with times in seconds.
type Cue struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// Duration returns the cue length in seconds.
func (c Cue) Duration() float64 {
	return c.End - c.Start
}

// Parse decodes SRT content into cues ordered by start time. Malformed blocks
// are skipped; cues with identical start times keep their input order.
func Parse(content string) []Cue {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(content), "\n\n")

	cues := make([]Cue, 0, len(blocks))
	for _, block := range blocks {
		cue, err := parseBlock(block)
		if err != nil {
			continue
		}
		cues = append(cues, cue)
	}

	sort.SliceStable(cues, func(i, j int) bool {
		return cues[i].Start < cues[j].Start
	})
	return cues
}

// ParseFile reads and decodes an SRT file. Failures are tagged with
// services.ErrParse so callers can classify them.
func ParseFile(path string) ([]Cue, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrParse, "subtitles", "read srt", path, err)
	}
	return Parse(string(data)), nil
}

func parseBlock(block string) (Cue, error) {
	lines := strings.Split(strings.TrimSpace(block), "\n")
	if len(lines) < 2 {
		return Cue{}, fmt.Errorf("short block")
	}

	// The index line is optional; some files start blocks at the timecode.
	index := 0
	timecodeLine := 0
	if !strings.Contains(lines[0], "-->") {
		parsed, err := strconv.Atoi(strings.TrimSpace(lines[0]))
		if err != nil {
			return Cue{}, fmt.Errorf("invalid index %q", lines[0])
		}
		index = parsed
		timecodeLine = 1
	}
	if len(lines) < timecodeLine+2 {
		return Cue{}, fmt.Errorf("short block")
	}

	parts := strings.Split(lines[timecodeLine], "-->")
	if len(parts) != 2 {
		return Cue{}, fmt.Errorf("invalid timecode line %q", lines[timecodeLine])
	}
	start, err := ParseTimestamp(parts[0])
	if err != nil {
		return Cue{}, err
	}
	end, err := ParseTimestamp(parts[1])
	if err != nil {
		return Cue{}, err
	}
	if end < start {
		return Cue{}, fmt.Errorf("cue ends before it starts")
	}

	return Cue{
		Index: index,
		Start: start,
		End:   end,
		Text:  strings.Join(lines[timecodeLine+1:], "\n"),
	}, nil
}

// ParseTimestamp converts an SRT timecode (HH:MM:SS,mmm) to seconds. A period
// is accepted in place of the comma.
func ParseTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	value = strings.ReplaceAll(value, ".", ",")
	timeParts := strings.Split(value, ",")
	if len(timeParts) != 2 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hms := strings.Split(timeParts[0], ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := strconv.Atoi(timeParts[1])
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	return float64(hours*3600+minutes*60+seconds) + float64(millis)/1000, nil
}

// FormatTimestamp renders seconds as an SRT timecode (HH:MM:SS,mmm).
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(math.Round(seconds * 1000))
	hours := totalMillis / 3_600_000
	totalMillis -= hours * 3_600_000
	minutes := totalMillis / 60_000
	totalMillis -= minutes * 60_000
	secs := totalMillis / 1000
	millis := totalMillis - secs*1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

// Render serializes cues back to SRT text. Cue indexes are written as stored;
// callers that need sequential numbering should renumber first.
func Render(cues []Cue) string {
	var builder strings.Builder
	for i, cue := range cues {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(strconv.Itoa(cue.Index))
		builder.WriteString("\n")
		builder.WriteString(FormatTimestamp(cue.Start))
		builder.WriteString(" --> ")
		builder.WriteString(FormatTimestamp(cue.End))
		builder.WriteString("\n")
		builder.WriteString(cue.Text)
		builder.WriteString("\n")
	}
	return builder.String()
}
