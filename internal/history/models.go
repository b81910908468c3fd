package history

import "time"

// Record is one persisted detection outcome. OutroStart is nil when no
// evidence carried an outro estimate.
type Record struct {
	ID           string
	MediaPath    string
	SubtitlePath string
	IntroEnd     float64
	OutroStart   *float64
	Confidence   float64
	Method       string
	Details      string
	CreatedAt    time.Time
}

// HasOutro reports whether the record carries an outro estimate.
func (r Record) HasOutro() bool {
	return r.OutroStart != nil
}
