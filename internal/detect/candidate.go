package detect

// Method identifies the heuristic that produced a candidate or result.
type Method string

const (
	MethodAudioSilence     Method = "audio-silence"
	MethodMusicAnalysis    Method = "music-analysis"
	MethodBlackScreen      Method = "black-screen"
	MethodSceneDensityDrop Method = "scene-density-drop"
	MethodSceneGap         Method = "scene-gap"
	MethodTextDensity      Method = "text-density"
	MethodSubtitleDialogue Method = "subtitle-dialogue"
	MethodWeightedAverage  Method = "weighted-average"
	MethodDefault          Method = "default"
)

// Details is the free-form diagnostic payload attached to a candidate. The
// fusion engine never branches on its contents; it exists for observability.
type Details map[string]any

// Candidate is one heuristic's proposed intro end. Candidates are immutable
// once constructed and are the unit passed between extractor, scorer, and
// fusion stages.
type Candidate struct {
	EndSeconds float64
	OutroStart float64
	HasOutro   bool
	Confidence float64
	Method     Method
	Details    Details
}

// NewCandidate builds a candidate with its confidence clamped into (0, 1].
func NewCandidate(endSeconds, confidence float64, method Method, details Details) Candidate {
	if endSeconds < 0 {
		endSeconds = 0
	}
	return Candidate{
		EndSeconds: endSeconds,
		Confidence: clampConfidence(confidence),
		Method:     method,
		Details:    details,
	}
}

func clampConfidence(confidence float64) float64 {
	if confidence > 1 {
		return 1
	}
	if confidence <= 0 {
		return 0.05
	}
	return confidence
}

// Bounds constrains which measurements are eligible to become candidates and
// gates acceptance in the fusion engine. Immutable for the lifetime of a
// detection run.
type Bounds struct {
	MinIntroSeconds     float64
	MaxIntroSeconds     float64
	DefaultIntroSeconds float64
	ConfidenceThreshold float64
}

// InRange reports whether seconds lies inside [min, max].
func (b Bounds) InRange(seconds float64) bool {
	return seconds >= b.MinIntroSeconds && seconds <= b.MaxIntroSeconds
}
