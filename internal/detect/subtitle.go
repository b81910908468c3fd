package detect

import (
	"fmt"
	"log/slog"
	"strings"

	"introcut/internal/language"
	"introcut/internal/logging"
	"introcut/internal/subtitles"
)

const (
	// dialogueWindowSeconds is the sliding window for caption density.
	dialogueWindowSeconds = 10.0
	// shortCaptionRunes filters sound-effect captions out of density counts.
	shortCaptionRunes = 5
	// dialogueRunes is the length above which a caption reads as a full
	// dialogue line rather than a lyric fragment.
	dialogueRunes = 20
	// lyricScanCaptions is how many leading captions the lyric/credit scorer
	// examines.
	lyricScanCaptions = 20
)

// SubtitleExtractor derives an intro-end candidate from caption timing and
// text. Three sub-strategies run in preference order: dialogue density,
// silence break, and the lyric/credit scorer.
type SubtitleExtractor struct {
	bounds     Bounds
	minDensity float64
	gapSeconds float64
	keywords   language.Keywords
	logger     *slog.Logger
}

// NewSubtitleExtractor wires a subtitle extractor. languageCode selects the
// credit keyword table ("en", "zh", ...).
func NewSubtitleExtractor(bounds Bounds, minDensity, gapSeconds float64, languageCode string, logger *slog.Logger) *SubtitleExtractor {
	return &SubtitleExtractor{
		bounds:     bounds,
		minDensity: minDensity,
		gapSeconds: gapSeconds,
		keywords:   language.For(languageCode),
		logger:     logging.WithComponent(logger, "subtitle-extractor"),
	}
}

// Extract produces at most one candidate from parsed cues. The dialogue
// density result is preferred when in range, then the silence break, then the
// lyric/credit scorer's first ordinary dialogue line.
func (e *SubtitleExtractor) Extract(cues []subtitles.Cue) (Candidate, bool) {
	if len(cues) == 0 {
		return Candidate{}, false
	}

	lyricScore, creditScore := e.scoreOpening(cues)
	confidence := 0.6
	if lyricScore > 3 || creditScore > 2 {
		// A lyric- or credit-heavy opening confirms the file really has an
		// intro segment.
		confidence = 0.8
	}

	if seconds, reason, ok := e.dialogueDensityEnd(cues); ok && e.bounds.InRange(seconds) {
		return NewCandidate(seconds, confidence, MethodSubtitleDialogue, Details{
			"reason":       reason,
			"lyric_score":  lyricScore,
			"credit_score": creditScore,
		}), true
	}

	if seconds, reason, ok := e.silenceBreakEnd(cues); ok && e.bounds.InRange(seconds) {
		return NewCandidate(seconds, confidence, MethodSubtitleDialogue, Details{
			"reason":       reason,
			"lyric_score":  lyricScore,
			"credit_score": creditScore,
		}), true
	}

	if cue, ok := e.firstDialogue(cues); ok {
		return NewCandidate(cue.Start, confidence, MethodSubtitleDialogue, Details{
			"reason":         "first ordinary dialogue line",
			"lyric_score":    lyricScore,
			"credit_score":   creditScore,
			"first_dialogue": snippet(cue.Text),
		}), true
	}

	e.logger.Debug("no subtitle strategy produced an in-range result")
	return Candidate{}, false
}

// DetectFromCues is the caption-only entry point: it always produces an
// answer, falling back to the default intro duration with an explanatory
// reason when no strategy lands in range.
func (e *SubtitleExtractor) DetectFromCues(cues []subtitles.Cue) (float64, string) {
	if len(cues) == 0 {
		return e.bounds.DefaultIntroSeconds, "subtitle file empty, using default"
	}
	if seconds, reason, ok := e.dialogueDensityEnd(cues); ok && e.bounds.InRange(seconds) {
		return seconds, reason
	}
	if seconds, reason, ok := e.silenceBreakEnd(cues); ok && e.bounds.InRange(seconds) {
		return seconds, reason
	}
	return e.bounds.DefaultIntroSeconds, "no strategy in range, using default"
}

// dialogueDensityEnd slides a fixed window across caption start times and
// reports the start of the first window dense enough to be regular dialogue.
func (e *SubtitleExtractor) dialogueDensityEnd(cues []subtitles.Cue) (float64, string, bool) {
	windowStart := 0.0
	count := 0

	for _, cue := range cues {
		for cue.Start >= windowStart+dialogueWindowSeconds {
			if float64(count)/dialogueWindowSeconds >= e.minDensity {
				return windowStart, fmt.Sprintf("dense dialogue begins at %.0f seconds", windowStart), true
			}
			windowStart += dialogueWindowSeconds
			count = 0
		}
		if cue.Start >= windowStart && len([]rune(strings.TrimSpace(cue.Text))) > shortCaptionRunes {
			count++
		}
	}
	return 0, "", false
}

// silenceBreakEnd looks for the first long caption-free stretch: either
// before the first caption or between consecutive captions.
func (e *SubtitleExtractor) silenceBreakEnd(cues []subtitles.Cue) (float64, string, bool) {
	first := cues[0].Start
	if first >= e.bounds.MinIntroSeconds {
		return first, fmt.Sprintf("first dialogue appears at %.0f seconds", first), true
	}

	for i := 0; i+1 < len(cues); i++ {
		gap := cues[i+1].Start - cues[i].End
		if gap >= e.gapSeconds {
			return cues[i+1].Start, fmt.Sprintf("dialogue resumes after a %.0f second gap", gap), true
		}
	}
	return 0, "", false
}

// scoreOpening counts lyric and credit markers over the leading captions.
// Consecutive short captions also nudge the lyric score; theme songs read as
// runs of short lines.
func (e *SubtitleExtractor) scoreOpening(cues []subtitles.Cue) (float64, float64) {
	var lyricScore, creditScore float64
	limit := len(cues)
	if limit > lyricScanCaptions {
		limit = lyricScanCaptions
	}
	for i := 0; i < limit; i++ {
		text := cues[i].Text
		if e.keywords.IsLyric(text) {
			lyricScore++
		}
		if e.keywords.IsCredit(text) {
			creditScore++
		}
		if i > 0 && len([]rune(text)) < dialogueRunes && len([]rune(cues[i-1].Text)) < dialogueRunes {
			lyricScore += 0.5
		}
	}
	return lyricScore, creditScore
}

// firstDialogue finds the first caption that reads like ordinary dialogue:
// long enough, punctuated, not a lyric, and at or past the minimum intro
// duration.
func (e *SubtitleExtractor) firstDialogue(cues []subtitles.Cue) (subtitles.Cue, bool) {
	for _, cue := range cues {
		if cue.Start < e.bounds.MinIntroSeconds {
			continue
		}
		if len([]rune(cue.Text)) <= dialogueRunes {
			continue
		}
		if !language.HasSentencePunctuation(cue.Text) {
			continue
		}
		if e.keywords.IsLyric(cue.Text) {
			continue
		}
		return cue, true
	}
	return subtitles.Cue{}, false
}

func snippet(text string) string {
	runes := []rune(text)
	if len(runes) <= 50 {
		return text
	}
	return string(runes[:50])
}
