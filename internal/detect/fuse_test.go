package detect

import (
	"math"
	"testing"
)

func testBounds() Bounds {
	return Bounds{
		MinIntroSeconds:     20,
		MaxIntroSeconds:     120,
		DefaultIntroSeconds: 60,
		ConfidenceThreshold: 0.7,
	}
}

func TestFuseNoCandidates(t *testing.T) {
	result := Fuse(nil, testBounds())
	if result.Method != MethodDefault {
		t.Fatalf("method = %q, want %q", result.Method, MethodDefault)
	}
	if result.IntroEnd != 60 {
		t.Errorf("intro end = %v, want 60", result.IntroEnd)
	}
	if result.Confidence != 0.5 {
		t.Errorf("confidence = %v, want 0.5", result.Confidence)
	}
	if result.Details["reason"] == nil {
		t.Error("default result should explain itself")
	}
}

func TestFuseConfidentCandidateWinsVerbatim(t *testing.T) {
	candidates := []Candidate{
		NewCandidate(55, 0.6, MethodSubtitleDialogue, nil),
		NewCandidate(42, 0.8, MethodAudioSilence, Details{"silence_end": 42.0}),
	}
	result := Fuse(candidates, testBounds())
	if result.Method != MethodAudioSilence {
		t.Fatalf("method = %q, want %q", result.Method, MethodAudioSilence)
	}
	if result.IntroEnd != 42 {
		t.Errorf("intro end = %v, want 42", result.IntroEnd)
	}
	if result.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", result.Confidence)
	}
	if result.Details["silence_end"] != 42.0 {
		t.Error("winner's details should be carried through unchanged")
	}
}

func TestFuseWeightedAverage(t *testing.T) {
	candidates := []Candidate{
		NewCandidate(40, 0.6, MethodSceneGap, nil),
		NewCandidate(60, 0.3, MethodSubtitleDialogue, nil),
	}
	result := Fuse(candidates, testBounds())
	if result.Method != MethodWeightedAverage {
		t.Fatalf("method = %q, want %q", result.Method, MethodWeightedAverage)
	}
	// (40*0.6 + 60*0.3) / 0.9 = 46.67, rounded.
	if result.IntroEnd != 47 {
		t.Errorf("intro end = %v, want 47", result.IntroEnd)
	}
	if math.Abs(result.Confidence-0.45) > 1e-9 {
		t.Errorf("confidence = %v, want 0.45", result.Confidence)
	}
	combined, ok := result.Details["combined"].([]Details)
	if !ok || len(combined) != 2 {
		t.Fatalf("combined details = %v, want 2 entries", result.Details["combined"])
	}
}

func TestFuseAverageConfidenceCapped(t *testing.T) {
	bounds := testBounds()
	bounds.ConfidenceThreshold = 0.99
	candidates := []Candidate{
		NewCandidate(40, 0.95, MethodBlackScreen, nil),
		NewCandidate(44, 0.95, MethodAudioSilence, nil),
	}
	result := Fuse(candidates, bounds)
	if result.Method != MethodWeightedAverage {
		t.Fatalf("method = %q, want %q", result.Method, MethodWeightedAverage)
	}
	if result.Confidence != 0.9 {
		t.Errorf("confidence = %v, want capped 0.9", result.Confidence)
	}
}

func TestFuseOrderIndependent(t *testing.T) {
	a := NewCandidate(40, 0.6, MethodSceneGap, nil)
	b := NewCandidate(60, 0.3, MethodSubtitleDialogue, nil)
	c := NewCandidate(50, 0.5, MethodMusicAnalysis, nil)

	forward := Fuse([]Candidate{a, b, c}, testBounds())
	reversed := Fuse([]Candidate{c, b, a}, testBounds())

	if forward.IntroEnd != reversed.IntroEnd {
		t.Errorf("intro end order-dependent: %v vs %v", forward.IntroEnd, reversed.IntroEnd)
	}
	if forward.Confidence != reversed.Confidence {
		t.Errorf("confidence order-dependent: %v vs %v", forward.Confidence, reversed.Confidence)
	}
	if forward.Method != reversed.Method {
		t.Errorf("method order-dependent: %q vs %q", forward.Method, reversed.Method)
	}
}

func TestFuseOutOfRangeMeanFallsBackToDefault(t *testing.T) {
	candidates := []Candidate{
		NewCandidate(5, 0.6, MethodSceneGap, nil),
		NewCandidate(10, 0.6, MethodSubtitleDialogue, nil),
	}
	result := Fuse(candidates, testBounds())
	if result.Method != MethodDefault {
		t.Fatalf("method = %q, want %q", result.Method, MethodDefault)
	}
	if result.IntroEnd != 60 {
		t.Errorf("intro end = %v, want 60", result.IntroEnd)
	}
}

func TestFuseSingleWeakCandidateFallsBackToDefault(t *testing.T) {
	result := Fuse([]Candidate{NewCandidate(50, 0.6, MethodSceneGap, nil)}, testBounds())
	if result.Method != MethodDefault {
		t.Fatalf("method = %q, want %q", result.Method, MethodDefault)
	}
}

func TestFuseOutroFromCandidateClosestToMean(t *testing.T) {
	near := Candidate{EndSeconds: 48, OutroStart: 1260, HasOutro: true, Confidence: 0.5, Method: MethodBlackScreen}
	far := Candidate{EndSeconds: 80, OutroStart: 1300, HasOutro: true, Confidence: 0.3, Method: MethodSceneGap}
	result := Fuse([]Candidate{far, near}, testBounds())
	if result.Method != MethodWeightedAverage {
		t.Fatalf("method = %q, want %q", result.Method, MethodWeightedAverage)
	}
	if !result.HasOutro {
		t.Fatal("outro should survive averaging")
	}
	if result.OutroStart != 1260 {
		t.Errorf("outro start = %v, want 1260 from the candidate nearest the mean", result.OutroStart)
	}
}
