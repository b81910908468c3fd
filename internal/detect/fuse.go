package detect

import (
	"math"
	"sort"
)

// Result is the single answer a detection run produces. It always carries a
// usable intro end, even when every extractor abstained.
type Result struct {
	IntroEnd   float64
	OutroStart float64
	HasOutro   bool
	Confidence float64
	Method     Method
	Details    Details
}

// maxAveragedConfidence caps the confidence of a synthesized average so it
// never outranks direct high-confidence evidence.
const maxAveragedConfidence = 0.9

// Fuse combines candidate estimates into one final result. It is a pure
// function of its inputs: no candidate provenance beyond the values
// themselves influences the outcome, which keeps this stage testable without
// any external tool.
//
// Rules, in order: no candidates falls back to the default; a candidate at or
// above the confidence threshold wins outright; two or more weaker candidates
// are combined by confidence-weighted mean when that mean is in range;
// otherwise the default applies.
func Fuse(candidates []Candidate, bounds Bounds) Result {
	if len(candidates) == 0 {
		return defaultResult(bounds, "no evidence produced a candidate")
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	if top := sorted[0]; top.Confidence >= bounds.ConfidenceThreshold {
		return Result{
			IntroEnd:   top.EndSeconds,
			OutroStart: top.OutroStart,
			HasOutro:   top.HasOutro,
			Confidence: top.Confidence,
			Method:     top.Method,
			Details:    top.Details,
		}
	}

	if len(sorted) >= 2 {
		if result, ok := weightedAverage(sorted, bounds); ok {
			return result
		}
	}

	return defaultResult(bounds, "evidence too weak or contradictory")
}

func weightedAverage(sorted []Candidate, bounds Bounds) (Result, bool) {
	var totalWeight, weightedSum, confidenceSum float64
	for _, candidate := range sorted {
		totalWeight += candidate.Confidence
		weightedSum += candidate.EndSeconds * candidate.Confidence
		confidenceSum += candidate.Confidence
	}
	if totalWeight <= 0 {
		return Result{}, false
	}

	mean := weightedSum / totalWeight
	if !bounds.InRange(mean) {
		return Result{}, false
	}

	confidence := confidenceSum / float64(len(sorted))
	if confidence > maxAveragedConfidence {
		confidence = maxAveragedConfidence
	}

	combined := make([]Details, 0, len(sorted))
	for _, candidate := range sorted {
		combined = append(combined, Details{
			"method":      string(candidate.Method),
			"end_seconds": candidate.EndSeconds,
			"confidence":  candidate.Confidence,
		})
	}

	result := Result{
		IntroEnd:   math.Round(mean),
		Confidence: clampConfidence(confidence),
		Method:     MethodWeightedAverage,
		Details: Details{
			"combined":      combined,
			"weighted_mean": mean,
		},
	}

	// The representative outro comes from the candidate closest to the mean;
	// ties keep the earliest occurrence.
	if closest, ok := closestToMean(sorted, mean); ok && closest.HasOutro {
		result.OutroStart = closest.OutroStart
		result.HasOutro = true
	}
	return result, true
}

func closestToMean(candidates []Candidate, mean float64) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	best := candidates[0]
	bestDistance := math.Abs(best.EndSeconds - mean)
	for _, candidate := range candidates[1:] {
		distance := math.Abs(candidate.EndSeconds - mean)
		if distance < bestDistance {
			best = candidate
			bestDistance = distance
		}
	}
	return best, true
}

func defaultResult(bounds Bounds, reason string) Result {
	return Result{
		IntroEnd:   bounds.DefaultIntroSeconds,
		Confidence: 0.5,
		Method:     MethodDefault,
		Details:    Details{"reason": reason},
	}
}
