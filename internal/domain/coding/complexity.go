package coding

// Combined-score thresholds for the final complexity mapping.
const (
	complexityHighThreshold     = 8
	complexityModerateThreshold = 5
	complexityLowThreshold      = 2
)

// combineComplexity merges the extracted signals into one ordinal visit
// complexity via weighted thresholds. Monotonic: more of any signal never
// lowers the result.
func combineComplexity(problemCount, dataPoints int, risk Level, medChangeCount int) Level {
	score := 0

	switch {
	case problemCount >= 3:
		score += 3
	case problemCount >= 2:
		score += 2
	case problemCount >= 1:
		score++
	}

	switch {
	case dataPoints >= 4:
		score += 3
	case dataPoints >= 2:
		score += 2
	case dataPoints >= 1:
		score++
	}

	score += int(risk)

	switch {
	case medChangeCount >= 3:
		score += 2
	case medChangeCount >= 2:
		score++
	}

	switch {
	case score >= complexityHighThreshold:
		return LevelHigh
	case score >= complexityModerateThreshold:
		return LevelModerate
	case score >= complexityLowThreshold:
		return LevelLow
	default:
		return LevelMinimal
	}
}
