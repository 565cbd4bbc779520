package coding

import "strings"

// countProblems counts distinct clinical problems addressed in the
// assessment. Detection strategies in priority order: diagnosis codes,
// explicit list markup, grouped condition keywords.
func countProblems(assessmentLines []string) int {
	joined := strings.TrimSpace(strings.Join(assessmentLines, "\n"))
	if joined == "" {
		return 0
	}

	// 1. Diagnosis codes. Exact-token dedup; a coded assessment is the most
	// reliable signal, so it wins outright.
	codes := newCategoryAccumulator()
	for _, tok := range diagnosisCodePattern.FindAllString(joined, -1) {
		if diagnosisCodeStoplist[tok] {
			continue
		}
		codes.Mark(tok)
	}
	if codes.Count() > 0 {
		count := codes.Count()
		// At most one extra point for an acute symptom group documented
		// alongside the coded problems.
		for _, g := range symptomGroups {
			if g.matches(joined) {
				count++
				break
			}
		}
		return count
	}

	// 2. Explicit list markup: each bullet or numbered line is one problem.
	listItems := 0
	for _, line := range assessmentLines {
		for _, sub := range strings.Split(line, "\n") {
			if listMarkerPattern.MatchString(sub) {
				listItems++
			}
		}
	}
	if listItems > 0 {
		return listItems
	}

	// 3. Grouped keywords, one point per distinct group no matter how many
	// synonyms appear.
	groups := newCategoryAccumulator()
	for _, g := range conditionGroups {
		if g.matches(joined) {
			groups.Mark(g.name)
		}
	}
	for _, g := range symptomGroups {
		if g.matches(joined) {
			groups.Mark(g.name)
		}
	}
	if groups.Count() == 0 {
		// Assessment text exists but matched nothing we know; assume the
		// provider addressed at least one problem.
		return 1
	}
	return groups.Count()
}

// countChronicConditions counts distinct chronic conditions mentioned across
// the supplied texts. Used for the risk burden score and the E/M
// significance gate.
func countChronicConditions(texts ...string) int {
	joined := strings.Join(texts, "\n")
	acc := newCategoryAccumulator()
	for _, g := range chronicConditionPatterns {
		if g.matches(joined) {
			acc.Mark(g.name)
		}
	}
	return acc.Count()
}
