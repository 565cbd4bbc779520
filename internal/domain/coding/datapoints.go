package coding

import "strings"

// Flat CMS-style category weights. External record review is worth more than
// any single test ordered.
const (
	externalRecordPoints = 2
	coordinationPoints   = 1
	historianPoints      = 1
	labValueBonusPoints  = 1
)

// countDataPoints scores distinct categories of data reviewed or ordered.
// Plan lines and the raw transcript are searched as one body of text, so a
// test mentioned in both contributes exactly once.
func countDataPoints(planLines []string, transcript string) int {
	combined := strings.Join(planLines, "\n") + "\n" + transcript

	acc := newCategoryAccumulator()
	points := 0

	for _, g := range labGroups {
		if g.matches(combined) && acc.Mark("lab:"+g.name) {
			points++
		}
	}
	for _, g := range imagingGroups {
		if g.matches(combined) && acc.Mark("imaging:"+g.name) {
			points++
		}
	}
	if anyMatch(externalRecordPatterns, combined) && acc.Mark("external records") {
		points += externalRecordPoints
	}
	if anyMatch(coordinationPatterns, combined) && acc.Mark("provider coordination") {
		points += coordinationPoints
	}
	if anyMatch(historianPatterns, combined) && acc.Mark("independent historian") {
		points += historianPoints
	}
	// Documented specific lab values earn a bonus on top of the ordering
	// point: reviewing a result is more work than ordering the test.
	if labValuePattern.MatchString(combined) && acc.Mark("documented lab values") {
		points += labValueBonusPoints
	}

	return points
}
