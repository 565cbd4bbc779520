package coding

import "strings"

// countMedicationChanges detects medication changes from the structured
// medication-change lines plus the transcript. Each unique medication counts
// once; a multi-component insulin regimen earns one bonus point.
func countMedicationChanges(medicationChangeLines []string, transcript string) int {
	segments := gatherSegments(medicationChangeLines, transcript)

	meds := newCategoryAccumulator()
	for _, seg := range segments {
		if !medActionPattern.MatchString(seg) {
			continue
		}
		lower := strings.ToLower(seg)
		// Name and verb co-occur within the segment; order does not matter.
		for _, name := range medicationNames {
			if strings.Contains(lower, name) {
				meds.Mark(name)
			}
		}
	}

	// Generic fallback when the name table caught little: "(verb) (word)
	// (dose unit)" captures medications we do not have in the table.
	if meds.Count() < 2 {
		for _, seg := range segments {
			for _, m := range genericMedChangePattern.FindAllStringSubmatch(seg, -1) {
				word := strings.ToLower(m[1])
				if medStopwords[word] {
					continue
				}
				meds.Mark(word)
			}
		}
	}

	count := meds.Count()

	// Insulin titration across basal/bolus components is materially more
	// complex than a single dose change.
	if hasInsulinRegimen(segments) && containsInsulin(meds) {
		count++
	}

	// Floor of 1 when medication-change text was supplied but unparseable.
	// Policy choice: the note-structuring layer only emits these lines when
	// the provider dictated a change.
	if count == 0 && hasText(medicationChangeLines) {
		count = 1
	}
	return count
}

func gatherSegments(lines []string, transcript string) []string {
	segments := make([]string, 0, len(lines)+8)
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			segments = append(segments, l)
		}
	}
	for _, s := range splitSentences(transcript) {
		if strings.TrimSpace(s) != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// splitSentences breaks a transcript into rough sentence windows. Precision
// does not matter here, only that verb/name co-occurrence is tested locally
// rather than across the whole document.
func splitSentences(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == ';' || r == '\n'
	})
}

func hasInsulinRegimen(segments []string) bool {
	for _, seg := range segments {
		if anyMatch(insulinRegimenPatterns, seg) {
			return true
		}
	}
	return false
}

func containsInsulin(meds *categoryAccumulator) bool {
	for _, name := range meds.Categories() {
		if insulinFamily[name] {
			return true
		}
	}
	return false
}

func hasText(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}
