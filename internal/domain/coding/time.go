package coding

import "strconv"

// Documented visit time is only trusted inside this window; anything outside
// is treated as undocumented.
const (
	minDocumentedMinutes = 5
	maxDocumentedMinutes = 120
)

// extractTimeSpent pulls a documented visit duration from free text. The
// alternatives in timePatterns are tried in order and the first match wins.
// An out-of-range value in the winning alternative means the time
// documentation is suspect, so it returns nil rather than consulting later
// alternatives.
func extractTimeSpent(transcript string) *int {
	for _, p := range timePatterns {
		m := p.FindStringSubmatch(transcript)
		if m == nil {
			continue
		}
		minutes, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if minutes < minDocumentedMinutes || minutes > maxDocumentedMinutes {
			return nil
		}
		return &minutes
	}
	return nil
}
