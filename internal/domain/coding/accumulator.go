package coding

// categoryAccumulator is an ordered once-per-category set. Every counter in
// the engine uses one to guarantee a named clinical fact scores at most once
// per encounter, and to report the categories that fired in first-seen order
// for justification text.
type categoryAccumulator struct {
	seen  map[string]bool
	order []string
}

func newCategoryAccumulator() *categoryAccumulator {
	return &categoryAccumulator{seen: make(map[string]bool)}
}

// Mark records the category and reports whether this was its first mention.
func (a *categoryAccumulator) Mark(category string) bool {
	if a.seen[category] {
		return false
	}
	a.seen[category] = true
	a.order = append(a.order, category)
	return true
}

// Has reports whether the category has already been counted.
func (a *categoryAccumulator) Has(category string) bool {
	return a.seen[category]
}

// Count returns the number of distinct categories recorded.
func (a *categoryAccumulator) Count() int {
	return len(a.order)
}

// Categories returns the recorded categories in first-seen order.
func (a *categoryAccumulator) Categories() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}
