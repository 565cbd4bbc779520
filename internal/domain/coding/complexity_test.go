package coding

import "testing"

func TestCombineComplexity(t *testing.T) {
	tests := []struct {
		name       string
		problems   int
		dataPoints int
		risk       Level
		medChanges int
		want       Level
	}{
		{"nothing documented", 0, 0, LevelMinimal, 0, LevelMinimal},
		{"single problem only", 1, 0, LevelMinimal, 0, LevelMinimal},
		{"problem plus one data point", 1, 1, LevelMinimal, 0, LevelLow},
		{"two problems two data points", 2, 2, LevelMinimal, 0, LevelLow},
		{"moderate threshold", 2, 2, LevelLow, 0, LevelModerate},
		{"med changes add a point", 2, 1, LevelMinimal, 2, LevelLow},
		{"three problems heavy workup", 3, 4, LevelMinimal, 0, LevelModerate},
		{"high threshold", 3, 4, LevelLow, 2, LevelHigh},
		{"high risk with thin documentation", 1, 1, LevelHigh, 3, LevelModerate},
		{"everything maxed", 5, 6, LevelHigh, 4, LevelHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := combineComplexity(tt.problems, tt.dataPoints, tt.risk, tt.medChanges)
			if got != tt.want {
				t.Errorf("combineComplexity(%d, %d, %s, %d) = %s, want %s",
					tt.problems, tt.dataPoints, tt.risk, tt.medChanges, got, tt.want)
			}
		})
	}
}

func TestCombineComplexity_Monotonic(t *testing.T) {
	base := combineComplexity(2, 2, LevelLow, 1)
	increments := []struct {
		name string
		got  Level
	}{
		{"more problems", combineComplexity(3, 2, LevelLow, 1)},
		{"more data points", combineComplexity(2, 4, LevelLow, 1)},
		{"higher risk", combineComplexity(2, 2, LevelModerate, 1)},
		{"more med changes", combineComplexity(2, 2, LevelLow, 3)},
	}
	for _, inc := range increments {
		if inc.got < base {
			t.Errorf("%s lowered complexity from %s to %s", inc.name, base, inc.got)
		}
	}
}
