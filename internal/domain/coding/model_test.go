package coding

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelMinimal, "minimal"},
		{LevelLow, "low"},
		{LevelModerate, "moderate"},
		{LevelHigh, "high"},
		{Level(99), "minimal"},
		{Level(-1), "minimal"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", int(tt.level), got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"minimal", "low", "moderate", "high"} {
		if got := ParseLevel(name); got.String() != name {
			t.Errorf("ParseLevel(%q) = %s", name, got)
		}
	}
	if got := ParseLevel("critical"); got != LevelMinimal {
		t.Errorf("unknown level should map to minimal, got %s", got)
	}
}

func TestLevelJSON(t *testing.T) {
	data, err := json.Marshal(LevelModerate)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"moderate"` {
		t.Errorf("marshal = %s", data)
	}

	var l Level
	if err := json.Unmarshal([]byte(`"high"`), &l); err != nil {
		t.Fatal(err)
	}
	if l != LevelHigh {
		t.Errorf("unmarshal = %s, want high", l)
	}

	if err := json.Unmarshal([]byte(`42`), &l); err == nil {
		t.Error("expected error for non-string level")
	}
}

func TestCategoryAccumulator(t *testing.T) {
	acc := newCategoryAccumulator()
	if !acc.Mark("diabetes") {
		t.Error("first mark should return true")
	}
	if acc.Mark("diabetes") {
		t.Error("second mark should return false")
	}
	if !acc.Mark("hypertension") {
		t.Error("distinct category should mark")
	}
	if !acc.Has("diabetes") || acc.Has("asthma") {
		t.Error("Has disagrees with marked state")
	}
	if acc.Count() != 2 {
		t.Errorf("Count() = %d, want 2", acc.Count())
	}
	want := []string{"diabetes", "hypertension"}
	if got := acc.Categories(); !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestCategoryAccumulator_CategoriesReturnsCopy(t *testing.T) {
	acc := newCategoryAccumulator()
	acc.Mark("a")
	got := acc.Categories()
	got[0] = "mutated"
	if acc.Categories()[0] != "a" {
		t.Error("Categories() must return a copy")
	}
}
