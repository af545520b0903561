package catalog

import "testing"

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"code-quality", "Code Quality"},
		{"api_helper", "Api Helper"},
		{"reviewer", "Reviewer"},
		{"Already", "Already"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.in); got != tc.want {
			t.Fatalf("DisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayNameIdempotentOnCapitalizedWord(t *testing.T) {
	if got := DisplayName(DisplayName("shared")); got != "Shared" {
		t.Fatalf("expected idempotent result, got %q", got)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		want Category
	}{
		{"database-migrator", CategoryBackend},
		{"api-designer", CategoryBackend},
		{"react-forms", CategoryFrontend},
		{"ui-polish", CategoryFrontend},
		{"reviewer", CategoryGeneral},
		{"", CategoryGeneral},
	}
	for _, tc := range cases {
		if got := Classify(tc.name); got != tc.want {
			t.Fatalf("Classify(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestClassifyBackendWinsOverFrontend(t *testing.T) {
	// Contains both "api" and "ui"; the backend set is checked first.
	if got := Classify("api-ui-bridge"); got != CategoryBackend {
		t.Fatalf("expected backend to win, got %v", got)
	}
}

func TestInventoryCounts(t *testing.T) {
	inv := Inventory{
		Agents:   []Agent{{Name: "a"}},
		Commands: []Command{{Name: "b"}, {Name: "c"}},
		SkillCategories: []SkillCategory{
			{Name: "shared", Skills: []Skill{{Name: "x"}, {Name: "y"}}},
			{Name: "empty"},
		},
	}
	a, c, s := inv.Counts()
	if a != 1 || c != 2 || s != 2 {
		t.Fatalf("Counts() = %d, %d, %d", a, c, s)
	}
	if inv.Empty() {
		t.Fatal("expected non-empty inventory")
	}
	if !(Inventory{}).Empty() {
		t.Fatal("expected zero inventory to be empty")
	}
}

func TestSelectionEmpty(t *testing.T) {
	if !(Selection{}).Empty() {
		t.Fatal("expected zero selection to be empty")
	}
	sel := Selection{Skills: map[string][]Skill{"shared": {{Name: "a"}}}}
	if sel.Empty() {
		t.Fatal("expected selection with skills to be non-empty")
	}
	if sel.SkillCount() != 1 {
		t.Fatalf("SkillCount() = %d", sel.SkillCount())
	}
}
