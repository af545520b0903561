// Package catalog defines the typed inventory of installable components
// and the discovery engine that builds it from a source tree.
//
// Three component kinds exist: agents (a paired instruction + rules
// file), commands (a single instruction file), and skills (a single file
// or a directory bundle, grouped under a skill category).
package catalog

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Category is a component category, used to drive default-selection
// suggestions and menu grouping.
type Category string

const (
	CategoryGeneral  Category = "general"
	CategoryFrontend Category = "frontend"
	CategoryBackend  Category = "backend"
)

// Keyword sets for name-heuristic classification. Backend is checked
// before frontend; first match wins.
var (
	backendKeywords  = []string{"backend", "api", "database", "server", "sql"}
	frontendKeywords = []string{"frontend", "react", "ui", "css", "component"}
)

// Classify infers a component category from its name by case-insensitive
// substring match. Names matching no keyword are general. Total: never
// fails on any input.
//
// Parameters:
//   - name: the component name
//
// Returns:
//   - Category: the inferred category
func Classify(name string) Category {
	lower := strings.ToLower(name)
	for _, kw := range backendKeywords {
		if strings.Contains(lower, kw) {
			return CategoryBackend
		}
	}
	for _, kw := range frontendKeywords {
		if strings.Contains(lower, kw) {
			return CategoryFrontend
		}
	}
	return CategoryGeneral
}

// DisplayName converts a file-stem name to a human readable label:
// separators become spaces and each word is capitalized.
// Total and pure; the empty string maps to itself.
//
// Parameters:
//   - name: the raw component name (e.g. "code-quality")
//
// Returns:
//   - string: the display label (e.g. "Code Quality")
func DisplayName(name string) string {
	replaced := strings.NewReplacer("-", " ", "_", " ").Replace(name)
	words := strings.Split(replaced, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Agent is a paired instruction + rules-file component. An agent is only
// discovered when both files exist side by side.
type Agent struct {
	// Name is the instruction-file stem.
	Name string

	// DisplayName is the human readable label.
	DisplayName string

	// Path is the instruction file (<name>.md).
	Path string

	// RulesPath is the paired rules file (<name>-rules.json).
	RulesPath string

	// Category groups the agent for selection defaults.
	Category Category
}

// Command is a single instruction-file component.
type Command struct {
	Name        string
	DisplayName string
	Path        string
	Category    Category
}

// SkillType distinguishes directory bundles from single-file skills.
type SkillType int

const (
	// SkillTypeDirectory is a folder containing a SKILL.md definition,
	// optionally with a skill-rules-fragment.json.
	SkillTypeDirectory SkillType = iota

	// SkillTypeFile is a single definition file.
	SkillTypeFile
)

// Skill is a knowledge unit under a skill category.
type Skill struct {
	Name        string
	DisplayName string

	// Type records whether Path is a directory bundle or a single file.
	Type SkillType

	// Path is the skill directory (SkillTypeDirectory) or the definition
	// file (SkillTypeFile).
	Path string

	// SkillCategory is the second-level grouping, e.g. "shared".
	SkillCategory string

	// Category is the component category used for menu grouping.
	Category Category

	// HasRulesFragment reports whether a directory skill carries a
	// skill-rules-fragment.json to merge at install time.
	HasRulesFragment bool
}

// SkillCategory groups skills under one directory of the skills root.
// Categories with zero skills are discoverable but contribute nothing
// to selection.
type SkillCategory struct {
	Name        string
	DisplayName string
	Skills      []Skill
}

// Inventory is the aggregate of everything discovered in one run.
// It is produced once and treated as immutable afterwards.
type Inventory struct {
	Agents          []Agent
	Commands        []Command
	SkillCategories []SkillCategory
}

// Empty reports whether nothing at all was discovered.
func (inv Inventory) Empty() bool {
	a, c, s := inv.Counts()
	return a == 0 && c == 0 && s == 0
}

// Counts returns the number of discovered agents, commands, and skills.
func (inv Inventory) Counts() (agents, commands, skills int) {
	for _, cat := range inv.SkillCategories {
		skills += len(cat.Skills)
	}
	return len(inv.Agents), len(inv.Commands), skills
}

// Selection is the user-chosen subset of an Inventory. Skills are keyed
// by skill category; categories with zero chosen skills have no entry.
type Selection struct {
	Agents   []Agent
	Commands []Command
	Skills   map[string][]Skill
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return len(s.Agents) == 0 && len(s.Commands) == 0 && len(s.Skills) == 0
}

// SkillCount returns the total number of selected skills across all
// categories.
func (s Selection) SkillCount() int {
	n := 0
	for _, skills := range s.Skills {
		n += len(skills)
	}
	return n
}
