package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// Well-known file names in a source tree.
const (
	// SkillFileName marks a directory as a directory skill.
	SkillFileName = "SKILL.md"

	// FragmentFileName inside a directory skill signals an additional
	// rules merge source.
	FragmentFileName = "skill-rules-fragment.json"

	// RulesSuffix pairs an agent rules file with its instruction file.
	RulesSuffix = "-rules.json"

	readmeFileName = "README.md"
)

// Mode selects which source-tree layout the discoverer expects.
type Mode string

const (
	// ModeFlat expects <source>/{agents,commands,skills}/... and infers
	// component categories from names.
	ModeFlat Mode = "flat"

	// ModePartitioned expects <source>/{general,frontend,backend}/
	// {agents,commands,skills}/... with categories fixed by placement.
	ModePartitioned Mode = "partitioned"
)

// ParseMode validates a discovery mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeFlat, ModePartitioned:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown discovery mode %q (expected flat or partitioned)", s)
}

// Discoverer walks a source tree into an Inventory. Implementations are
// read-only and safe to call once per run.
type Discoverer interface {
	Discover(sourceRoot string) (Inventory, error)
}

// New returns the discoverer for the given layout mode.
func New(mode Mode) Discoverer {
	if mode == ModePartitioned {
		return partitionedDiscoverer{}
	}
	return flatDiscoverer{}
}

// --- Flat layout ---

type flatDiscoverer struct{}

// Discover scans agents, commands, and skills concurrently and joins the
// results. The three scans touch disjoint subtrees and never write.
func (flatDiscoverer) Discover(sourceRoot string) (Inventory, error) {
	var inv Inventory
	g := new(errgroup.Group)
	g.Go(func() error {
		inv.Agents = scanAgents(filepath.Join(sourceRoot, "agents"), Classify)
		return nil
	})
	g.Go(func() error {
		inv.Commands = scanCommands(filepath.Join(sourceRoot, "commands"), Classify)
		return nil
	})
	g.Go(func() error {
		inv.SkillCategories = scanSkills(filepath.Join(sourceRoot, "skills"), heuristicSkillCategory)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Inventory{}, err
	}
	return inv, nil
}

// heuristicSkillCategory classifies a skill by its category name first,
// then by the skill name when the category is not indicative.
func heuristicSkillCategory(categoryName, skillName string) Category {
	if c := Classify(categoryName); c != CategoryGeneral {
		return c
	}
	return Classify(skillName)
}

// --- Partitioned layout ---

type partitionedDiscoverer struct{}

// Discover scans the three category branches, each holding its own
// agents/commands/skills subtree. Skill categories of the same name in
// different branches are merged into one.
func (partitionedDiscoverer) Discover(sourceRoot string) (Inventory, error) {
	branches := []Category{CategoryGeneral, CategoryFrontend, CategoryBackend}

	var inv Inventory
	merged := map[string]*SkillCategory{}
	var order []string

	g := new(errgroup.Group)
	results := make([]Inventory, len(branches))
	for i, branch := range branches {
		g.Go(func() error {
			root := filepath.Join(sourceRoot, string(branch))
			fixed := func(string) Category { return branch }
			results[i] = Inventory{
				Agents:   scanAgents(filepath.Join(root, "agents"), fixed),
				Commands: scanCommands(filepath.Join(root, "commands"), fixed),
				SkillCategories: scanSkills(filepath.Join(root, "skills"),
					func(_, _ string) Category { return branch }),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Inventory{}, err
	}

	for _, res := range results {
		inv.Agents = append(inv.Agents, res.Agents...)
		inv.Commands = append(inv.Commands, res.Commands...)
		for _, cat := range res.SkillCategories {
			existing, ok := merged[cat.Name]
			if !ok {
				copied := cat
				merged[cat.Name] = &copied
				order = append(order, cat.Name)
				continue
			}
			existing.Skills = append(existing.Skills, cat.Skills...)
		}
	}

	sort.Strings(order)
	for _, name := range order {
		inv.SkillCategories = append(inv.SkillCategories, *merged[name])
	}
	return inv, nil
}

// --- Shared scans ---

// listDir reads a directory, treating a missing or unreadable directory
// as empty. Discovery never aborts on a single bad branch.
func listDir(dir string) []os.DirEntry {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Debug("skipping unreadable directory", "dir", dir, "err", err)
		}
		return nil
	}
	return entries
}

// scanAgents discovers paired instruction + rules files in dir.
// An instruction file without a same-stem rules file is skipped.
//
// Parameters:
//   - dir: the agents directory
//   - classify: maps an agent name to its component category
//
// Returns:
//   - []Agent: discovered agents in directory order (alphabetical)
func scanAgents(dir string, classify func(string) Category) []Agent {
	var agents []Agent
	for _, entry := range listDir(dir) {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		rulesPath := filepath.Join(dir, name+RulesSuffix)
		if _, err := os.Stat(rulesPath); err != nil {
			log.Debug("agent missing rules file, skipping", "agent", name)
			continue
		}
		agents = append(agents, Agent{
			Name:        name,
			DisplayName: DisplayName(name),
			Path:        filepath.Join(dir, entry.Name()),
			RulesPath:   rulesPath,
			Category:    classify(name),
		})
	}
	return agents
}

// scanCommands discovers single instruction files in dir.
func scanCommands(dir string, classify func(string) Category) []Command {
	var commands []Command
	for _, entry := range listDir(dir) {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".md")
		commands = append(commands, Command{
			Name:        name,
			DisplayName: DisplayName(name),
			Path:        filepath.Join(dir, entry.Name()),
			Category:    classify(name),
		})
	}
	return commands
}

// scanSkills discovers skill categories under the skills root.
//
// A first-level directory that itself contains SKILL.md is a directory
// skill forming a category of its own name. Any other first-level
// directory is a category: its .md files (except the README) are file
// skills, and its subdirectories containing SKILL.md are directory
// skills.
//
// Parameters:
//   - dir: the skills root
//   - classify: maps (category name, skill name) to a component category
//
// Returns:
//   - []SkillCategory: categories in directory order (alphabetical)
func scanSkills(dir string, classify func(categoryName, skillName string) Category) []SkillCategory {
	var categories []SkillCategory
	for _, entry := range listDir(dir) {
		if !entry.IsDir() {
			continue
		}
		catName := entry.Name()
		catDir := filepath.Join(dir, catName)
		category := SkillCategory{
			Name:        catName,
			DisplayName: DisplayName(catName),
		}

		if hasSkillFile(catDir) {
			// The category directory is itself one directory skill.
			category.Skills = append(category.Skills, newDirectorySkill(catDir, catName, catName, classify))
			categories = append(categories, category)
			continue
		}

		for _, child := range listDir(catDir) {
			childPath := filepath.Join(catDir, child.Name())
			if child.IsDir() {
				if hasSkillFile(childPath) {
					category.Skills = append(category.Skills, newDirectorySkill(childPath, child.Name(), catName, classify))
				}
				continue
			}
			if !strings.HasSuffix(child.Name(), ".md") || child.Name() == readmeFileName {
				continue
			}
			name := strings.TrimSuffix(child.Name(), ".md")
			category.Skills = append(category.Skills, Skill{
				Name:          name,
				DisplayName:   DisplayName(name),
				Type:          SkillTypeFile,
				Path:          childPath,
				SkillCategory: catName,
				Category:      classify(catName, name),
			})
		}
		categories = append(categories, category)
	}
	return categories
}

// hasSkillFile reports whether dir directly contains a SKILL.md.
func hasSkillFile(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, SkillFileName))
	return err == nil && !info.IsDir()
}

// newDirectorySkill builds a directory skill, probing for an optional
// rules fragment.
func newDirectorySkill(path, name, categoryName string, classify func(string, string) Category) Skill {
	_, fragErr := os.Stat(filepath.Join(path, FragmentFileName))
	return Skill{
		Name:             name,
		DisplayName:      DisplayName(name),
		Type:             SkillTypeDirectory,
		Path:             path,
		SkillCategory:    categoryName,
		Category:         classify(categoryName, name),
		HasRulesFragment: fragErr == nil,
	}
}
